package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/LiboWorks/llm-optimizer/internal/args"
	"github.com/LiboWorks/llm-optimizer/internal/presentation/tui"
	"github.com/LiboWorks/llm-optimizer/pkg/llmo"
)

// rootCmd represents the base command. Flag parsing is left to the args
// package: -o takes a variable number of paths and the file list is
// positional, neither of which pflag can express.
var rootCmd = &cobra.Command{
	Use:   "llmo <file>... [flags]",
	Short: "Optimize source files with a large language model",
	Long: `llmo sends each file to a chat-completion model (Groq by default) and
writes the optimized result back to disk or into aggregated reports.

Examples:
  llmo main.go -o main.opt.go
  llmo a.py b.py -m llama3-70b-8192 --markdown --html
  llmo src/*.ts --token-usage`,
	DisableFlagParsing: true,
	SilenceErrors:      true,
	SilenceUsage:       true,
	RunE: func(cmd *cobra.Command, argv []string) error {
		return llmo.Execute(cmd.Context(), argv, llmo.IO{
			Stdout: cmd.OutOrStdout(),
			Stderr: cmd.ErrOrStderr(),
		})
	},
}

func init() {
	rootCmd.SetHelpTemplate(args.Usage)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, tui.Error(err.Error()))
		stop()
		os.Exit(1)
	}
}
