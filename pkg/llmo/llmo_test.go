package llmo_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/LiboWorks/llm-optimizer/internal/args"
	"github.com/LiboWorks/llm-optimizer/internal/backend"
	"github.com/LiboWorks/llm-optimizer/internal/config"
	"github.com/LiboWorks/llm-optimizer/pkg/llmo"
)

type echoBackend struct {
	calls int
	fail  string
}

func (b *echoBackend) Complete(ctx context.Context, req backend.Request) (backend.Completion, error) {
	b.calls++
	if b.fail != "" && strings.Contains(req.Prompt, b.fail) {
		return backend.Completion{}, errors.New("service unavailable")
	}
	return backend.Completion{
		Text:  "```\n" + strings.ToUpper(req.Prompt) + "\n```",
		Usage: backend.Usage{PromptTokens: 3, CompletionTokens: 2, TotalTokens: 5},
	}, nil
}

func (b *echoBackend) Name() string { return "echo" }
func (b *echoBackend) Close() error { return nil }

type harness struct {
	dir    string
	env    map[string]string
	stdout bytes.Buffer
	stderr bytes.Buffer
	b      *echoBackend
}

func newHarness(t *testing.T, options string) *harness {
	t.Helper()
	h := &harness{dir: t.TempDir(), env: map[string]string{}, b: &echoBackend{}}
	if options != "" {
		path := filepath.Join(h.dir, ".options.toml")
		require.NoError(t, os.WriteFile(path, []byte(options), 0644))
		h.env[config.EnvConfigPath] = path
	}
	return h
}

func (h *harness) file(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func (h *harness) execute(argv ...string) error {
	return llmo.Execute(context.Background(), argv, llmo.IO{
		Stdout:  &h.stdout,
		Stderr:  &h.stderr,
		Getenv:  func(k string) string { return h.env[k] },
		Backend: h.b,
	})
}

func TestExecuteVersionShortCircuits(t *testing.T) {
	h := newHarness(t, "")

	require.NoError(t, h.execute("--version"))
	assert.Equal(t, llmo.Name+" version "+llmo.Version+"\n", h.stdout.String())
	assert.Zero(t, h.b.calls)
}

func TestExecuteHelpShortCircuits(t *testing.T) {
	h := newHarness(t, "")
	// A broken options document must not matter for --help.
	h.env[config.EnvConfigPath] = filepath.Join(h.dir, "missing.toml")

	require.NoError(t, h.execute("-m", "x", "--help"))
	assert.Contains(t, h.stdout.String(), "Usage: llmo")
}

func TestExecuteNoFiles(t *testing.T) {
	h := newHarness(t, "")
	err := h.execute("--markdown")
	assert.ErrorIs(t, err, args.ErrNoFilesSpecified)
}

func TestExecuteMissingAPIKey(t *testing.T) {
	h := newHarness(t, "")
	a := h.file(t, "a.py", "x")

	err := h.execute(a)
	assert.ErrorIs(t, err, args.ErrMissingAPIKey)
	assert.Zero(t, h.b.calls)
}

func TestExecuteExplicitConfigMustExist(t *testing.T) {
	h := newHarness(t, "")
	h.env[config.EnvConfigPath] = filepath.Join(h.dir, "missing.toml")

	err := h.execute(h.file(t, "a.py", "x"), "--apiKey", "k")
	assert.ErrorIs(t, err, config.ErrConfigNotFound)
}

func TestExecuteConfigParseError(t *testing.T) {
	h := newHarness(t, "model = ")

	err := h.execute(h.file(t, "a.py", "x"), "--apiKey", "k")
	assert.ErrorIs(t, err, config.ErrConfigParse)
}

func TestExecuteInvalidTemperature(t *testing.T) {
	h := newHarness(t, `apiKey = "k"`)

	err := h.execute(h.file(t, "a.py", "x"), "--temperature", "9")
	assert.ErrorIs(t, err, args.ErrInvalidTemperature)
	assert.Zero(t, h.b.calls)
}

func TestExecuteEndToEnd(t *testing.T) {
	h := newHarness(t, "")
	mdPath := filepath.Join(h.dir, "report.md")
	htmlPath := filepath.Join(h.dir, "report.html")
	h.b.fail = "b.py"
	require.NoError(t, os.WriteFile(filepath.Join(h.dir, ".options.toml"), []byte(
		`apiKey = "k"
markdownFile = "`+filepath.ToSlash(mdPath)+`"
htmlFile = "`+filepath.ToSlash(htmlPath)+`"
`), 0644))
	h.env[config.EnvConfigPath] = filepath.Join(h.dir, ".options.toml")

	a := h.file(t, "a.py", "print(1)")
	b := h.file(t, "b.py", "print(2)")
	c := h.file(t, "c.py", "print(3)")
	outA := filepath.Join(h.dir, "out", "a.py")
	outB := filepath.Join(h.dir, "out", "b.py")

	err := h.execute(a, b, c, "-o", outA, outB, "--markdown", "--html", "-t")
	require.NoError(t, err)
	assert.Equal(t, 3, h.b.calls)

	got, err := os.ReadFile(outA)
	require.NoError(t, err)
	assert.Contains(t, string(got), "PRINT(1)")

	_, err = os.Stat(outB)
	assert.True(t, os.IsNotExist(err), "failed file must not be written")

	md, err := os.ReadFile(mdPath)
	require.NoError(t, err)
	assert.Contains(t, string(md), "PRINT(1)")
	assert.Contains(t, string(md), "PRINT(3)")
	assert.NotContains(t, string(md), "PRINT(2)")

	_, err = os.Stat(htmlPath)
	assert.NoError(t, err)

	out := h.stdout.String()
	assert.Contains(t, out, "Optimizing "+a)
	assert.Contains(t, out, "Writing to "+outA)
	assert.Contains(t, out, "| **Total** | 6 | 4 | 10 |")
	assert.Contains(t, h.stderr.String(), "unable to process file")
}

func TestRunRequiresFiles(t *testing.T) {
	_, err := llmo.Run(context.Background(), llmo.NewRunConfig(nil))
	assert.ErrorIs(t, err, args.ErrNoFilesSpecified)
}
