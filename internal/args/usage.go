package args

// Usage is printed for --help.
const Usage = `Usage: llmo <file>... [flags]

Sends each file to a chat-completion model and writes the optimized result.

Flags:
  -v, --version              print the version and exit
  -h, --help                 print this help and exit
  -m, --model <name>         model identifier (default "` + DefaultModel + `")
      --temperature <value>  sampling temperature between 0 and 2
      --apiKey <key>         API key (falls back to .options.toml, then GROQ_API_KEY)
  -o, --output <path>...     write results; paths are paired with input files by position
      --markdown             write an aggregated Markdown report
      --html                 write an aggregated HTML report
  -t, --token-usage          print token usage when all files are processed
      --provider <name>      groq (default) or openai
      --base-url <url>       override the API endpoint
      --verbose              enable debug logging

Any flag may be given a default in .options.toml, keyed by its name
(model, temperature, apiKey, output, outputFiles, markdown, html, tokenUsage).
Flags on the command line always win.
`
