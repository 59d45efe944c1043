package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/vango-dev/easel/internal/errors"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const banner = `
  ┌─┐┌─┐┌─┐┌─┐┬
  ├┤ ├─┤└─┐├┤ │
  └─┘┴ ┴└─┘└─┘┴─┘
`

var (
	okMark   = color.New(color.FgGreen).SprintFunc()
	warnMark = color.New(color.FgYellow).SprintFunc()
	failMark = color.New(color.FgRed).SprintFunc()
)

func main() {
	var noColor bool

	rootCmd := &cobra.Command{
		Use:   "easel",
		Short: "Tooling for hydrated easel pages",
		Long: `Easel resumes pre-rendered pages and patches them in place.

The easel CLI works on the artifacts of that protocol: the hydration
payload embedded in a page, the comment markers that fence each
component's region, and the scripted dispatches that drive a resumed
application. Features include:

  • Protocol-contract checks with actionable diagnostics
  • Hydration payload inspection
  • Region-aware document diffing
  • Scripted scenario runs against the embedded demo app
  • A JSON-RPC bridge over standard input and output`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			errors.AutoColors(os.Stdout)
			if noColor {
				errors.DisableColors()
			}
		},
	}

	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	// Add commands
	rootCmd.AddCommand(
		checkCmd(),
		inspectCmd(),
		diffCmd(),
		runCmd(),
		serveCmd(),
		versionCmd(),
	)

	// Execute
	if err := rootCmd.Execute(); err != nil {
		errors.PrintError(err)
		os.Exit(1)
	}
}

// printBanner prints the easel ASCII art banner.
func printBanner() {
	fmt.Print(banner)
}

// success prints a success message.
func success(format string, args ...any) {
	fmt.Printf("%s %s\n", okMark("✓"), fmt.Sprintf(format, args...))
}

// info prints an info message.
func info(format string, args ...any) {
	fmt.Printf("  %s\n", fmt.Sprintf(format, args...))
}

// warn prints a warning message.
func warn(format string, args ...any) {
	fmt.Printf("%s %s\n", warnMark("⚠"), fmt.Sprintf(format, args...))
}

// errorMsg prints an error message.
func errorMsg(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "%s %s\n", failMark("✗"), fmt.Sprintf(format, args...))
}
