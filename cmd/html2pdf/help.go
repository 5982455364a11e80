package main

import (
	"fmt"
	"io"
	"strings"

	html2pdf "github.com/alnah/go-html2pdf"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf <command> [flags] [args]")
	fmt.Fprintln(w, "       html2pdf <input.html> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  convert    Convert an HTML file to PDF (default)")
	fmt.Fprintln(w, "  formats    List page formats")
	fmt.Fprintln(w, "  doctor     Check browser and environment setup")
	fmt.Fprintln(w, "  install    Download Chromium for an engine")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'html2pdf help <command>' for details on a specific command.")
}

// printConvertUsage prints usage for the convert command.
func printConvertUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: html2pdf convert <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert an HTML document to a vector PDF.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    HTML file, or an http(s)/file URL (URL input needs --output)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintf(w, "  -f, --format <id>         Page format (default %s): %s\n",
		html2pdf.DefaultFormat, strings.Join(html2pdf.FormatIDs(), ", "))
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (default: input with .pdf extension)")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Timing:")
	fmt.Fprintln(w, "  -t, --timeout <dur>       Overall conversion timeout (default 60s)")
	fmt.Fprintln(w, "      --readiness-timeout <dur>")
	fmt.Fprintln(w, "                            Navigation and readiness timeout (default 30s)")
	fmt.Fprintln(w, "      --network-idle <dur>  Quiet window before export (default 500ms)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Browser:")
	fmt.Fprintf(w, "      --engine <name>       Engine: %s (default %s)\n",
		strings.Join(html2pdf.EngineKinds(), ", "), html2pdf.DefaultEngine)
	fmt.Fprintln(w, "      --browser-bin <path>  Chrome/Chromium binary")
	fmt.Fprintln(w, "      --no-sandbox          Disable the Chrome sandbox")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show stage timings")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  HTML2PDF_CONFIG, HTML2PDF_FORMAT, HTML2PDF_TIMEOUT, HTML2PDF_NETWORK_IDLE,")
	fmt.Fprintln(w, "  HTML2PDF_ENGINE, HTML2PDF_OUTPUT_DIR (flags win over env, env over config)")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	w := env.Stdout
	switch args[0] {
	case "convert":
		printConvertUsage(w)
	case "formats":
		fmt.Fprintln(w, "Usage: html2pdf formats [--yaml]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "List page formats with their page size and viewport.")
	case "doctor":
		fmt.Fprintln(w, "Usage: html2pdf doctor [--json]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Check browser availability, sandbox settings and temp directory.")
	case "install":
		fmt.Fprintln(w, "Usage: html2pdf install [--engine rod|playwright]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Download Chromium for the engine. Conversions never download on their own")
		fmt.Fprintln(w, "with the playwright engine; run this first.")
	case "version":
		fmt.Fprintln(w, "Usage: html2pdf version")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show version information.")
	case "help":
		fmt.Fprintln(w, "Usage: html2pdf help [command]")
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
