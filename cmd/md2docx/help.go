package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build      Build a Word document from a chapter tree")
	fmt.Fprintln(w, "  doctor     Check mmdc, pandoc and Chrome")
	fmt.Fprintln(w, "  version    Show version information")
	fmt.Fprintln(w, "  help       Show help for a command")
	fmt.Fprintln(w, "  completion Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'md2docx help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx build [source-dir] [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Merge <source-dir>/*/*.md into one Word document. Mermaid diagrams and")
	fmt.Fprintln(w, "images become numbered PNG files in the output directory, and a page")
	fmt.Fprintln(w, "break separates chapters.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "WARNING: the output directory is deleted and recreated unless --no-clean is set.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  source-dir    Book root with one subdirectory per chapter (default: input.sourceDir)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <dir>          Output directory (default: output)")
	fmt.Fprintln(w, "      --name <file>           Book file name (default: output.docx)")
	fmt.Fprintln(w, "  -c, --config <name>         Config file name or path")
	fmt.Fprintln(w, "      --no-clean              Keep existing output files")
	fmt.Fprintln(w, "      --html                  Also write preview.html")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Diagrams:")
	fmt.Fprintln(w, "      --renderer <kind>       mmdc (default) or browser (headless Chrome)")
	fmt.Fprintln(w, "      --mmdc <path>           mmdc binary")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Images:")
	fmt.Fprintln(w, "      --strict-tls            Verify certificates of image hosts")
	fmt.Fprintln(w, "  Hosts that answer 403 may need images.referer (or images.acceptLanguage,")
	fmt.Fprintln(w, "  default zh-TW) set in the config file.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Conversion:")
	fmt.Fprintln(w, "      --pandoc <path>         pandoc binary")
	fmt.Fprintln(w, "      --no-toc                Disable the table of contents")
	fmt.Fprintln(w, "      --toc-depth <n>         Table of contents depth (1-6, default: 1)")
	fmt.Fprintln(w, "      --reference-doc <file>  Reuse the styles of a Word document")
	fmt.Fprintln(w, "      --title <s>             Document title")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Timeouts (0 = none):")
	fmt.Fprintln(w, "      --render-timeout <d>    Per diagram (default: 2m)")
	fmt.Fprintln(w, "      --fetch-timeout <d>     Per image download (default: 30s)")
	fmt.Fprintln(w, "      --convert-timeout <d>   pandoc run (default: 5m)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                 Only show errors and warnings")
	fmt.Fprintln(w, "  -v, --verbose               Show configuration and build details")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  MD2DOCX_CONFIG, MD2DOCX_SOURCE_DIR, MD2DOCX_OUTPUT_DIR, MD2DOCX_OUTPUT_NAME,")
	fmt.Fprintln(w, "  MD2DOCX_RENDERER, MD2DOCX_MMDC, MD2DOCX_PANDOC, MD2DOCX_REFERENCE_DOC,")
	fmt.Fprintln(w, "  MD2DOCX_TITLE, MD2DOCX_STRICT_TLS, MD2DOCX_RENDER_TIMEOUT,")
	fmt.Fprintln(w, "  MD2DOCX_FETCH_TIMEOUT, MD2DOCX_CONVERT_TIMEOUT")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: md2docx doctor [--json]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Check that the external tools needed by a build are available.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "      --json    Output machine-readable JSON")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: md2docx version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: md2docx help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
