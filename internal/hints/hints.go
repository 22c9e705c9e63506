// Package hints provides actionable error hints for common failure scenarios.
// Hints are formatted consistently as "\n  hint: <text>" for appending to error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-md2docx/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// ForMissingTool returns install hints for an external tool not found on PATH.
func ForMissingTool(name string) string {
	switch name {
	case "mmdc":
		return format("install mermaid-cli (npm install -g @mermaid-js/mermaid-cli), " +
			"set renderer.mmdc, or use --renderer browser")
	case "pandoc":
		return format("install pandoc (https://pandoc.org/installing.html) or set pandoc.binary")
	}
	return format("check that " + name + " is installed and on PATH")
}

// ForBrowserConnect returns hints for browser launch errors of the browser renderer.
func ForBrowserConnect() string {
	var hints []string

	inCI := os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""

	if (inCI || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		hints = append(hints, "set ROD_BROWSER_BIN to use custom Chrome")
	}

	return formatHints(hints)
}

// ForTLS returns a hint for certificate errors while downloading images.
func ForTLS(strict bool) string {
	if !strict {
		return ""
	}
	return format("the host certificate was rejected; drop --strict-tls to accept it")
}

// ForTimeout returns a hint about raising the timeout of the stage that expired.
func ForTimeout(flagName string) string {
	return format("for large books or slow hosts, raise --" + flagName)
}

// ForConfigNotFound returns hints for config file not found errors.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(p, ".config/go-md2docx") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output directory preparation errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable, and no file in it is open in another program")
}

// ForUnsafeOutput returns a hint when the output directory would swallow the sources.
func ForUnsafeOutput() string {
	return format("choose an output directory outside the source tree, or pass --no-clean")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
