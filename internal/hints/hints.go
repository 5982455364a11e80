// Package hints builds the "hint:" lines appended to CLI error messages.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-html2pdf/internal/fileutil"
)

// IsInContainer detects if running inside a Docker container or similar.
// Checks for /.dockerenv file which Docker creates automatically.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

// InCI reports whether a known CI environment variable is set.
func InCI() bool {
	return os.Getenv("CI") != "" ||
		os.Getenv("GITHUB_ACTIONS") != "" ||
		os.Getenv("GITLAB_CI") != "" ||
		os.Getenv("JENKINS_URL") != ""
}

// ForBrowserLaunch returns hints for a browser that could not be started.
// The suggestions depend on the engine and on CI/container detection.
func ForBrowserLaunch(engine string) string {
	var hints []string

	if engine == "playwright" {
		hints = append(hints, "run 'html2pdf install --engine playwright' to fetch the driver and Chromium")
	} else {
		if (InCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
			hints = append(hints, "set ROD_NO_SANDBOX=1 for Docker/CI")
		}
		if os.Getenv("ROD_BROWSER_BIN") == "" {
			hints = append(hints, "run 'html2pdf install' or set ROD_BROWSER_BIN to use custom Chrome")
		}
	}
	hints = append(hints, "run 'html2pdf doctor' to check the setup")

	return formatHints(hints)
}

// ForRenderTimeout returns a hint for pages that never became ready.
func ForRenderTimeout() string {
	return format("a request or web font never settled; check external URLs or raise --timeout")
}

// ForPageLoad returns a hint for navigation failures.
func ForPageLoad() string {
	return format("check the input path or URL opens in a browser")
}

// ForUnknownFormat lists the valid format ids.
func ForUnknownFormat(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", ") + " (see 'html2pdf formats')")
}

// ForConfigNotFound returns hints for config file not found errors.
// Suggests --config flag and creating a config in ~/.config/go-html2pdf/.
func ForConfigNotFound(searchedPaths []string) string {
	hint := "use --config /path/to/file.yaml"

	for _, p := range searchedPaths {
		if strings.Contains(filepathSlash(p), ".config/go-html2pdf") {
			hint += " or create " + p
			break
		}
	}

	return format(hint)
}

// ForOutputDirectory returns hints for output write errors.
func ForOutputDirectory() string {
	return format("check parent directory exists and is writable")
}

// filepathSlash normalizes separators for substring checks.
func filepathSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

// format creates a single hint string with consistent formatting.
func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}

// formatHints joins multiple hints with consistent formatting.
func formatHints(hints []string) string {
	if len(hints) == 0 {
		return ""
	}
	return format(strings.Join(hints, "; "))
}
