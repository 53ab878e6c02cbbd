// Package hints turns common bakeryplan failures into one-line suggestions.
// Every hint is rendered as "\n  hint: <text>" so it can follow the error.
package hints

import (
	"os"
	"strings"

	"github.com/alnah/go-flowpdf/internal/fileutil"
)

// IsInContainer reports whether the process runs inside Docker.
var IsInContainer = func() bool {
	return fileutil.FileExists("/.dockerenv")
}

var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL"}

func inCI() bool {
	for _, name := range ciVars {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}

// ForBrowserConnect explains how to get Chrome running, or how to avoid it.
func ForBrowserConnect() string {
	tips := []string{"the native backend needs no browser: drop --backend browser"}
	if (inCI() || IsInContainer()) && os.Getenv("ROD_NO_SANDBOX") != "1" {
		tips = append(tips, "set ROD_NO_SANDBOX=1 for Docker/CI")
	}
	if os.Getenv("ROD_BROWSER_BIN") == "" {
		tips = append(tips, "set ROD_BROWSER_BIN to use an installed Chrome")
	}
	return format(strings.Join(tips, "; "))
}

// ForTimeout suggests a longer browser timeout.
func ForTimeout() string {
	return format("raise the browser timeout with --timeout, e.g. --timeout 2m")
}

// ForConfigNotFound suggests an explicit --config path, or the first user
// config directory among searched.
func ForConfigNotFound(searched []string) string {
	hint := "use --config /path/to/file.yaml"
	for _, p := range searched {
		if strings.Contains(p, ".config/bakeryplan") {
			return format(hint + " or create " + p)
		}
	}
	return format(hint)
}

// ForOutputDirectory reminds that the output directory is never created.
func ForOutputDirectory() string {
	return format("create the output directory first and check it is writable")
}

// ForOutlineNotFound lists the embedded outlines.
func ForOutlineNotFound(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available outlines: " + strings.Join(available, ", "))
}

// ForOutlineSyntax lists the block kinds an outline may use.
func ForOutlineSyntax() string {
	return format("block kinds: heading, subheading, paragraph, bullet, quote, spacer, pagebreak, table")
}

// ForBlockTooTall points at the split overflow policy.
func ForBlockTooTall() string {
	return format("use --overflow split to break long blocks across pages")
}

// ForTableTooWide suggests narrower columns.
func ForTableTooWide() string {
	return format("reduce column widths or use a landscape page in the outline")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
