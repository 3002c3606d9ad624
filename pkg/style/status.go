package style

import (
	"strings"

	"github.com/arthur-debert/dodist/pkg/results"
	"github.com/arthur-debert/dodist/pkg/types"
	"github.com/pterm/pterm"
)

// StatusStyle returns the appropriate pterm style for a build status
func StatusStyle(status results.Status) *pterm.Style {
	switch status {
	case results.StatusSuccess:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case results.StatusPartial:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case results.StatusFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	case results.StatusCanceled:
		return pterm.NewStyle(pterm.BgGray, pterm.FgWhite)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StatusBadge renders the status as a padded, upper-case label.
func StatusBadge(status results.Status, styled bool) string {
	label := " " + strings.ToUpper(string(status)) + " "
	if !styled {
		return "[" + strings.TrimSpace(label) + "]"
	}
	return StatusStyle(status).Sprint(label)
}

// KindTag returns the markup tag used for a task kind.
func KindTag(kind types.TaskKind) string {
	switch kind {
	case types.TaskMinifyJS:
		return "script"
	case types.TaskMinifyCSS:
		return "stylesheet"
	case types.TaskMinifyHTML:
		return "markup"
	default:
		return "copy"
	}
}

// KindLabel is the short name printed in front of a task.
func KindLabel(kind types.TaskKind) string {
	switch kind {
	case types.TaskMinifyJS:
		return "js"
	case types.TaskMinifyCSS:
		return "css"
	case types.TaskMinifyHTML:
		return "html"
	case types.TaskCopyTree:
		return "tree"
	case types.TaskMkdir:
		return "dir"
	default:
		return "copy"
	}
}
