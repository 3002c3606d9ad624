package dodist

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Build a deployable copy of a static site"
	MsgBuildShort      = "Minify and copy the source tree into the output directory"
	MsgBuildLong       = "Build removes the output directory, then writes a mirror of the source tree into it. JavaScript, CSS and HTML are minified; everything else is copied unchanged."
	MsgPlanShort       = "Show what build would do without writing anything"
	MsgPlanLong        = "Plan walks the source tree with the same rules as build and lists one task per entry, plus every entry that would be skipped and why."
	MsgConfigShort     = "Print the effective configuration"
	MsgGenConfigShort  = "Print a commented default configuration file"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Flag descriptions
	MsgFlagVerbose     = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagSource      = "Source directory to read from"
	MsgFlagOutput      = "Output directory to write to"
	MsgFlagIgnore      = "Path to leave out of the output (repeatable)"
	MsgFlagPassthrough = "Path to copy without processing (repeatable)"
	MsgFlagSkipHidden  = "Skip files and directories whose name starts with a dot"
	MsgFlagWorkers     = "Number of files processed at once (0 = CPU count)"
	MsgFlagFailFast    = "Stop scheduling work after the first failure"
	MsgFlagStrict      = "Fail when the source directory does not exist"
	MsgFlagNoClean     = "Keep the existing output directory instead of removing it first"
	MsgFlagConfig      = "Configuration file to use instead of the project file"
	MsgFlagFormat      = "Output format: auto, term, text, json or yaml"
	MsgFlagJSON        = "Shorthand for --format json"
	MsgFlagDetails     = "List every processed file"
	MsgFlagManDir      = "Directory to write man pages to"

	// Status messages
	MsgConfigSource = "# loaded from %s\n"
	MsgManWritten   = "Man pages written to %s\n"

	// Error messages
	MsgErrNoCommand = "no command specified"
	MsgErrFormat    = "invalid --format: %w"
	MsgErrLoad      = "failed to load configuration: %w"
	MsgErrManDir    = "failed to create %s: %w"
)

// Long messages embedded from files
var (
	//go:embed msgs/root-long.txt
	msgRootLong string

	//go:embed msgs/build-example.txt
	msgBuildExample string

	//go:embed msgs/completion-long.txt
	msgCompletionLong string

	//go:embed msgs/usage-template.txt
	msgUsageTemplate string
)

// Exported versions with trimmed whitespace
var (
	MsgRootLong       = strings.TrimSpace(msgRootLong)
	MsgBuildExample   = strings.TrimRight(msgBuildExample, "\n")
	MsgCompletionLong = strings.TrimSpace(msgCompletionLong)
	MsgUsageTemplate  = msgUsageTemplate
)
