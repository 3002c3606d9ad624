package dodist

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dodist/pkg/config"
	"github.com/arthur-debert/dodist/pkg/style"
	"github.com/spf13/cobra"
)

// buildFlags are the selection flags shared by build, plan and config.
// Only flags given on the command line override the configuration.
type buildFlags struct {
	source      string
	output      string
	ignore      []string
	passthrough []string
	skipHidden  bool
	workers     int
	failFast    bool
	strict      bool
	noClean     bool
	configFile  string
	format      string
	json        bool
}

// flagKeys maps flag names to configuration keys.
var flagKeys = map[string]string{
	"source":      "build.source",
	"output":      "build.output",
	"ignore":      "build.ignore",
	"passthrough": "build.passthrough",
	"skip-hidden": "build.skip_hidden",
	"workers":     "build.workers",
	"fail-fast":   "build.fail_fast",
	"strict":      "build.strict",
}

func (f *buildFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.source, "source", "s", "", MsgFlagSource)
	flags.StringVarP(&f.output, "output", "o", "", MsgFlagOutput)
	flags.StringArrayVarP(&f.ignore, "ignore", "i", nil, MsgFlagIgnore)
	flags.StringArrayVarP(&f.passthrough, "passthrough", "p", nil, MsgFlagPassthrough)
	flags.BoolVar(&f.skipHidden, "skip-hidden", true, MsgFlagSkipHidden)
	flags.IntVarP(&f.workers, "workers", "w", 0, MsgFlagWorkers)
	flags.BoolVar(&f.failFast, "fail-fast", false, MsgFlagFailFast)
	flags.BoolVar(&f.strict, "strict", false, MsgFlagStrict)
	flags.BoolVar(&f.noClean, "no-clean", false, MsgFlagNoClean)
	flags.StringVarP(&f.configFile, "config", "c", "", MsgFlagConfig)
	flags.StringVarP(&f.format, "format", "f", "auto", MsgFlagFormat)
	flags.BoolVar(&f.json, "json", false, MsgFlagJSON)

	_ = cmd.MarkFlagFilename("config", "toml", "yaml", "yml")
	_ = cmd.MarkFlagDirname("source")
	_ = cmd.MarkFlagDirname("output")
	cmd.MarkFlagsMutuallyExclusive("format", "json")
}

// overrides returns the configuration keys for flags that were set.
func (f *buildFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	values := map[string]interface{}{
		"source":      f.source,
		"output":      f.output,
		"ignore":      f.ignore,
		"passthrough": f.passthrough,
		"skip-hidden": f.skipHidden,
		"workers":     f.workers,
		"fail-fast":   f.failFast,
		"strict":      f.strict,
	}

	out := make(map[string]interface{})
	for name, key := range flagKeys {
		if cmd.Flags().Changed(name) {
			out[key] = values[name]
		}
	}
	if cmd.Flags().Changed("no-clean") {
		out["build.clean"] = !f.noClean
	}
	return out
}

func (f *buildFlags) load(cmd *cobra.Command) (*config.Loaded, error) {
	loaded, err := config.Load(config.LoadOptions{
		ConfigFile: f.configFile,
		Overrides:  f.overrides(cmd),
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoad, err)
	}
	return loaded, nil
}

// outputFormat resolves --format and --json against the command output.
// Anything but a styled terminal also turns colors off.
func (f *buildFlags) outputFormat(cmd *cobra.Command) (style.Format, error) {
	format, err := style.ParseFormat(f.format)
	if err != nil {
		return format, fmt.Errorf(MsgErrFormat, err)
	}
	if f.json {
		format = style.FormatJSON
	}
	if format == style.FormatAuto {
		format = style.FormatText
		if isTerminal(cmd.OutOrStdout()) {
			format = style.DetectFormat(os.Stdout)
		}
	}
	if format != style.FormatTerminal {
		style.DisableColor()
	}
	return format, nil
}
