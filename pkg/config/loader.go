package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/dodist/pkg/errors"
	"github.com/arthur-debert/dodist/pkg/logging"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	pelletier "github.com/pelletier/go-toml/v2"
)

const (
	// EnvPrefix is the prefix of environment variables read as configuration.
	EnvPrefix = "DODIST_"
	// EnvSectionSeparator separates section and key in variable names.
	EnvSectionSeparator = "__"
	// DotEnvFile is read from the working directory when present.
	DotEnvFile = ".env"
)

// ProjectFiles are the configuration file names looked up in the working
// directory, in order of preference.
var ProjectFiles = []string{".dodist.toml", "dodist.toml", "dodist.yaml", "dodist.yml"}

// LoadOptions controls where configuration is read from.
type LoadOptions struct {
	// WorkDir is where project files and .env are looked up, and what
	// relative source and output roots resolve against. Defaults to the
	// current directory.
	WorkDir string
	// ConfigFile replaces the project file lookup. It must exist.
	ConfigFile string
	// Overrides are dotted keys applied last, e.g. "build.output".
	Overrides map[string]interface{}
}

// Loaded is a configuration together with where it came from.
type Loaded struct {
	*Config
	// File is the project file that was read, empty when none was found.
	File string
	// WorkDir is the absolute directory roots were resolved against.
	WorkDir string
}

// Load reads, layers, decodes and validates the configuration.
func Load(opts LoadOptions) (*Loaded, error) {
	logger := logging.GetLogger("config")

	workDir, err := resolveWorkDir(opts.WorkDir)
	if err != nil {
		return nil, err
	}

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(defaultsProvider{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}

	// 2. Project file
	path, err := findProjectFile(workDir, opts.ConfigFile)
	if err != nil {
		return nil, err
	}
	if path != "" {
		parser, err := parserFor(path)
		if err != nil {
			return nil, err
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to load config from %s", path).
				WithDetail("path", path)
		}
		logger.Debug().Str("path", path).Msg("Loaded project config")
	}

	// 3. .env file
	dotenv, err := readDotEnv(filepath.Join(workDir, DotEnvFile))
	if err != nil {
		return nil, err
	}
	if len(dotenv) > 0 {
		if err := k.Load(confmap.Provider(dotenv, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load .env values")
		}
	}

	// 4. Environment
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment variables")
	}

	// 5. Overrides
	if len(opts.Overrides) > 0 {
		if err := k.Load(confmap.Provider(opts.Overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to apply overrides")
		}
	}

	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	resolveRoots(cfg, workDir)

	logger.Debug().
		Str("source", cfg.Build.Source).
		Str("output", cfg.Build.Output).
		Msg("Configuration loaded")

	return &Loaded{Config: cfg, File: path, WorkDir: workDir}, nil
}

// Default returns the embedded defaults alone, with roots resolved against
// workDir.
func Default(workDir string) (*Config, error) {
	workDir, err := resolveWorkDir(workDir)
	if err != nil {
		return nil, err
	}
	k := koanf.New(".")
	if err := k.Load(defaultsProvider{}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to load defaults")
	}
	cfg, err := decode(k)
	if err != nil {
		return nil, err
	}
	resolveRoots(cfg, workDir)
	return cfg, nil
}

func decode(k *koanf.Koanf) (*Config, error) {
	var cfg Config
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode configuration")
	}
	return &cfg, nil
}

// ToTOML renders cfg as a TOML document.
func ToTOML(cfg *Config) ([]byte, error) {
	data, err := pelletier.Marshal(cfg)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "failed to encode configuration")
	}
	return data, nil
}

// envKey maps DODIST_BUILD__SKIP_HIDDEN to build.skip_hidden.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, EnvSectionSeparator, ".")
}

func resolveWorkDir(dir string) (string, error) {
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", errors.Wrap(err, errors.ErrConfigLoad, "cannot determine working directory")
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrConfigLoad, "cannot resolve %s", dir)
	}
	return abs, nil
}

func findProjectFile(workDir, explicit string) (string, error) {
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(workDir, explicit)
		}
		if _, err := os.Stat(explicit); err != nil {
			return "", errors.Wrapf(err, errors.ErrConfigLoad, "config file %s not found", explicit).
				WithDetail("path", explicit)
		}
		return explicit, nil
	}
	for _, name := range ProjectFiles {
		path := filepath.Join(workDir, name)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}
	return "", nil
}

func parserFor(path string) (koanf.Parser, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return toml.Parser(), nil
	case ".yaml", ".yml":
		return yaml.Parser(), nil
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported config format %q", filepath.Ext(path)).
			WithDetail("path", path)
	}
}

// readDotEnv returns the DODIST_ entries of a .env file as dotted keys.
// Variables already present in the environment win, as they are loaded
// afterwards.
func readDotEnv(path string) (map[string]interface{}, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to read %s", path).
			WithDetail("path", path)
	}
	out := make(map[string]interface{})
	for key, value := range values {
		if strings.HasPrefix(key, EnvPrefix) {
			out[envKey(key)] = value
		}
	}
	return out, nil
}

func resolveRoots(cfg *Config, workDir string) {
	cfg.Build.Source = absUnder(workDir, cfg.Build.Source)
	cfg.Build.Output = absUnder(workDir, cfg.Build.Output)
}

func absUnder(base, p string) string {
	p = filepath.FromSlash(p)
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(base, p)
}
