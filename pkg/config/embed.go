package config

import (
	_ "embed"
	"errors"
)

//go:embed embedded/defaults.toml
var defaultConfig []byte

// GetDefaultsContent returns the embedded default configuration file.
func GetDefaultsContent() string {
	return string(defaultConfig)
}

// defaultsProvider hands the embedded defaults to koanf, which parses them
// with the TOML parser.
type defaultsProvider struct{}

func (defaultsProvider) ReadBytes() ([]byte, error) { return defaultConfig, nil }

func (defaultsProvider) Read() (map[string]interface{}, error) {
	return nil, errors.New("defaults are only available as bytes")
}
