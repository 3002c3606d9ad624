package config

import (
	"strings"

	"github.com/samber/lo"
)

const generatedHeader = "# dodist project configuration. Uncomment a value to change it.\n"

// GenerateConfigContent returns the default configuration with every value
// commented out, ready to be saved as .dodist.toml.
func GenerateConfigContent() string {
	lines := strings.Split(GetDefaultsContent(), "\n")
	lines = lo.Map(lines, func(line string, _ int) string {
		if isSettingLine(line) {
			return "# " + line
		}
		return line
	})
	return generatedHeader + strings.Join(lines, "\n")
}

// isSettingLine is true for assignments and array continuation lines, and
// false for blanks, comments and section headers.
func isSettingLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	switch {
	case trimmed == "", strings.HasPrefix(trimmed, "#"):
		return false
	case strings.HasPrefix(trimmed, "[") && strings.HasSuffix(trimmed, "]") && !strings.Contains(trimmed, "="):
		return false
	}
	return true
}
