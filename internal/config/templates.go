package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const configTemplate = `# tradelog configuration

[data]
# Directory for the trade database (defaults to this config directory)
dir = ""

[ui]
# Enable colored output
color_enabled = true
# Date format
date_format = "2006-01-02"

[log]
# Log level: debug, info, warn, error
level = "info"
# Log to the terminal
console = false
# Log to a rotating file
file = true
`

// createTemplateConfig writes a commented config.toml for first runs.
// An existing file is never overwritten.
func createTemplateConfig(configDir string) error {
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(configDir, "config.toml")
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	return os.WriteFile(path, []byte(configTemplate), 0644)
}
