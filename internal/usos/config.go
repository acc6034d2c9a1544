package usos

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/mitchellh/mapstructure"
)

// PersonalConfig is one person's planning configuration: the courses
// they must take and the evaluator scoring their timetables.
type PersonalConfig struct {
	Courses   []string `mapstructure:"courses"`
	Evaluator string   `mapstructure:"evaluator"`
}

const personalConfigFile = "config.json"

// LoadPersonalConfig reads and validates a person's config.json from
// their config directory. Malformed or missing config is a hard
// failure; nothing is recovered or defaulted.
func LoadPersonalConfig(dir string) (PersonalConfig, error) {
	bytes, err := os.ReadFile(filepath.Join(dir, personalConfigFile))
	if err != nil {
		return PersonalConfig{}, fmt.Errorf("cannot read personal config in %v: %w", dir, err)
	}

	var raw map[string]any
	if err := json.Unmarshal(bytes, &raw); err != nil {
		return PersonalConfig{}, fmt.Errorf("cannot parse personal config in %v: %w", dir, err)
	}

	var config PersonalConfig
	if err := mapstructure.Decode(raw, &config); err != nil {
		return PersonalConfig{}, fmt.Errorf("cannot decode personal config in %v: %w", dir, err)
	}

	if len(config.Courses) == 0 {
		return PersonalConfig{}, fmt.Errorf("personal config in %v lists no courses", dir)
	}
	if config.Evaluator == "" {
		return PersonalConfig{}, fmt.Errorf("personal config in %v names no evaluator", dir)
	}
	return config, nil
}

// ReadCycle returns the dydactic cycle marker from the cycle file at
// the config root, e.g. "2024Z".
func ReadCycle(configDir string) (string, error) {
	bytes, err := os.ReadFile(filepath.Join(configDir, "cycle"))
	if err != nil {
		return "", fmt.Errorf("failed to read dydactic cycle: %w", err)
	}
	words := strings.Fields(string(bytes))
	if len(words) == 0 {
		return "", fmt.Errorf("dydactic cycle file is empty")
	}
	return words[0], nil
}

// PersonalConfigDirs lists the per-person subdirectories of the config
// root in name order.
func PersonalConfigDirs(configDir string) ([]string, error) {
	entries, err := os.ReadDir(configDir)
	if err != nil {
		return nil, fmt.Errorf("cannot read config directory: %w", err)
	}
	var dirs []string
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(configDir, entry.Name()))
		}
	}
	return dirs, nil
}

const sessionEnv = "USOS_SESSION"

// Session returns the portal session token from the environment,
// loading a .env file first if one exists. An empty token means an
// anonymous run: planning proceeds, materialization is skipped.
func Session() string {
	_ = godotenv.Load()
	return os.Getenv(sessionEnv)
}
