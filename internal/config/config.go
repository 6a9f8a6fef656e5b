// Package config loads voicehub configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all voicehub configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Console   ConsoleConfig   `yaml:"console"`
	Assistant AssistantConfig `yaml:"assistant"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// ServerConfig holds assistant server settings.
type ServerConfig struct {
	Listen string `yaml:"listen"`
}

// ConsoleConfig holds console client settings.
type ConsoleConfig struct {
	ServerURL string     `yaml:"server_url"`
	Shortcuts []Shortcut `yaml:"shortcuts"`
	Languages []Language `yaml:"languages"`
}

// Shortcut is a preconfigured command the console can send with one
// keypress.
type Shortcut struct {
	Label   string `yaml:"label"`
	Command string `yaml:"command"`
}

// Language is a selectable language.
type Language struct {
	Code  string `yaml:"code"`
	Label string `yaml:"label"`
}

// AssistantConfig holds assistant behavior settings.
type AssistantConfig struct {
	WakeWords       []string `yaml:"wake_words"`
	DefaultLanguage string   `yaml:"default_language"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	File  string `yaml:"file"`
	Debug bool   `yaml:"debug"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen: ":8090",
		},
		Console: ConsoleConfig{
			ServerURL: "ws://localhost:8090/ws",
			Shortcuts: []Shortcut{
				{Label: "Time", Command: "what time is it"},
				{Label: "Date", Command: "what is the date today"},
				{Label: "Search weather", Command: "search weather"},
				{Label: "Open browser", Command: "open chrome"},
			},
			Languages: []Language{
				{Code: "en", Label: "English"},
				{Code: "ta", Label: "Tamil"},
			},
		},
		Assistant: AssistantConfig{
			WakeWords:       []string{"nova", "echo", "hey nova", "hey echo"},
			DefaultLanguage: "en",
		},
		Logging: LoggingConfig{
			File: "voicehub.log",
		},
	}
}

// Load reads configuration from the given YAML file, layered over the
// defaults, then applies environment variable overrides. A missing
// file is not an error; an unreadable or malformed one is.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// Defaults only.
		case err != nil:
			return Config{}, fmt.Errorf("failed to read config file: %w", err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	applyEnvOverrides(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	cfg.Server.Listen = getenv("VOICEHUB_LISTEN", cfg.Server.Listen)
	cfg.Console.ServerURL = getenv("VOICEHUB_SERVER_URL", cfg.Console.ServerURL)
	cfg.Assistant.DefaultLanguage = getenv("VOICEHUB_LANGUAGE", cfg.Assistant.DefaultLanguage)
	cfg.Logging.File = getenv("VOICEHUB_LOG_FILE", cfg.Logging.File)
	cfg.Logging.Debug = getenvBool("VOICEHUB_DEBUG", cfg.Logging.Debug)
}

func (c Config) validate() error {
	if c.Server.Listen == "" {
		return fmt.Errorf("server.listen must not be empty")
	}
	if c.Console.ServerURL == "" {
		return fmt.Errorf("console.server_url must not be empty")
	}
	if len(c.Console.Languages) == 0 {
		return fmt.Errorf("console.languages must not be empty")
	}
	return nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
