// Package config loads service configuration from defaults, an optional
// JSON config file, and LOSTLINK_* environment variable overrides, in
// that precedence order (env wins).
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

type Config struct {
	Server     ServerConfig     `json:"server"`
	Ollama     OllamaConfig     `json:"ollama"`
	Storage    StorageConfig    `json:"storage"`
	Extraction ExtractionConfig `json:"extraction"`
	Log        LogConfig        `json:"log"`
}

type ServerConfig struct {
	Port     int    `json:"port"`
	MCPPort  int    `json:"mcp_port"`
	APIToken string `json:"api_token"`
}

type OllamaConfig struct {
	// Enabled controls whether the generative enhancement layer and the
	// embedding endpoints are wired at all. With it off the service runs
	// rule-based-only, which is fully functional.
	Enabled      bool   `json:"enabled"`
	BaseURL      string `json:"base_url"`
	ExtractModel string `json:"extract_model"`
	EmbedModel   string `json:"embed_model"`
}

type StorageConfig struct {
	DataDir string `json:"data_dir"`
}

type ExtractionConfig struct {
	// SaveHistory controls whether successful extractions are persisted.
	SaveHistory bool `json:"save_history"`
}

type LogConfig struct {
	Level string `json:"level"`
}

func defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:    8000,
			MCPPort: 8001,
		},
		Ollama: OllamaConfig{
			Enabled:      true,
			BaseURL:      "http://localhost:11434",
			ExtractModel: "phi3.5",
			EmbedModel:   "nomic-embed-text",
		},
		Storage: StorageConfig{
			DataDir: defaultDataDir(),
		},
		Extraction: ExtractionConfig{
			SaveHistory: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "intake")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".intake"
	}
	return filepath.Join(home, ".local", "share", "intake")
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "intake", "config.json")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "intake", "config.json")
}

// Load reads configuration from the default config file path and the
// environment.
func Load() (Config, error) {
	return loadWith(defaultConfigPath(), os.Getenv)
}

// loadWith applies the config file at path (if present) and env overrides
// on top of the defaults. A missing file is not an error; a malformed one
// is.
func loadWith(path string, getenv func(string) string) (Config, error) {
	cfg := defaults()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case os.IsNotExist(err):
			// No config file; defaults plus env are enough.
		case err != nil:
			return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
		default:
			if err := json.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
			}
		}
	}

	applyEnvOverrides(&cfg, getenv)

	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return Config{}, fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	if v := getenv("LOSTLINK_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := getenv("LOSTLINK_MCP_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.MCPPort = port
		}
	}
	if v := getenv("LOSTLINK_API_TOKEN"); v != "" {
		cfg.Server.APIToken = v
	}
	if v := getenv("LOSTLINK_OLLAMA_ENABLED"); v != "" {
		cfg.Ollama.Enabled = v == "true" || v == "1"
	}
	if v := getenv("LOSTLINK_OLLAMA_URL"); v != "" {
		cfg.Ollama.BaseURL = v
	}
	if v := getenv("LOSTLINK_EXTRACT_MODEL"); v != "" {
		cfg.Ollama.ExtractModel = v
	}
	if v := getenv("LOSTLINK_EMBED_MODEL"); v != "" {
		cfg.Ollama.EmbedModel = v
	}
	if v := getenv("LOSTLINK_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := getenv("LOSTLINK_SAVE_HISTORY"); v != "" {
		cfg.Extraction.SaveHistory = v == "true" || v == "1"
	}
	if v := getenv("LOSTLINK_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
}
