package config

import (
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type ProviderConfig struct {
	ID      string `toml:"id"`
	BaseURL string `toml:"base_url,omitempty"`
	APIKey  string `toml:"api_key,omitempty"`
	Model   string `toml:"model"`
}

type OllamaConfig struct {
	Host         string `toml:"host"`
	DefaultModel string `toml:"default_model"`
}

type AnalysisConfig struct {
	PythonBin  string `toml:"python_bin"`
	ScriptsDir string `toml:"scripts_dir"`
}

type RetrievalConfig struct {
	EmbeddingServerURL string `toml:"embedding_server_url"`
}

type UserConfig struct {
	ListenAddr string          `toml:"listen_addr"`
	StorageDir string          `toml:"storage_dir,omitempty"`
	Provider   ProviderConfig  `toml:"provider"`
	Ollama     OllamaConfig    `toml:"ollama"`
	Analysis   AnalysisConfig  `toml:"analysis"`
	Retrieval  RetrievalConfig `toml:"retrieval"`
}

// Config is the flattened runtime configuration assembled from the system
// config, the user config and environment overrides.
type Config struct {
	DataDirectory      string
	ListenAddr         string
	StorageDirectory   string
	ProviderID         string
	ProviderBaseURL    string
	ProviderAPIKey     string
	ProviderModel      string
	OllamaHost         string
	OllamaModel        string
	PythonBin          string
	ScriptsDir         string
	EmbeddingServerURL string
}

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// StorageDir is the upload directory scanned for tabular files. Defaults to
// <data>/storage/user when not configured explicitly.
func (c *Config) StorageDir() string {
	if c.StorageDirectory != "" {
		return ExpandPath(c.StorageDirectory)
	}
	return filepath.Join(c.DataDir(), "storage", "user")
}

// KeywordsFile is the keyword list consulted before QnA retrieval.
func (c *Config) KeywordsFile() string {
	return filepath.Join(c.StorageDir(), "keywords.json")
}

// DatabasePath is the SQLite file holding chats, projects and stages.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir(), "urbangpt.db")
}

func (c *Config) applyEnvOverrides() {
	set := func(dst *string, key string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	set(&c.DataDirectory, "URBANGPT_DATA_DIR")
	set(&c.ListenAddr, "URBANGPT_LISTEN_ADDR")
	set(&c.StorageDirectory, "URBANGPT_STORAGE_DIR")
	set(&c.ProviderID, "URBANGPT_PROVIDER")
	set(&c.ProviderBaseURL, "URBANGPT_OPENAI_BASE_URL")
	set(&c.ProviderAPIKey, "URBANGPT_OPENAI_KEY")
	set(&c.ProviderModel, "URBANGPT_OPENAI_MODEL")
	set(&c.OllamaHost, "URBANGPT_OLLAMA_HOST")
	set(&c.OllamaModel, "URBANGPT_OLLAMA_MODEL")
	set(&c.PythonBin, "URBANGPT_PYTHON_BIN")
	set(&c.ScriptsDir, "URBANGPT_SCRIPTS_DIR")
	set(&c.EmbeddingServerURL, "URBANGPT_EMBEDDING_URL")
	if c.ProviderID == "anthropic" {
		set(&c.ProviderAPIKey, "URBANGPT_ANTHROPIC_KEY")
	}
}

func CheckDebug() bool {
	debug := os.Getenv("URBANGPT_DEBUG")
	return debug == "true" || debug == "1"
}

func (c *Config) fromUserConfig(userCfg *UserConfig) {
	if userCfg.ListenAddr != "" {
		c.ListenAddr = userCfg.ListenAddr
	}
	if userCfg.StorageDir != "" {
		c.StorageDirectory = userCfg.StorageDir
	}
	if userCfg.Provider.ID != "" {
		c.ProviderID = userCfg.Provider.ID
	}
	if userCfg.Provider.BaseURL != "" {
		c.ProviderBaseURL = userCfg.Provider.BaseURL
	}
	if userCfg.Provider.APIKey != "" {
		c.ProviderAPIKey = userCfg.Provider.APIKey
	}
	if userCfg.Provider.Model != "" {
		c.ProviderModel = userCfg.Provider.Model
	}
	if userCfg.Ollama.Host != "" {
		c.OllamaHost = userCfg.Ollama.Host
	}
	if userCfg.Ollama.DefaultModel != "" {
		c.OllamaModel = userCfg.Ollama.DefaultModel
	}
	if userCfg.Analysis.PythonBin != "" {
		c.PythonBin = userCfg.Analysis.PythonBin
	}
	if userCfg.Analysis.ScriptsDir != "" {
		c.ScriptsDir = userCfg.Analysis.ScriptsDir
	}
	if userCfg.Retrieval.EmbeddingServerURL != "" {
		c.EmbeddingServerURL = userCfg.Retrieval.EmbeddingServerURL
	}
}

func Load() (*Config, error) {
	cfg := defaultConfig()

	settingsPath := GetSettingsFilePath()
	if FileExists(settingsPath) {
		systemCfg, err := LoadSystemConfig()
		if err != nil {
			return nil, err
		}
		cfg.DataDirectory = systemCfg.DataDirectory

		userCfg, err := LoadUserConfig(cfg.DataDir())
		if err != nil {
			return nil, err
		}
		cfg.fromUserConfig(userCfg)
	}

	// Environment always wins, and suffices on its own for container runs
	// where no settings file exists.
	cfg.applyEnvOverrides()

	for _, dir := range []string{cfg.DataDir(), cfg.StorageDir()} {
		if err := EnsureDir(dir); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}
