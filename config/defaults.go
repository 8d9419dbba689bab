package config

func DefaultSystemConfig() *SystemConfig {
	return &SystemConfig{
		DataDirectory: "~/.local/share/urbangpt",
	}
}

func defaultConfig() *Config {
	return &Config{
		DataDirectory: "~/.local/share/urbangpt",
		ListenAddr:    ":8080",
		ProviderID:    "openai",
		ProviderModel: "gpt-4-1106-preview",
		OllamaHost:    "http://localhost:11434",
		OllamaModel:   "llama3.1:latest",
		PythonBin:     "python3",
		ScriptsDir:    "script",
	}
}

func GenerateSystemConfigTemplate() string {
	return `# UrbanGPT System Configuration
# Location: ~/.config/urbangpt/settings.toml
# This file uses TOML format: https://toml.io

# Directory where the chat database, uploads and user config are stored
data_directory = "~/.local/share/urbangpt"
`
}

func GenerateUserConfigTemplate() string {
	return `# UrbanGPT Service Configuration
# Location: <data_directory>/config.toml
# This file uses TOML format: https://toml.io

# Address the HTTP server listens on
listen_addr = ":8080"

[provider]
# Language model provider: "openai", "anthropic" or "ollama"
id = "openai"

# Model used for every chat turn
model = "gpt-4-1106-preview"

# API key (cloud providers only; may also come from URBANGPT_OPENAI_KEY)
api_key = ""

[ollama]
# Ollama server URL (used when provider id is "ollama")
host = "http://localhost:11434"

default_model = "llama3.1:latest"

[analysis]
# Python interpreter and directory holding ols.py / ols_mul.py
python_bin = "python3"
scripts_dir = "script"

[retrieval]
# Base URL of the embedding search service ("" disables retrieval)
embedding_server_url = ""
`
}
