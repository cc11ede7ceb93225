package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for the mentor server
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Admin   AdminConfig   `mapstructure:"admin"`
	Storage StorageConfig `mapstructure:"storage"`
	RAG     RAGConfig     `mapstructure:"rag"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Chat    ChatConfig    `mapstructure:"chat"`
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host         string   `mapstructure:"host"`
	Port         int      `mapstructure:"port"`
	AllowOrigins []string `mapstructure:"allow_origins"`
}

// AdminConfig holds admin authentication configuration
type AdminConfig struct {
	APIKey string `mapstructure:"api_key"`
}

// StorageConfig holds the knowledge source directories and the store path
type StorageConfig struct {
	SeedDir   string `mapstructure:"seed_dir"`
	UploadDir string `mapstructure:"upload_dir"`
	DBPath    string `mapstructure:"db_path"`
}

// RAGConfig holds retrieval configuration
type RAGConfig struct {
	Enabled   bool `mapstructure:"enabled"`
	ChunkSize int  `mapstructure:"chunk_size"`
	TopK      int  `mapstructure:"top_k"`
}

// LLMConfig holds model provider configuration.
// The API key is environment-only; it never lives in a config file.
type LLMConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	APIKeyEnv      string `mapstructure:"api_key_env"`
	ChatModel      string `mapstructure:"chat_model"`
	EmbeddingModel string `mapstructure:"embedding_model"`
}

// ChatConfig holds the fixed responder instruction
type ChatConfig struct {
	SystemPrompt string `mapstructure:"system_prompt"`
}

const defaultSystemPrompt = `You are Zinister, an alien mentor focused on personal finance.
Style: brief, 3-6 bullets, under ~120 words. Keep advice honest, legal, and practical.
End with one clarifying question.`

// Load loads configuration from file and environment
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Read config file if specified
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	// Environment variables
	v.SetEnvPrefix("MENTOR")
	v.AutomaticEnv()

	// Read config
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.allow_origins", []string{"*"})

	v.SetDefault("admin.api_key", "")

	v.SetDefault("storage.seed_dir", "./knowledge")
	v.SetDefault("storage.upload_dir", "./data/uploads")
	v.SetDefault("storage.db_path", "./data/mentor.db")

	v.SetDefault("rag.enabled", true)
	v.SetDefault("rag.chunk_size", 900)
	v.SetDefault("rag.top_k", 4)

	v.SetDefault("llm.base_url", "https://api.openai.com/v1")
	v.SetDefault("llm.api_key_env", "OPENAI_API_KEY")
	v.SetDefault("llm.chat_model", "gpt-4o-mini")
	v.SetDefault("llm.embedding_model", "text-embedding-3-small")

	v.SetDefault("chat.system_prompt", defaultSystemPrompt)
}

// Address returns the server address
func (c *Config) Address() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// APIKey resolves the provider credential from the environment.
// Empty means the responder path is unavailable.
func (c *Config) APIKey() string {
	return os.Getenv(c.LLM.APIKeyEnv)
}
