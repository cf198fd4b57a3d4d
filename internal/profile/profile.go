package profile

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/pkg/errors"
)

// Profile is the configuration to start the main server.
type Profile struct {
	// Mode can be "prod" or "dev" or "demo"
	Mode string
	// Addr is the binding address for server
	Addr string
	// Port is the binding port for server
	Port int
	// Data is the data directory
	Data string
	// DSN points to where memag stores its own data
	DSN string
	// Driver is the database driver (sqlite or postgres)
	Driver string
	// Version is the current version of server
	Version string
	// UserName is the name the assistant signs replies with
	UserName string

	// AI Configuration
	AIProvider        string  // MEMAG_AI_PROVIDER (openai, deepseek, nvidia, ollama)
	AIOpenAIAPIKey    string  // MEMAG_AI_OPENAI_API_KEY
	AIOpenAIBaseURL   string  // MEMAG_AI_OPENAI_BASE_URL (default: https://api.openai.com/v1)
	AIDeepSeekAPIKey  string  // MEMAG_AI_DEEPSEEK_API_KEY
	AIDeepSeekBaseURL string  // MEMAG_AI_DEEPSEEK_BASE_URL (default: https://api.deepseek.com/v1)
	AINvidiaAPIKey    string  // MEMAG_AI_NVIDIA_API_KEY
	AINvidiaBaseURL   string  // MEMAG_AI_NVIDIA_BASE_URL (default: https://integrate.api.nvidia.com/v1)
	AIOllamaBaseURL   string  // MEMAG_AI_OLLAMA_BASE_URL (default: http://localhost:11434/v1)
	AIModel           string  // MEMAG_AI_MODEL (default: gpt-4o-mini)
	AIEmbeddingModel  string  // MEMAG_AI_EMBEDDING_MODEL (default: text-embedding-3-small)
	AITemperature     float32 // MEMAG_AI_TEMPERATURE (default: 0.7)
	AIMaxTokens       int     // MEMAG_AI_MAX_TOKENS (default: 2048)
	AITimeoutSeconds  int     // MEMAG_AI_TIMEOUT_SECONDS (default: 30)

	// Memory Configuration
	MemoryTopK int // MEMAG_MEMORY_TOP_K (default: 3)
}

func (p *Profile) IsDev() bool {
	return p.Mode != "prod"
}

// IsAIEnabled returns true if the selected provider has credentials configured.
// Ollama needs only a base URL since it runs without an API key.
func (p *Profile) IsAIEnabled() bool {
	switch p.AIProvider {
	case "openai":
		return p.AIOpenAIAPIKey != ""
	case "deepseek":
		return p.AIDeepSeekAPIKey != ""
	case "nvidia":
		return p.AINvidiaAPIKey != ""
	case "ollama":
		return p.AIOllamaBaseURL != ""
	}
	return false
}

// FromEnv loads configuration from MEMAG_* environment variables.
func (p *Profile) FromEnv() {
	p.Mode = getEnvOrDefault("MEMAG_MODE", p.Mode)
	p.Addr = getEnvOrDefault("MEMAG_ADDR", p.Addr)
	if v := os.Getenv("MEMAG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			p.Port = port
		}
	}
	p.Data = getEnvOrDefault("MEMAG_DATA", p.Data)
	p.DSN = getEnvOrDefault("MEMAG_DSN", p.DSN)
	p.Driver = getEnvOrDefault("MEMAG_DRIVER", p.Driver)
	p.UserName = getEnvOrDefault("MEMAG_USER_NAME", p.UserName)

	p.AIProvider = getEnvOrDefault("MEMAG_AI_PROVIDER", p.AIProvider)
	p.AIOpenAIAPIKey = getEnvOrDefault("MEMAG_AI_OPENAI_API_KEY", p.AIOpenAIAPIKey)
	p.AIOpenAIBaseURL = getEnvOrDefault("MEMAG_AI_OPENAI_BASE_URL", "https://api.openai.com/v1")
	p.AIDeepSeekAPIKey = getEnvOrDefault("MEMAG_AI_DEEPSEEK_API_KEY", p.AIDeepSeekAPIKey)
	p.AIDeepSeekBaseURL = getEnvOrDefault("MEMAG_AI_DEEPSEEK_BASE_URL", "https://api.deepseek.com/v1")
	p.AINvidiaAPIKey = getEnvOrDefault("MEMAG_AI_NVIDIA_API_KEY", p.AINvidiaAPIKey)
	p.AINvidiaBaseURL = getEnvOrDefault("MEMAG_AI_NVIDIA_BASE_URL", "https://integrate.api.nvidia.com/v1")
	p.AIOllamaBaseURL = getEnvOrDefault("MEMAG_AI_OLLAMA_BASE_URL", p.AIOllamaBaseURL)
	p.AIModel = getEnvOrDefault("MEMAG_AI_MODEL", "gpt-4o-mini")
	p.AIEmbeddingModel = getEnvOrDefault("MEMAG_AI_EMBEDDING_MODEL", "text-embedding-3-small")

	if v := os.Getenv("MEMAG_AI_TEMPERATURE"); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			p.AITemperature = float32(f)
		}
	}
	if v := os.Getenv("MEMAG_AI_MAX_TOKENS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.AIMaxTokens = n
		}
	}
	if v := os.Getenv("MEMAG_AI_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.AITimeoutSeconds = n
		}
	}
	if v := os.Getenv("MEMAG_MEMORY_TOP_K"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			p.MemoryTopK = n
		}
	}
}

// Validate normalizes and validates the profile, applying defaults.
func (p *Profile) Validate() error {
	if p.Mode != "demo" && p.Mode != "dev" && p.Mode != "prod" {
		p.Mode = "demo"
	}

	if p.Driver == "" {
		p.Driver = "sqlite"
	}
	if p.Driver != "sqlite" && p.Driver != "postgres" {
		return errors.Errorf("unsupported db driver: %s", p.Driver)
	}
	if p.Driver == "postgres" && p.DSN == "" {
		return errors.New("dsn is required for postgres driver")
	}

	dataDir, err := checkDataDir(p.Data)
	if err != nil {
		return errors.Wrap(err, "failed to check data directory")
	}
	p.Data = dataDir

	if p.Driver == "sqlite" && p.DSN == "" {
		dbFile := fmt.Sprintf("memag_%s.db", p.Mode)
		p.DSN = filepath.Join(p.Data, dbFile)
	}

	if p.UserName == "" {
		p.UserName = "Pratik"
	}
	if p.AIProvider == "" {
		p.AIProvider = "openai"
	}
	if p.AITemperature == 0 {
		p.AITemperature = 0.7
	}
	if p.AIMaxTokens == 0 {
		p.AIMaxTokens = 2048
	}
	if p.AITimeoutSeconds == 0 {
		p.AITimeoutSeconds = 30
	}
	if p.MemoryTopK == 0 {
		p.MemoryTopK = 3
	}

	return nil
}

func checkDataDir(dataDir string) (string, error) {
	if dataDir == "" {
		dataDir = "./data"
	}
	absDir, err := filepath.Abs(dataDir)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return "", err
	}
	return absDir, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
