package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Database
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string

	// JWT
	JWTSecret string
	JWTExpiry time.Duration

	// Story generation backends
	AIProvider string
	AITimeout  time.Duration

	GeminiAPIKey string
	GeminiModel  string

	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string

	LocalAIURL   string
	LocalAIModel string

	OllamaURL   string
	OllamaModel string

	// Narration
	TTSEnabled  bool
	TTSURL      string
	TTSModel    string
	TTSMaxChars int
	TTSTimeout  time.Duration

	// Profile picture storage
	S3Bucket          string
	S3Region          string
	S3Endpoint        string
	S3PublicURL       string
	S3KeyPrefix       string
	S3ForcePathStyle  bool
	S3AccessKeyID     string
	S3SecretAccessKey string
	UploadDir         string

	// Server
	Port             string
	CORSOrigins      string
	BodyLimitMB      int
	LogRetentionDays int
	SentryDSN        string
	AppEnv           string
}

func Load() *Config {
	return &Config{
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "memory_lane"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		JWTSecret: getEnv("JWT_SECRET", ""),
		JWTExpiry: parseDuration(getEnv("JWT_EXPIRY", "24h"), 24*time.Hour),

		AIProvider: getEnv("AI_PROVIDER", "gemini"),
		AITimeout:  parseDuration(getEnv("AI_TIMEOUT", "120s"), 120*time.Second),

		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-flash-latest"),

		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),

		LocalAIURL:   getEnv("LOCAL_AI_URL", "http://localhost:11434/api/generate"),
		LocalAIModel: getEnv("LOCAL_AI_MODEL", "llava"),

		OllamaURL:   getEnv("OLLAMA_URL", "http://localhost:11434"),
		OllamaModel: getEnv("OLLAMA_MODEL", "llava"),

		TTSEnabled:  getEnvBool("TTS_ENABLED", false),
		TTSURL:      getEnv("TTS_URL", "http://localhost:5002"),
		TTSModel:    getEnv("TTS_MODEL", "speecht5_tts"),
		TTSMaxChars: getEnvInt("TTS_MAX_CHARS", 600),
		TTSTimeout:  parseDuration(getEnv("TTS_TIMEOUT", "90s"), 90*time.Second),

		S3Bucket:          getEnv("S3_BUCKET", ""),
		S3Region:          getEnv("S3_REGION", ""),
		S3Endpoint:        getEnv("S3_ENDPOINT", ""),
		S3PublicURL:       getEnv("S3_PUBLIC_URL", ""),
		S3KeyPrefix:       getEnv("S3_KEY_PREFIX", "profile-pictures"),
		S3ForcePathStyle:  getEnvBool("S3_FORCE_PATH_STYLE", false),
		S3AccessKeyID:     getEnv("S3_ACCESS_KEY_ID", ""),
		S3SecretAccessKey: getEnv("S3_SECRET_ACCESS_KEY", ""),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),

		Port:             getEnv("PORT", "8080"),
		CORSOrigins:      getEnv("CORS_ORIGINS", "*"),
		BodyLimitMB:      getEnvInt("BODY_LIMIT_MB", 25),
		LogRetentionDays: getEnvInt("LOG_RETENTION_DAYS", 30),
		SentryDSN:        getEnv("SENTRY_DSN", ""),
		AppEnv:           getEnv("APP_ENV", "development"),
	}
}

func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=" + c.DBSSLMode +
		" TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
