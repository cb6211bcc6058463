package model

// ================ Config ================
type ClassifierModelConfig struct {
	Model          string  `envconfig:"CLASSIFIER_MODEL" default:"gemini-2.5-flash"`
	MaxTokens      int     `envconfig:"CLASSIFIER_MAX_TOKENS" default:"1024"`
	Temperature    float32 `envconfig:"CLASSIFIER_TEMPERATURE" default:"0.1"`
	ThinkingBudget int32   `envconfig:"CLASSIFIER_THINKING_BUDGET" default:"0"`
}

type CacheConfig struct {
	Enabled bool   `envconfig:"CLASSIFICATION_CACHE_ENABLED" default:"false"`
	TTL     string `envconfig:"CLASSIFICATION_CACHE_TTL" default:"24h"`
}
