package config

const (
	DefaultHost        = "0.0.0.0"
	DefaultPort        = 8000
	DefaultEnvironment = "development"
	DefaultLogLevel    = "info"

	DefaultRateLimitPerMinute = 60

	DefaultDBMaxOpenConns = 10
	DefaultDBMaxIdleConns = 5

	DefaultLLMModel = "claude-sonnet-4-6"

	// Generation parameters are fixed: low randomness, bounded output.
	DefaultLLMTemperature = 0.1
	DefaultLLMMaxTokens   = 500
)

var DefaultCORSOrigins = []string{"*"}

var DefaultSensitiveColumns = []string{
	"email", "phone", "credit_card", "card_number",
	"password", "secret", "token", "api_key",
}
