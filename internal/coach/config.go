package coach

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/abhisek/nodaysoff/internal/store"
)

// Config selects and configures the recap provider.
type Config struct {
	// Provider is one of anthropic, openai, gemini or mock. Empty disables
	// the coach.
	Provider string
	Model    string

	AnthropicAPIKey string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	GeminiAPIKey    string

	// Timeout bounds one recap including retries.
	Timeout time.Duration
	Retry   store.RetryConfig
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool { return c.Provider != "" }

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	switch c.Provider {
	case "", "mock":
	case "anthropic":
		if c.AnthropicAPIKey == "" {
			return fmt.Errorf("NODAYSOFF_ANTHROPIC_API_KEY is required for the anthropic coach")
		}
	case "openai":
		if c.OpenAIAPIKey == "" {
			return fmt.Errorf("NODAYSOFF_OPENAI_API_KEY is required for the openai coach")
		}
	case "gemini":
		if c.GeminiAPIKey == "" {
			return fmt.Errorf("NODAYSOFF_GEMINI_API_KEY is required for the gemini coach")
		}
	default:
		return fmt.Errorf("unknown coach provider: %q", c.Provider)
	}
	return nil
}

// NewProvider builds the configured provider wrapped as
// caller -> retry -> logging -> base.
func NewProvider(ctx context.Context, cfg Config, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.AnthropicAPIKey, cfg.Model)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.Model, cfg.OpenAIBaseURL)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.Model)
	case "mock":
		base = NewMockProvider()
	default:
		return nil, fmt.Errorf("no coach provider configured")
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s coach: %w", cfg.Provider, err)
	}

	return WithRetry(WithLogging(base, logger), cfg.Retry), nil
}

// New returns a Coach for cfg, or nil when the coach is disabled.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Coach, error) {
	if !cfg.Enabled() {
		return nil, nil
	}
	p, err := NewProvider(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	return NewCoach(p, cfg.Timeout), nil
}
