package gateway

import (
	"context"
	"fmt"

	"github.com/marketsense/marketsense/internal/config"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"
)

// NewModel creates the underlying LLM model based on configuration.
func NewModel(ctx context.Context, cfg config.LLMConfig) (llms.Model, error) {
	switch cfg.Provider {
	case "", "googleai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("googleai API key required")
		}
		model, err := googleai.New(ctx,
			googleai.WithAPIKey(cfg.APIKey),
			googleai.WithDefaultModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create googleai model: %w", err)
		}
		return model, nil

	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("openai API key required")
		}
		model, err := openai.New(
			openai.WithToken(cfg.APIKey),
			openai.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, fmt.Errorf("create openai model: %w", err)
		}
		return model, nil

	case "ollama":
		model, err := ollama.New(
			ollama.WithModel(cfg.Model),
			ollama.WithServerURL(cfg.BaseURL),
		)
		if err != nil {
			return nil, fmt.Errorf("create ollama model: %w", err)
		}
		return model, nil

	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
