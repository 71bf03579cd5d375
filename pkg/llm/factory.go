package llm

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/apperrors"
	"github.com/ekaya-inc/metaseed/pkg/config"
)

// NewGenerator builds the generator for the configured provider.
//
// Only an unknown provider is an error. When the provider is known but its
// client cannot be built (missing endpoint or key), a warning is logged and
// an UnavailableGenerator is returned: the run still completes, with every
// description falling back.
func NewGenerator(cfg *config.LLMConfig, logger *zap.Logger) (TextGenerator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	clientCfg := &Config{
		Endpoint:    cfg.Endpoint,
		Model:       cfg.Model,
		APIKey:      cfg.APIKey,
		APIVersion:  cfg.APIVersion,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
	}

	var (
		gen TextGenerator
		err error
	)
	switch cfg.Provider {
	case config.ProviderAzure:
		clientCfg.Azure = true
		gen, err = NewClient(clientCfg, logger)
	case config.ProviderOpenAI:
		gen, err = NewClient(clientCfg, logger)
	case config.ProviderAnthropic:
		gen, err = NewAnthropicClient(clientCfg, logger)
	default:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownProvider, cfg.Provider)
	}

	if err != nil {
		logger.Warn("Text generation unavailable; all descriptions will use the fallback",
			zap.String("provider", cfg.Provider),
			zap.String("reason", err.Error()))
		return &UnavailableGenerator{Reason: err.Error()}, nil
	}

	fields := []zap.Field{
		zap.String("provider", cfg.Provider),
		zap.String("model", gen.GetModel()),
	}
	if c, ok := gen.(*Client); ok && c.GetEndpoint() != "" {
		fields = append(fields, zap.String("endpoint", c.GetEndpoint()))
	}
	logger.Info("Text generation configured", fields...)
	return gen, nil
}
