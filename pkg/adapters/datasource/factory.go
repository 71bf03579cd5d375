package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/apperrors"
	"github.com/ekaya-inc/metaseed/pkg/config"
)

// NewSchemaReader opens a reader for cfg.Type using the registered factory.
// The dialect package must have been imported for its init() to run.
func NewSchemaReader(ctx context.Context, cfg *config.DatasourceConfig, logger *zap.Logger) (SchemaReader, error) {
	registryMu.RLock()
	reg, ok := registry[cfg.Type]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s (not compiled in)", apperrors.ErrUnknownDialect, cfg.Type)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return reg.Factory(ctx, cfg, logger)
}
