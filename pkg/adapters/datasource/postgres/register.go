package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/config"
)

func init() {
	datasource.Register(datasource.AdapterRegistration{
		Info: datasource.AdapterInfo{
			Type:        config.DatasourcePostgres,
			DisplayName: "PostgreSQL",
			Description: "Connect to PostgreSQL 12+, Aurora PostgreSQL, Supabase",
		},
		Factory: func(ctx context.Context, cfg *config.DatasourceConfig, logger *zap.Logger) (datasource.SchemaReader, error) {
			return NewSchemaReader(ctx, FromDatasourceConfig(cfg), logger)
		},
	})
}
