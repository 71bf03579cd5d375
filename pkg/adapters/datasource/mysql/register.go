package mysql

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/config"
)

func init() {
	datasource.Register(datasource.AdapterRegistration{
		Info: datasource.AdapterInfo{
			Type:        config.DatasourceMySQL,
			DisplayName: "MySQL",
			Description: "Connect to MySQL 8+, MariaDB, Aurora MySQL",
		},
		Factory: func(ctx context.Context, cfg *config.DatasourceConfig, logger *zap.Logger) (datasource.SchemaReader, error) {
			return NewSchemaReader(ctx, FromDatasourceConfig(cfg), logger)
		},
	})
}
