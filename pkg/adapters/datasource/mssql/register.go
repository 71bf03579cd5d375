package mssql

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/adapters/datasource"
	"github.com/ekaya-inc/metaseed/pkg/config"
)

func init() {
	datasource.Register(datasource.AdapterRegistration{
		Info: datasource.AdapterInfo{
			Type:        config.DatasourceMSSQL,
			DisplayName: "Microsoft SQL Server",
			Description: "Connect to SQL Server 2019+, Azure SQL Database",
		},
		Factory: func(ctx context.Context, cfg *config.DatasourceConfig, logger *zap.Logger) (datasource.SchemaReader, error) {
			return NewSchemaReader(ctx, FromDatasourceConfig(cfg), logger)
		},
	})
}
