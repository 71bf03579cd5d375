package datasource

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/ekaya-inc/metaseed/pkg/config"
)

// AdapterInfo describes a registered datasource type.
type AdapterInfo struct {
	Type        string // "mssql", "postgres", "mysql"
	DisplayName string // "Microsoft SQL Server"
	Description string
}

// ReaderFactory opens a SchemaReader for a datasource configuration.
type ReaderFactory func(ctx context.Context, cfg *config.DatasourceConfig, logger *zap.Logger) (SchemaReader, error)

// AdapterRegistration contains info + the factory for one datasource type.
type AdapterRegistration struct {
	Info    AdapterInfo
	Factory ReaderFactory
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]AdapterRegistration)
)

// Register is called by each adapter's init() function.
// Thread-safe for concurrent init() calls.
func Register(reg AdapterRegistration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[reg.Info.Type] = reg
}

// RegisteredAdapters returns info for all registered adapters, sorted by type.
func RegisteredAdapters() []AdapterInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]AdapterInfo, 0, len(registry))
	for _, reg := range registry {
		result = append(result, reg.Info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// IsRegistered checks if an adapter type is available.
func IsRegistered(dsType string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[dsType]
	return ok
}
