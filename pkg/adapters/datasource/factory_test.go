package datasource

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"

	"github.com/ekaya-inc/metaseed/pkg/apperrors"
	"github.com/ekaya-inc/metaseed/pkg/config"
)

// stubReader satisfies SchemaReader for registry tests.
type stubReader struct {
	cfg    *config.DatasourceConfig
	closed bool
}

func (s *stubReader) Columns(ctx context.Context, table TableRef) ([]ColumnMetadata, error) {
	return nil, nil
}

func (s *stubReader) PrimaryKeys(ctx context.Context, table TableRef) ([]string, error) {
	return nil, nil
}

func (s *stubReader) ForeignKeys(ctx context.Context, table TableRef) ([]ForeignKeyMetadata, error) {
	return nil, nil
}

func (s *stubReader) ExampleValues(ctx context.Context, table TableRef, column ColumnMetadata, limit int) ([]string, error) {
	return nil, nil
}

func (s *stubReader) Close() error {
	s.closed = true
	return nil
}

func TestNewSchemaReader_UsesRegisteredFactory(t *testing.T) {
	var gotLogger *zap.Logger
	Register(AdapterRegistration{
		Info: AdapterInfo{Type: "stub-factory", DisplayName: "Stub"},
		Factory: func(ctx context.Context, cfg *config.DatasourceConfig, logger *zap.Logger) (SchemaReader, error) {
			gotLogger = logger
			return &stubReader{cfg: cfg}, nil
		},
	})

	cfg := &config.DatasourceConfig{Type: "stub-factory", Host: "db"}
	reader, err := NewSchemaReader(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)

	stub, ok := reader.(*stubReader)
	require.True(t, ok)
	assert.Same(t, cfg, stub.cfg)
	assert.NotNil(t, gotLogger)
	assert.True(t, IsRegistered("stub-factory"))
}

func TestNewSchemaReader_NilLoggerBecomesNop(t *testing.T) {
	var gotLogger *zap.Logger
	Register(AdapterRegistration{
		Info: AdapterInfo{Type: "stub-nil-logger"},
		Factory: func(ctx context.Context, cfg *config.DatasourceConfig, logger *zap.Logger) (SchemaReader, error) {
			gotLogger = logger
			return &stubReader{}, nil
		},
	})

	_, err := NewSchemaReader(context.Background(), &config.DatasourceConfig{Type: "stub-nil-logger"}, nil)
	require.NoError(t, err)
	assert.NotNil(t, gotLogger)
}

func TestNewSchemaReader_UnknownType(t *testing.T) {
	_, err := NewSchemaReader(context.Background(), &config.DatasourceConfig{Type: "oracle"}, nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrUnknownDialect))
	assert.Contains(t, err.Error(), "not compiled in")
	assert.False(t, IsRegistered("oracle"))
}

func TestNewSchemaReader_FactoryErrorPropagates(t *testing.T) {
	boom := errors.New("login failed")
	Register(AdapterRegistration{
		Info: AdapterInfo{Type: "stub-failing"},
		Factory: func(ctx context.Context, cfg *config.DatasourceConfig, logger *zap.Logger) (SchemaReader, error) {
			return nil, boom
		},
	})

	_, err := NewSchemaReader(context.Background(), &config.DatasourceConfig{Type: "stub-failing"}, nil)
	assert.ErrorIs(t, err, boom)
}

func TestRegisteredAdapters_Sorted(t *testing.T) {
	Register(AdapterRegistration{Info: AdapterInfo{Type: "zz-stub"}})
	Register(AdapterRegistration{Info: AdapterInfo{Type: "aa-stub"}})

	infos := RegisteredAdapters()
	require.NotEmpty(t, infos)
	for i := 1; i < len(infos); i++ {
		assert.Less(t, infos[i-1].Type, infos[i].Type)
	}
}

func TestParseTableRef(t *testing.T) {
	tests := []struct {
		name          string
		input         string
		defaultSchema string
		want          TableRef
	}{
		{"bare", "Orders", "", TableRef{Name: "Orders"}},
		{"bare with default", "Orders", "sales", TableRef{Schema: "sales", Name: "Orders"}},
		{"qualified wins over default", "dbo.Orders", "sales", TableRef{Schema: "dbo", Name: "Orders"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseTableRef(tt.input, tt.defaultSchema)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "dbo.Orders", TableRef{Schema: "dbo", Name: "Orders"}.String())
	assert.Equal(t, "Orders", TableRef{Name: "Orders"}.String())
}
