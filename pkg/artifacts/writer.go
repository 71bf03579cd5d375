// Package artifacts serializes a built catalog into the three files consumed
// by the data catalog loader.
package artifacts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/ekaya-inc/metaseed/pkg/models"
)

// Fixed artifact file names. Each run overwrites them.
const (
	ColumnMetadataFile = "column_metadata.json"
	TableMetadataFile  = "table_metadata.json"
	RelationshipsFile  = "table_relationship.yaml"
	defaultFileMode    = 0o644
	indent             = "  "
	yamlIndent         = 2
)

// Writer writes catalog artifacts into a directory.
type Writer struct {
	dir    string
	logger *zap.Logger
}

// NewWriter creates a writer for dir. An empty dir means the working directory.
func NewWriter(dir string, logger *zap.Logger) *Writer {
	if dir == "" {
		dir = "."
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Writer{dir: dir, logger: logger.Named("artifacts")}
}

// Write serializes all three artifacts. Files are written one after another
// and independently: a failure leaves earlier files in place.
func (w *Writer) Write(catalog *models.Catalog) error {
	if catalog == nil {
		return fmt.Errorf("nil catalog")
	}

	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return fmt.Errorf("create output directory %s: %w", w.dir, err)
	}

	columns, err := EncodeJSON(nonNil(catalog.Columns))
	if err != nil {
		return fmt.Errorf("encode %s: %w", ColumnMetadataFile, err)
	}
	if err := w.writeFile(ColumnMetadataFile, columns); err != nil {
		return err
	}

	tables, err := EncodeJSON(nonNil(catalog.Tables))
	if err != nil {
		return fmt.Errorf("encode %s: %w", TableMetadataFile, err)
	}
	if err := w.writeFile(TableMetadataFile, tables); err != nil {
		return err
	}

	relationships, err := EncodeRelationships(catalog.Relationships)
	if err != nil {
		return fmt.Errorf("encode %s: %w", RelationshipsFile, err)
	}
	return w.writeFile(RelationshipsFile, relationships)
}

// EncodeJSON renders v as two-space indented JSON with non-ASCII and HTML
// characters kept literal.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", indent)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeRelationships renders the relationship document. Every record is
// written inline; yaml.v3 only emits anchors for nodes that declare them.
func EncodeRelationships(records []models.RelationshipRecord) ([]byte, error) {
	doc := models.RelationshipDocument{Relationships: nonNil(records)}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeFile replaces name atomically: data goes to a temporary sibling
// which is then renamed over the destination.
func (w *Writer) writeFile(name string, data []byte) error {
	path := filepath.Join(w.dir, name)

	tmp, err := os.CreateTemp(w.dir, "."+name+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temporary file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Chmod(tmpName, defaultFileMode); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}

	w.logger.Info("Wrote artifact", zap.String("path", path), zap.Int("bytes", len(data)))
	return nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
