package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/saeedalam/reablocks-mcp/internal/catalog"
	"github.com/saeedalam/reablocks-mcp/pkg/types"
)

type catalogDocument struct {
	Components []types.ComponentDescriptor `json:"components" yaml:"components"`
}

// WriteCatalogYAML writes cat in the same format catalog.Load reads
func WriteCatalogYAML(path string, cat *catalog.Catalog) error {
	data, err := yaml.Marshal(catalogDocument{Components: cat.Entries()})
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	return writeAtomic(path, data)
}

// WriteCatalogJSON writes cat as indented JSON
func WriteCatalogJSON(path string, cat *catalog.Catalog) error {
	data, err := json.MarshalIndent(catalogDocument{Components: cat.Entries()}, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal catalog: %w", err)
	}
	// Trailing newline for clean git diffs
	return writeAtomic(path, append(data, '\n'))
}

// writeAtomic writes data to a uniquely named temp file in the target
// directory and renames it over path, so readers and concurrent writers
// only ever see a complete file.
func writeAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
