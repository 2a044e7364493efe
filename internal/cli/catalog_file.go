package cli

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/course-planner-api/internal/planner"
)

// catalogFile is the on-disk catalog format.
type catalogFile struct {
	Term   string             `yaml:"term,omitempty"`
	Split  []string           `yaml:"split,omitempty"`
	Groups []planner.RawGroup `yaml:"groups"`
}

func readCatalog(path string) (catalogFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return catalogFile{}, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()

	var catalog catalogFile
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		return catalogFile{}, fmt.Errorf("decode catalog %s: %w", path, err)
	}
	if len(catalog.Groups) == 0 {
		return catalogFile{}, fmt.Errorf("catalog %s has no groups", path)
	}
	return catalog, nil
}

func writeCatalog(w io.Writer, catalog catalogFile) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(catalog); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return enc.Close()
}
