package assets

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/soocke/wallpreview-go/domain/sizing"
)

// SizesYAML contains the built-in size catalog.
//
//go:embed sizes.yaml
var SizesYAML []byte

// DefaultCatalog parses the embedded catalog.
func DefaultCatalog() (*sizing.Catalog, error) {
	if len(SizesYAML) == 0 {
		return nil, fmt.Errorf("embedded sizes.yaml is empty")
	}
	return sizing.ParseCatalog(SizesYAML)
}

// LoadCatalog reads a catalog from path, or the embedded one when path is empty.
// defaultID, when known to the catalog, overrides the catalog's own default.
func LoadCatalog(path, defaultID string) (*sizing.Catalog, error) {
	var (
		c   *sizing.Catalog
		err error
	)
	if path == "" {
		c, err = DefaultCatalog()
	} else {
		var f *os.File
		if f, err = os.Open(path); err != nil {
			return nil, fmt.Errorf("open catalog: %w", err)
		}
		defer f.Close()
		c, err = sizing.LoadCatalog(f)
	}
	if err != nil {
		return nil, err
	}
	if defaultID != "" {
		c = c.WithDefault(defaultID)
	}
	return c, nil
}
