// currency/catalog.go
package currency

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Catalog is the document format of a currency file. JSON documents parse
// too, since JSON is a subset of YAML.
//
//	currencies:
//	  - code: 978
//	    name: EUR
//	    integer:  {one: euro, few: euros, many: euros, gender: masculine}
//	    fraction: {one: cent, few: cents, many: cents, gender: masculine}
//	    spell_zero_fraction: true
type Catalog struct {
	Currencies []Currency `json:"currencies" yaml:"currencies"`
}

// LoadCatalog parses a catalog and validates every entry. An empty document
// yields no currencies.
func LoadCatalog(r io.Reader) ([]Currency, error) {
	var cat Catalog
	if err := yaml.NewDecoder(r).Decode(&cat); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("currency: parse catalog: %w", err)
	}

	for i, c := range cat.Currencies {
		if err := Validate(c); err != nil {
			return nil, fmt.Errorf("currency: catalog entry %d: %w", i, err)
		}
	}
	return cat.Currencies, nil
}

// LoadCatalogFile reads a catalog from path.
func LoadCatalogFile(path string) ([]Currency, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("currency: open catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}
