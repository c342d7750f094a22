package wiki

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/mrcode/dose-timeline/internal/models"
	"gopkg.in/yaml.v3"
)

// Catalog is an offline Source backed by a YAML or JSON file holding a
// list of substances in the API's response shape
type Catalog struct {
	substances []models.Substance
}

type catalogFile struct {
	Substances []*substancePayload `json:"substances" yaml:"substances"`
}

// LoadCatalog reads a catalog file. The format is picked from the extension;
// anything that is not .json is parsed as YAML.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Catalog path is chosen by the user
	if err != nil {
		return nil, fmt.Errorf("reading catalog: %w", err)
	}
	return ParseCatalog(data, strings.EqualFold(filepath.Ext(path), ".json"))
}

// ParseCatalog decodes catalog data
func ParseCatalog(data []byte, isJSON bool) (*Catalog, error) {
	var file catalogFile
	var err error
	if isJSON {
		err = json.Unmarshal(data, &file)
	} else {
		err = yaml.Unmarshal(data, &file)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing catalog: %w", err)
	}

	return &Catalog{substances: convertSubstances(file.Substances)}, nil
}

// FetchSubstances returns the substances whose name contains query,
// ignoring case. An empty query matches everything.
func (c *Catalog) FetchSubstances(_ context.Context, query string) ([]models.Substance, error) {
	query = strings.ToLower(strings.TrimSpace(query))

	var matches []models.Substance
	for _, s := range c.substances {
		if strings.Contains(strings.ToLower(s.Name), query) {
			matches = append(matches, s)
		}
	}
	return matches, nil
}

// Len returns the number of substances in the catalog
func (c *Catalog) Len() int {
	return len(c.substances)
}
