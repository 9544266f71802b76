// Package fixtures holds the sample roster, contractor directory and jobs used by
// mock mode and by the in-memory server repositories.
package fixtures

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/swiftapp/staff-service/internal/domain"
)

//go:embed dataset.yaml
var datasetYAML []byte

// Dataset is the decoded fixture file.
type Dataset struct {
	Staff      []domain.StaffMember         `yaml:"staff"`
	Candidates []domain.DirectoryContractor `yaml:"candidates"`
	Jobs       []domain.Job                 `yaml:"jobs"`
}

// Load decodes a fresh copy of the embedded dataset. Callers own the returned
// slices.
func Load() (*Dataset, error) {
	var ds Dataset
	if err := yaml.Unmarshal(datasetYAML, &ds); err != nil {
		return nil, fmt.Errorf("decode fixtures: %w", err)
	}
	for i := range ds.Staff {
		ds.Staff[i].Normalize()
		if err := ds.Staff[i].Validate(); err != nil {
			return nil, fmt.Errorf("fixture %s: %w", ds.Staff[i].ID, err)
		}
	}
	return &ds, nil
}

// MustLoad is Load for package initialisation and tests.
func MustLoad() *Dataset {
	ds, err := Load()
	if err != nil {
		panic(err)
	}
	return ds
}
