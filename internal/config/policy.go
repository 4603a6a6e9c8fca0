package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gosupply/internal/compare"
	"gosupply/internal/errors"

	"gopkg.in/yaml.v3"
)

// Policy is the planning policy file. Only fields present in the file
// override the environment.
type Policy struct {
	RouteTimeValuePerHour *float64                 `yaml:"route_time_value_per_hour"`
	TransferServiceFactor *float64                 `yaml:"transfer_service_factor"`
	SupplierWeights       *compare.SupplierWeights `yaml:"supplier_weights"`
	SimulationRuns        *int                     `yaml:"simulation_runs"`
}

// LoadPolicy reads a YAML policy file
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.ConfigInvalid(fmt.Sprintf("cannot read planning policy %s: %v", path, err))
	}
	return ParsePolicy(data)
}

// ParsePolicy decodes a YAML policy document, rejecting unknown keys
func ParsePolicy(data []byte) (*Policy, error) {
	var policy Policy
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&policy); err != nil && err != io.EOF {
		return nil, errors.ConfigInvalid(fmt.Sprintf("invalid planning policy: %v", err))
	}
	return &policy, nil
}

// Apply copies the fields set in the policy onto cfg
func (p *Policy) Apply(cfg *PlanningConfig) {
	if p.RouteTimeValuePerHour != nil {
		cfg.RouteTimeValuePerHour = *p.RouteTimeValuePerHour
	}
	if p.TransferServiceFactor != nil {
		cfg.TransferServiceFactor = *p.TransferServiceFactor
	}
	if p.SupplierWeights != nil {
		cfg.SupplierWeights = *p.SupplierWeights
	}
	if p.SimulationRuns != nil {
		cfg.SimulationRuns = *p.SimulationRuns
	}
}
