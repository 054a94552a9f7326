package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ledgerworks/simpnl/internal/attribution"
	"github.com/ledgerworks/simpnl/internal/model"
)

// FileName is the config file looked up in the working directory.
const FileName = "simpnl.yaml"

// Config represents the top-level simpnl.yaml configuration.
type Config struct {
	Report     ReportConfig     `yaml:"report"`
	Analysis   AnalysisConfig   `yaml:"analysis"`
	Allocation AllocationConfig `yaml:"allocation"`
}

// ReportConfig controls how statements are printed.
type ReportConfig struct {
	Currency string `yaml:"currency"` // ISO 4217 code, e.g. "USD"
	Format   string `yaml:"format"`
	Sort     string `yaml:"sort"` // "business" or "profit"
}

// AnalysisConfig holds defaults for the analyze command.
type AnalysisConfig struct {
	Input       string `yaml:"input"`
	Granularity string `yaml:"granularity,omitempty"` // empty for a single whole-ledger statement
}

// AllocationConfig lists the transaction types of each shared-cost pool.
type AllocationConfig struct {
	RevenueBasedTypes []string `yaml:"revenue_based_types"`
	EqualSplitTypes   []string `yaml:"equal_split_types"`
}

// Load reads a simpnl.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	p := attribution.DefaultPolicy()
	return &Config{
		Report: ReportConfig{
			Currency: "USD",
			Format:   "table",
			Sort:     "profit",
		},
		Analysis: AnalysisConfig{
			Input: "bigambitions",
		},
		Allocation: AllocationConfig{
			RevenueBasedTypes: typeNames(p.RevenueBased),
			EqualSplitTypes:   typeNames(p.EqualSplit),
		},
	}
}

// Policy builds the shared-cost policy from the allocation section.
func (c *Config) Policy() (attribution.Policy, error) {
	p, err := attribution.NewPolicy(c.Allocation.RevenueBasedTypes, c.Allocation.EqualSplitTypes)
	if err != nil {
		return attribution.Policy{}, fmt.Errorf("allocation: %w", err)
	}
	return p, nil
}

func typeNames(set map[model.TransactionType]bool) []string {
	var names []string
	for _, t := range model.KnownTypes() {
		if set[t] {
			names = append(names, string(t))
		}
	}
	return names
}
