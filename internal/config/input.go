package config

import (
	"fmt"
	"os"

	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// DefaultInvestmentEndAge is used when a scenario leaves investment_end_age unset
const DefaultInvestmentEndAge = 80

// InputParser handles parsing of input configuration files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads configuration from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*domain.Configuration, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.LoadFromBytes(data)
}

// LoadFromBytes parses, defaults and validates an in-memory configuration
func (ip *InputParser) LoadFromBytes(data []byte) (*domain.Configuration, error) {
	var config domain.Configuration
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	ip.ApplyDefaults(&config)

	// Validate the configuration
	if err := ip.ValidateConfiguration(&config); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// ApplyDefaults fills the fields a scenario may omit
func (ip *InputParser) ApplyDefaults(config *domain.Configuration) {
	for i := range config.Scenarios {
		scenario := &config.Scenarios[i]
		if scenario.Name == "" {
			scenario.Name = fmt.Sprintf("Scenario %d", i+1)
		}
		if scenario.Plan.RegularStartAge == 0 {
			scenario.Plan.RegularStartAge = domain.DefaultRegularStartAge
		}
		if scenario.Assumptions.InvestmentEndAge == 0 {
			scenario.Assumptions.InvestmentEndAge = DefaultInvestmentEndAge
		}
	}
}

// ValidateConfiguration validates the loaded configuration
func (ip *InputParser) ValidateConfiguration(config *domain.Configuration) error {
	if len(config.Scenarios) == 0 {
		return fmt.Errorf("no scenarios provided")
	}

	seen := make(map[string]int, len(config.Scenarios))
	for i, scenario := range config.Scenarios {
		if prev, ok := seen[scenario.Name]; ok && scenario.Name != "" {
			return fmt.Errorf("scenario %d duplicates the name %q of scenario %d", i, scenario.Name, prev)
		}
		seen[scenario.Name] = i

		if err := scenario.Validate(); err != nil {
			return fmt.Errorf("scenario %d (%s) validation failed: %w", i, scenario.Name, err)
		}
	}

	return nil
}

// ExampleConfiguration returns the reference scenario with a longer-horizon variant
func ExampleConfiguration() *domain.Configuration {
	plan := domain.PensionPlan{
		BaseMonthlyAmount:       decimal.NewFromInt(1000000),
		RegularStartAge:         domain.DefaultRegularStartAge,
		EarlyYearsBeforeRegular: domain.MaxEarlyYears,
		AnnualIncreaseRate:      decimal.NewFromFloat(0.034),
	}
	return &domain.Configuration{
		Scenarios: []domain.Scenario{
			{
				Name:        "Five years early",
				Plan:        plan,
				Assumptions: domain.Assumptions{AnnualReturnRate: decimal.NewFromFloat(0.05), InvestmentEndAge: DefaultInvestmentEndAge},
			},
			{
				Name:        "Five years early, long horizon",
				Plan:        plan,
				Assumptions: domain.Assumptions{AnnualReturnRate: decimal.NewFromFloat(0.05), InvestmentEndAge: 100},
			},
		},
	}
}

// SaveToFile writes a configuration as YAML
func SaveToFile(config *domain.Configuration, filename string) error {
	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode configuration: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", filename, err)
	}
	return nil
}
