package domain

import "fmt"

// Scenario is one named comparison request
type Scenario struct {
	Name        string      `yaml:"name" json:"name"`
	Plan        PensionPlan `yaml:"plan" json:"plan"`
	Assumptions Assumptions `yaml:"assumptions" json:"assumptions"`
}

// Validate checks the plan and the assumptions together
func (s Scenario) Validate() error {
	if err := s.Plan.Validate(); err != nil {
		return fmt.Errorf("plan: %w", err)
	}
	if err := s.Assumptions.Validate(s.Plan); err != nil {
		return fmt.Errorf("assumptions: %w", err)
	}
	return nil
}

// Configuration represents the complete input file
type Configuration struct {
	Scenarios []Scenario `yaml:"scenarios" json:"scenarios"`
}

// FindScenario looks up a scenario by name
func (c *Configuration) FindScenario(name string) (*Scenario, bool) {
	for i := range c.Scenarios {
		if c.Scenarios[i].Name == name {
			return &c.Scenarios[i], true
		}
	}
	return nil, false
}
