package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/earlypension/internal/config"
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/tui"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var scenarioName string

	cmd := &cobra.Command{
		Use:   "earlypension-tui [config-file]",
		Short: "Interactive early vs regular pension comparison",
		Long: `Adjust the pension, horizon and rates with sliders and watch both asset curves update.
Starts from the first scenario in config-file (or --scenario), or from the built-in example.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := startingScenario(args, scenarioName)
			if err != nil {
				return err
			}

			p := tea.NewProgram(
				tui.NewModel(scenario, nil),
				tea.WithAltScreen(),
			)
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("error running TUI: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&scenarioName, "scenario", "", "Scenario to start from")
	return cmd
}

// startingScenario picks the scenario the sliders are seeded with
func startingScenario(args []string, name string) (domain.Scenario, error) {
	cfg := config.ExampleConfiguration()
	if len(args) == 1 {
		loaded, err := config.NewInputParser().LoadFromFile(args[0])
		if err != nil {
			return domain.Scenario{}, err
		}
		cfg = loaded
	}

	if name == "" {
		return cfg.Scenarios[0], nil
	}
	scenario, ok := cfg.FindScenario(name)
	if !ok {
		return domain.Scenario{}, fmt.Errorf("scenario %s not found", name)
	}
	return *scenario, nil
}
