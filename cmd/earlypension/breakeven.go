package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/earlypension/internal/breakeven"
	"github.com/rgehrsitz/earlypension/internal/config"
	"github.com/rgehrsitz/earlypension/internal/domain"
)

func breakevenCmd() *cobra.Command {
	var (
		flags     scenarioFlags
		target    string
		format    string
		scenarios []string
	)

	cmd := &cobra.Command{
		Use:   "breakeven [config-file]",
		Short: "Find the rates at which both strategies end level",
		Long: `Search for the annual return rate and the annual pension increase rate at which
early and regular claiming hold the same assets at the last compared age.

Examples:
  earlypension breakeven --end-age 100
  earlypension breakeven scenarios.yaml --target return --format json
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "table" && format != "json" {
				return fmt.Errorf("unsupported format: %s", format)
			}

			engine, flush, err := newEngine(flags.debug)
			if err != nil {
				return err
			}
			defer flush()

			selected, err := flags.selectScenarios(args, scenarios)
			if err != nil {
				return err
			}

			solver := breakeven.NewDefaultSolver(engine)
			results := make([]*breakeven.MultiResult, 0, len(selected))
			for _, scenario := range selected {
				multi, err := solveScenario(cmd, solver, scenario, target)
				if err != nil {
					return err
				}
				results = append(results, multi)
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				data, err := (&breakeven.JSONFormatter{Pretty: true}).Format(results)
				if err != nil {
					return err
				}
				fmt.Fprint(out, data)
				return nil
			}

			table := &breakeven.TableFormatter{}
			for i, multi := range results {
				if i > 0 {
					fmt.Fprintln(out)
				}
				fmt.Fprint(out, table.Format(multi))
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&target, "target", "t", "all", "Rate to solve for (return, increase, all)")
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, json)")
	cmd.Flags().StringArrayVar(&scenarios, "scenario", nil, "Only solve these scenarios from the configuration file")
	return cmd
}

// solveScenario runs one target, or every target when target is "all"
func solveScenario(cmd *cobra.Command, solver *breakeven.Solver, scenario domain.Scenario, target string) (*breakeven.MultiResult, error) {
	if target == "all" {
		return solver.SolveAll(cmd.Context(), scenario)
	}

	t, err := breakeven.ParseTarget(target)
	if err != nil {
		return nil, err
	}
	result, err := solver.Solve(cmd.Context(), breakeven.Request{Scenario: scenario, Target: t})
	if err != nil {
		return nil, fmt.Errorf("scenario %s: %w", scenario.Name, err)
	}
	return &breakeven.MultiResult{
		ScenarioName: scenario.Name,
		Results:      []breakeven.Result{*result},
	}, nil
}

// selectScenarios returns the named scenarios from the file in args, or the flag scenario
func (f *scenarioFlags) selectScenarios(args []string, names []string) ([]domain.Scenario, error) {
	if len(args) == 0 {
		if len(names) > 0 {
			return nil, fmt.Errorf("--scenario requires a configuration file")
		}
		return []domain.Scenario{f.scenario()}, nil
	}

	cfg, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return cfg.Scenarios, nil
	}

	selected := make([]domain.Scenario, 0, len(names))
	for _, name := range names {
		scenario, ok := cfg.FindScenario(name)
		if !ok {
			return nil, fmt.Errorf("scenario %s not found", name)
		}
		selected = append(selected, *scenario)
	}
	return selected, nil
}
