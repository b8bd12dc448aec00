package main

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/earlypension/internal/compare"
	"github.com/rgehrsitz/earlypension/internal/config"
	"github.com/rgehrsitz/earlypension/internal/domain"
	"github.com/rgehrsitz/earlypension/internal/output"
	"github.com/rgehrsitz/earlypension/internal/tui/components"
)

const commandLineScenario = "Command line"

// scenarioFlags describes a single scenario when no configuration file is given
type scenarioFlags struct {
	baseMonthly  float64
	earlyYears   int
	regularAge   int
	endAge       int
	returnRate   float64
	increaseRate float64
	debug        bool
}

func (f *scenarioFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.baseMonthly, "base-monthly", 1000000, "Full monthly pension at the regular start age")
	cmd.Flags().IntVar(&f.earlyYears, "early-years", domain.MaxEarlyYears, "Years before the regular age that early claiming starts (0-5)")
	cmd.Flags().IntVar(&f.regularAge, "regular-age", domain.DefaultRegularStartAge, "Regular pension start age")
	cmd.Flags().IntVar(&f.endAge, "end-age", config.DefaultInvestmentEndAge, "Last age compared")
	cmd.Flags().Float64Var(&f.returnRate, "return-rate", 0.05, "Annual investment return as a fraction (0.05 = 5%)")
	cmd.Flags().Float64Var(&f.increaseRate, "increase-rate", 0.034, "Annual pension increase as a fraction")
	cmd.Flags().BoolVar(&f.debug, "debug", false, "Log every simulated year")
}

func (f *scenarioFlags) scenario() domain.Scenario {
	return domain.Scenario{
		Name: commandLineScenario,
		Plan: domain.PensionPlan{
			BaseMonthlyAmount:       decimal.NewFromFloat(f.baseMonthly),
			RegularStartAge:         f.regularAge,
			EarlyYearsBeforeRegular: f.earlyYears,
			AnnualIncreaseRate:      decimal.NewFromFloat(f.increaseRate),
		},
		Assumptions: domain.Assumptions{
			AnnualReturnRate: decimal.NewFromFloat(f.returnRate),
			InvestmentEndAge: f.endAge,
		},
	}
}

// loadComparisons runs the named scenarios from the file in args, every scenario when
// names is empty, or the single scenario described by the flags when there is no file
func (f *scenarioFlags) loadComparisons(ctx context.Context, engine *compare.CompareEngine, args []string, names []string) (*compare.ComparisonSet, error) {
	if len(args) == 0 {
		if len(names) > 0 {
			return nil, fmt.Errorf("--scenario requires a configuration file")
		}
		comp, err := engine.Compare(ctx, f.scenario())
		if err != nil {
			return nil, err
		}
		set := &compare.ComparisonSet{Comparisons: []compare.ScenarioComparison{*comp}}
		set.Recommendations = compare.GenerateRecommendations(set)
		return set, nil
	}

	cfg, err := config.NewInputParser().LoadFromFile(args[0])
	if err != nil {
		return nil, err
	}
	set, err := engine.CompareScenarios(ctx, cfg, names)
	if err != nil {
		return nil, err
	}
	set.ConfigPath = args[0]
	return set, nil
}

func compareCmd() *cobra.Command {
	var (
		flags     scenarioFlags
		format    string
		withChart bool
		scenarios []string
	)

	cmd := &cobra.Command{
		Use:   "compare [config-file]",
		Short: "Compare early and regular claiming",
		Long: `Compare early and regular pension claiming age by age.

With a configuration file every scenario in it is compared; the plan flags are ignored.
Without one a single scenario is built from the flags.

Examples:
  earlypension compare
  earlypension compare --early-years 3 --return-rate 0.04 --end-age 95 --chart
  earlypension compare scenarios.yaml --scenario "Five years early" --format csv
`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formatter, err := compare.GetFormatterByName(format)
			if err != nil {
				return err
			}
			if withChart && formatter.Name() != "table" {
				return fmt.Errorf("--chart is only supported with the table format")
			}

			engine, flush, err := newEngine(flags.debug)
			if err != nil {
				return err
			}
			defer flush()

			set, err := flags.loadComparisons(cmd.Context(), engine, args, scenarios)
			if err != nil {
				return err
			}

			data, err := formatter.Format(set)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, data)

			if withChart {
				for _, comp := range set.Comparisons {
					fmt.Fprintf(out, "\n%s\n\n", comp.ScenarioName)
					fmt.Fprintln(out, components.NewComparisonChart(comp.Result, 80, 15).Render())
				}
			}
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().StringVarP(&format, "format", "f", "table", "Output format (table, csv, json, html)")
	cmd.Flags().BoolVar(&withChart, "chart", false, "Append an ASCII chart of both asset curves")
	cmd.Flags().StringArrayVar(&scenarios, "scenario", nil, "Only compare these scenarios from the configuration file")
	return cmd
}

func explainCmd() *cobra.Command {
	var (
		flags    scenarioFlags
		age      int
		scenario string
	)

	cmd := &cobra.Command{
		Use:   "explain [config-file] --age N",
		Short: "Show how both asset totals at one age were derived",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, flush, err := newEngine(flags.debug)
			if err != nil {
				return err
			}
			defer flush()

			var names []string
			if scenario != "" {
				names = []string{scenario}
			}
			set, err := flags.loadComparisons(cmd.Context(), engine, args, names)
			if err != nil {
				return err
			}

			// with a file and no --scenario, explain the first scenario
			comp := set.Comparisons[0]
			breakdown, err := output.Explain(comp.Result, age)
			if err != nil {
				return fmt.Errorf("scenario %s: %w", comp.ScenarioName, err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scenario: %s\n\n%s", comp.ScenarioName, breakdown.Render())
			return nil
		},
	}

	flags.register(cmd)
	cmd.Flags().IntVar(&age, "age", 0, "Age to explain")
	cmd.Flags().StringVar(&scenario, "scenario", "", "Scenario to explain (default: the first in the file)")
	_ = cmd.MarkFlagRequired("age")
	return cmd
}
