package integration

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rgehrsitz/earlypension/internal/compare"
	"github.com/rgehrsitz/earlypension/internal/config"
	"github.com/rgehrsitz/earlypension/internal/domain"
)

var fixturePath = filepath.Join("..", "testdata", "scenarios.yaml")

// expectedCrossover lists the crossover age of each fixture scenario; 0 means none
var expectedCrossover = map[string]int{
	"Reference through 80":  0,
	"Reference through 100": 96,
	"Lower rates":           84,
	"Scenario 4":            76,
}

func loadFixture(t *testing.T) *domain.Configuration {
	t.Helper()
	cfg, err := config.NewInputParser().LoadFromFile(fixturePath)
	require.NoError(t, err, "fixture should load")
	return cfg
}

func compareFixture(t *testing.T) *compare.ComparisonSet {
	t.Helper()
	set, err := compare.NewCompareEngine(nil).CompareAll(context.Background(), loadFixture(t))
	require.NoError(t, err)
	return set
}

// TestIntegrationSuite runs the fixture scenarios through the whole pipeline
func TestIntegrationSuite(t *testing.T) {
	t.Run("Fixture_Defaults", func(t *testing.T) {
		cfg := loadFixture(t)
		require.Len(t, cfg.Scenarios, 4)

		unnamed := cfg.Scenarios[3]
		assert.Equal(t, "Scenario 4", unnamed.Name)
		assert.Equal(t, domain.DefaultRegularStartAge, unnamed.Plan.RegularStartAge)
		assert.Equal(t, config.DefaultInvestmentEndAge, unnamed.Assumptions.InvestmentEndAge)
	})

	t.Run("Crossover_Ages", func(t *testing.T) {
		set := compareFixture(t)
		require.Len(t, set.Comparisons, len(expectedCrossover))

		for _, comp := range set.Comparisons {
			want, ok := expectedCrossover[comp.ScenarioName]
			require.True(t, ok, "unexpected scenario %q", comp.ScenarioName)

			if want == 0 {
				assert.Nil(t, comp.Result.CrossoverAge, comp.ScenarioName)
				continue
			}
			require.NotNil(t, comp.Result.CrossoverAge, comp.ScenarioName)
			assert.Equal(t, want, *comp.Result.CrossoverAge, comp.ScenarioName)
		}
	})

	t.Run("Reference_Values", func(t *testing.T) {
		set := compareFixture(t)
		result := set.Comparisons[0].Result

		require.Len(t, result.Rows, 21)
		first := result.Rows[0]
		assert.Equal(t, 60, first.Age)
		assert.True(t, first.EarlyAssets.Equal(decimal.NewFromInt(8660899)), "early at 60: %s", first.EarlyAssets)
		assert.True(t, first.RegularAssets.IsZero())
	})

	t.Run("Data_Consistency", func(t *testing.T) {
		set := compareFixture(t)

		for _, comp := range set.Comparisons {
			result := comp.Result
			plan := result.Plan
			require.NotEmpty(t, result.Rows, comp.ScenarioName)

			assert.Equal(t, plan.EarlyStartAge(), result.Rows[0].Age)
			assert.Equal(t, result.Assumptions.InvestmentEndAge, result.Rows[len(result.Rows)-1].Age)

			for i, row := range result.Rows {
				assert.True(t, row.Delta.Equal(row.EarlyAssets.Sub(row.RegularAssets)),
					"%s age %d: delta must be early minus regular", comp.ScenarioName, row.Age)
				if row.Age < plan.RegularStartAge {
					assert.True(t, row.RegularAssets.IsZero(), "%s age %d: no regular assets yet", comp.ScenarioName, row.Age)
				}
				if i > 0 {
					assert.Equal(t, result.Rows[i-1].Age+1, row.Age)
				}
			}

			assert.Equal(t, result.CrossoverAge, comp.Metrics.CrossoverAge)
		}
	})

	t.Run("Formatters", func(t *testing.T) {
		set := compareFixture(t)

		for _, name := range compare.AvailableFormatterNames() {
			formatter, err := compare.GetFormatterByName(name)
			require.NoError(t, err, name)

			out, err := formatter.Format(set)
			require.NoError(t, err, name)
			assert.Contains(t, out, "Reference through 100", name)
			assert.Contains(t, out, "Scenario 4", name)
		}
	})

	t.Run("Error_Handling", func(t *testing.T) {
		_, err := config.NewInputParser().LoadFromFile(filepath.Join("..", "testdata", "missing.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read file")

		cfg := loadFixture(t)
		cfg.Scenarios[0].Plan.EarlyYearsBeforeRegular = domain.MaxEarlyYears + 1
		_, err = compare.NewCompareEngine(nil).CompareAll(context.Background(), cfg)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrOutOfRange)
	})

	t.Run("Performance", func(t *testing.T) {
		engine := compare.NewCompareEngine(nil)
		cfg := loadFixture(t)

		start := time.Now()
		for i := 0; i < 50; i++ {
			_, err := engine.CompareAll(context.Background(), cfg)
			require.NoError(t, err)
		}
		assert.Less(t, time.Since(start), 10*time.Second)
	})
}
