package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validPlan() PensionPlan {
	return PensionPlan{
		BaseMonthlyAmount:       decimal.NewFromInt(1000000),
		RegularStartAge:         DefaultRegularStartAge,
		EarlyYearsBeforeRegular: 5,
		AnnualIncreaseRate:      decimal.NewFromFloat(0.034),
	}
}

func TestPensionPlan_StartAges(t *testing.T) {
	plan := validPlan()

	assert.Equal(t, 60, plan.EarlyStartAge())
	assert.Equal(t, 60, plan.StartAge(StrategyEarly))
	assert.Equal(t, 65, plan.StartAge(StrategyRegular))
	assert.True(t, plan.IsEarlyClaim())

	plan.EarlyYearsBeforeRegular = 0
	assert.Equal(t, plan.StartAge(StrategyRegular), plan.StartAge(StrategyEarly))
	assert.False(t, plan.IsEarlyClaim())
}

func TestPensionPlan_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*PensionPlan)
		field   string
		wantErr bool
	}{
		{name: "Valid plan", mutate: func(*PensionPlan) {}},
		{name: "Zero early years", mutate: func(p *PensionPlan) { p.EarlyYearsBeforeRegular = 0 }},
		{name: "Zero increase", mutate: func(p *PensionPlan) { p.AnnualIncreaseRate = decimal.Zero }},
		{name: "Zero base", mutate: func(p *PensionPlan) { p.BaseMonthlyAmount = decimal.Zero }, field: "base_monthly_amount", wantErr: true},
		{name: "Zero regular age", mutate: func(p *PensionPlan) { p.RegularStartAge = 0 }, field: "regular_start_age", wantErr: true},
		{name: "Six early years", mutate: func(p *PensionPlan) { p.EarlyYearsBeforeRegular = 6 }, field: "early_years_before_regular", wantErr: true},
		{name: "Negative early years", mutate: func(p *PensionPlan) { p.EarlyYearsBeforeRegular = -2 }, field: "early_years_before_regular", wantErr: true},
		{
			name: "Early start before birth",
			mutate: func(p *PensionPlan) {
				p.RegularStartAge = 3
				p.EarlyYearsBeforeRegular = 4
			},
			field:   "early_years_before_regular",
			wantErr: true,
		},
		{name: "Negative increase", mutate: func(p *PensionPlan) { p.AnnualIncreaseRate = decimal.NewFromFloat(-0.01) }, field: "annual_increase_rate", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan := validPlan()
			tt.mutate(&plan)
			err := plan.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrOutOfRange))
			var rangeErr *OutOfRangeError
			require.True(t, errors.As(err, &rangeErr))
			assert.Equal(t, tt.field, rangeErr.Field)
		})
	}
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy(" Early ")
	require.NoError(t, err)
	assert.Equal(t, StrategyEarly, s)

	s, err = ParseStrategy("regular")
	require.NoError(t, err)
	assert.Equal(t, StrategyRegular, s)

	_, err = ParseStrategy("deferred")
	assert.Error(t, err)
}

func TestStrategy_Label(t *testing.T) {
	assert.Equal(t, "Early claiming", StrategyEarly.Label())
	assert.Equal(t, "Regular claiming", StrategyRegular.Label())
	assert.Equal(t, "Unknown", Strategy("x").Label())
	assert.Equal(t, []Strategy{StrategyEarly, StrategyRegular}, Strategies)
}

func TestOutOfRangeError_Message(t *testing.T) {
	err := newOutOfRange("investment_end_age", "60", "must be greater than regular start age 65")
	assert.Equal(t, "investment_end_age=60: must be greater than regular start age 65", err.Error())
	assert.True(t, errors.Is(err, ErrOutOfRange))
	assert.False(t, errors.Is(errors.New("other"), ErrOutOfRange))
}
