package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/creditledger/internal/domain"
)

func TestCheckOperationBalance(t *testing.T) {
	catalog := domain.DefaultCatalog()

	tests := []struct {
		name        string
		balance     string
		category    domain.ToolCategory
		operation   domain.OperationType
		multipliers []string
		hasEnough   bool
		required    string
		shortfall   string
	}{
		{
			name:        "ten credits short of a ten second video",
			balance:     "10",
			category:    domain.CategoryVideoGeneration,
			operation:   domain.OperationTextToVideo,
			multipliers: []string{domain.MultiplierDuration10s},
			hasEnough:   false,
			required:    "15",
			shortfall:   "5",
		},
		{
			name:        "exact balance is sufficient",
			balance:     "15",
			category:    domain.CategoryVideoGeneration,
			operation:   domain.OperationTextToVideo,
			multipliers: []string{domain.MultiplierDuration10s},
			hasEnough:   true,
			required:    "15",
			shortfall:   "0",
		},
		{
			name:        "one credit short",
			balance:     "14",
			category:    domain.CategoryVideoGeneration,
			operation:   domain.OperationTextToVideo,
			multipliers: []string{domain.MultiplierDuration10s},
			hasEnough:   false,
			required:    "15",
			shortfall:   "1",
		},
		{
			name:      "fractional cost against fractional balance",
			balance:   "7.25",
			category:  domain.CategoryVideoGeneration,
			operation: domain.OperationTextToVideo,
			hasEnough: false,
			required:  "7.5",
			shortfall: "0.25",
		},
		{
			name:      "plenty of balance",
			balance:   "100",
			category:  domain.CategoryScriptGeneration,
			operation: domain.OperationBasicScript,
			hasEnough: true,
			required:  "1",
			shortfall: "0",
		},
		{
			name:      "zero balance",
			balance:   "0",
			category:  domain.CategoryPromptEnhancement,
			operation: domain.OperationBasicEnhancement,
			hasEnough: false,
			required:  "1",
			shortfall: "1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := catalog.CheckOperationBalance(dec(tt.balance), tt.category, tt.operation, tt.multipliers...)
			require.NoError(t, err)

			require.Equal(t, tt.hasEnough, result.HasEnoughBalance)
			requireDecimal(t, tt.balance, result.CurrentBalance)
			requireDecimal(t, tt.required, result.RequiredBalance)
			requireDecimal(t, tt.shortfall, result.Shortfall)
		})
	}
}

func TestCheckOperationBalance_PropagatesLookupErrors(t *testing.T) {
	catalog := domain.DefaultCatalog()

	_, err := catalog.CheckOperationBalance(dec("100"), "bogus-category", "x")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)

	_, err = catalog.CheckOperationBalance(dec("100"), domain.CategoryImageGeneration, "bogus")
	require.ErrorIs(t, err, domain.ErrUnknownOperation)
}

func TestCheckOperationBalance_ShortfallProperty(t *testing.T) {
	catalog := domain.DefaultCatalog()

	for _, category := range catalog.Categories() {
		operations, err := catalog.Operations(category)
		require.NoError(t, err)

		for _, operation := range operations {
			required, err := catalog.CalculateOperationCost(category, operation)
			require.NoError(t, err)

			exact, err := catalog.CheckOperationBalance(required, category, operation)
			require.NoError(t, err)
			require.True(t, exact.HasEnoughBalance)
			require.True(t, exact.Shortfall.IsZero())

			short, err := catalog.CheckOperationBalance(required.Sub(dec("1")), category, operation)
			require.NoError(t, err)
			require.False(t, short.HasEnoughBalance)
			requireDecimal(t, "1", short.Shortfall)
		}
	}
}
