package domain_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/creditledger/internal/domain"
)

func TestImageQualityMultipliers(t *testing.T) {
	tests := []struct {
		quality  string
		expected []string
	}{
		{"standard", []string{domain.MultiplierStandardQuality}},
		{"HD", []string{domain.MultiplierHighQuality}},
		{" high ", []string{domain.MultiplierHighQuality}},
		{"ultra", []string{domain.MultiplierUltraQuality}},
		{"potato", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.quality, func(t *testing.T) {
			require.Equal(t, tt.expected, domain.ImageQualityMultipliers(tt.quality))
		})
	}
}

func TestVideoMultipliers(t *testing.T) {
	tests := []struct {
		name       string
		duration   int
		resolution string
		expected   []string
	}{
		{"no duration", 0, "", nil},
		{"five seconds", 5, "", []string{domain.MultiplierDuration5s}},
		{"three seconds rounds up", 3, "", []string{domain.MultiplierDuration5s}},
		{"eight seconds", 8, "1080p", []string{domain.MultiplierDuration10s, domain.MultiplierHDQuality}},
		{"fifteen seconds", 15, "4K", []string{domain.MultiplierDuration15s, domain.Multiplier4KQuality}},
		{"long clip", 25, "sd", []string{domain.MultiplierDuration30s}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, domain.VideoMultipliers(tt.duration, tt.resolution))
		})
	}
}

func TestVideoMultipliers_PriceEightSecondHDVideo(t *testing.T) {
	cost, err := domain.DefaultCatalog().CalculateOperationCost(
		domain.CategoryVideoGeneration,
		domain.OperationTextToVideo,
		domain.VideoMultipliers(8, "hd")...,
	)
	require.NoError(t, err)
	requireDecimal(t, "15", cost)
}

func TestScriptMultipliers(t *testing.T) {
	require.Equal(t, []string{domain.MultiplierLongForm}, domain.ScriptMultipliers(true))
	require.Nil(t, domain.ScriptMultipliers(false))
}
