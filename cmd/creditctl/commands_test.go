package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/creditledger/internal/domain"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := RootCommand()
	root.Writer = &out

	err := root.Run(context.Background(), append([]string{"creditctl"}, args...))
	return out.String(), err
}

func TestRootCommand_Commands(t *testing.T) {
	root := RootCommand()

	names := make(map[string]bool, len(root.Commands))
	for _, c := range root.Commands {
		names[c.Name] = true
	}

	require.Contains(t, names, "pricing")
	require.Contains(t, names, "quote")
	require.Contains(t, names, "check")
}

func TestPricingCommand(t *testing.T) {
	out, err := run(t, "pricing", "--category", "image-generation")
	require.NoError(t, err)
	require.Contains(t, out, "text-to-image")
	require.Contains(t, out, "+50%")
	require.NotContains(t, out, "text-to-video")

	_, err = run(t, "pricing", "--category", "audio-generation")
	require.ErrorIs(t, err, domain.ErrUnknownCategory)
}

func TestQuoteCommand(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		wantCost string
		wantErr  error
	}{
		{
			name:     "explicit multiplier",
			args:     []string{"quote", "-m", "high-quality", "image-generation", "text-to-image"},
			wantCost: "8",
		},
		{
			name:     "video duration and resolution",
			args:     []string{"quote", "--duration", "12", "--resolution", "4k", "video-generation", "text-to-video"},
			wantCost: "45",
		},
		{
			name:     "long form script",
			args:     []string{"quote", "--long-form", "script-generation", "basic-script"},
			wantCost: "2",
		},
		{
			name:     "no multipliers keeps fractional cost",
			args:     []string{"quote", "video-generation", "image-to-video"},
			wantCost: "11.25",
		},
		{
			name:    "unknown operation",
			args:    []string{"quote", "video-generation", "text-to-hologram"},
			wantErr: domain.ErrUnknownOperation,
		},
		{
			name:    "missing operation",
			args:    []string{"quote", "video-generation"},
			wantErr: errMissingOperation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := run(t, tt.args...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}

			require.NoError(t, err)
			require.Contains(t, out, "cost: "+tt.wantCost)
		})
	}
}

func TestCheckCommand(t *testing.T) {
	out, err := run(t, "check", "--balance", "10", "--quality", "ultra", "image-generation", "text-to-image")
	require.NoError(t, err)
	require.Contains(t, out, "sufficient")
	require.Contains(t, out, "shortfall: 0")

	out, err = run(t, "check", "--balance", "7.5", "--duration", "10", "video-generation", "text-to-video")
	require.NoError(t, err)
	require.Contains(t, out, "insufficient")
	require.Contains(t, out, "shortfall: 7.5")

	_, err = run(t, "check", "--balance", "lots", "image-generation", "text-to-image")
	require.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestCatalogOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
tools:
  image-generation:
    text-to-image:
      name: Text to image
      description: Generate an image from a text prompt
      base_cost: 6
      cost_multipliers:
        high-quality: 1.75
`), 0o600))

	out, err := run(t, "--catalog", path, "quote", "-m", "high-quality", "image-generation", "text-to-image")
	require.NoError(t, err)
	require.Contains(t, out, "cost: 11")
}
