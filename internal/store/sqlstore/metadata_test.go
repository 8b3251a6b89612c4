package sqlstore_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/creditledger/internal/store/sqlstore"
)

func TestMetadata_Value(t *testing.T) {
	value, err := sqlstore.Metadata(nil).Value()
	require.NoError(t, err)
	require.Nil(t, value)

	value, err = sqlstore.Metadata{"prompt": "a fox"}.Value()
	require.NoError(t, err)
	require.JSONEq(t, `{"prompt":"a fox"}`, string(value.([]byte)))
}

func TestMetadata_Scan(t *testing.T) {
	tests := []struct {
		name      string
		input     any
		expected  sqlstore.Metadata
		expectErr bool
	}{
		{name: "null", input: nil, expected: nil},
		{name: "empty bytes", input: []byte{}, expected: nil},
		{name: "json bytes", input: []byte(`{"seed":"42"}`), expected: sqlstore.Metadata{"seed": "42"}},
		{name: "json string", input: `{"quality":"hd"}`, expected: sqlstore.Metadata{"quality": "hd"}},
		{name: "wrong type", input: 42, expectErr: true},
		{name: "invalid json", input: []byte(`{`), expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var m sqlstore.Metadata
			err := m.Scan(tt.input)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expected, m)
		})
	}
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := sqlstore.Open(t.Context(), "sqlite", "file::memory:")
	require.Error(t, err)
}
