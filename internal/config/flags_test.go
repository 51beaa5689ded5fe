package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNetAddress_Set(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantHost string
		wantPort int
		wantErr  bool
	}{
		{"localhost with port", "localhost:3000", "localhost", 3000, false},
		{"IP with port", "127.0.0.1:8080", "127.0.0.1", 8080, false},
		{"missing port", "localhost", "", 0, true},
		{"non-numeric port", "localhost:abc", "", 0, true},
		{"zero port", "localhost:0", "", 0, true},
		{"negative port", "localhost:-1", "", 0, true},
		{"bogus host", "not-an-ip:8080", "", 0, true},
		{"too many separators", "a:b:c", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var a NetAddress
			err := a.Set(tt.input)

			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantHost, a.Host)
			assert.Equal(t, tt.wantPort, a.Port)
		})
	}
}

func TestNetAddress_String(t *testing.T) {
	t.Run("empty address renders empty", func(t *testing.T) {
		var a NetAddress
		assert.Equal(t, "", a.String())
	})

	t.Run("host and port", func(t *testing.T) {
		a := NetAddress{Host: "localhost", Port: 3000}
		assert.Equal(t, "localhost:3000", a.String())
	})
}
