package api

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseThreshold(t *testing.T) {
	tests := []struct {
		name    string
		in      json.Number
		want    int
		wantErr bool
	}{
		{"valid", "300", 300, false},
		{"zero is allowed", "0", 0, false},
		{"negative", "-1", 0, true},
		{"fractional", "3.5", 0, true},
		{"not a number", "abc", 0, true},
		{"missing", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseThreshold(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
