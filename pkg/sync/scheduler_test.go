package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduler_Validation(t *testing.T) {
	engine := &Engine{}

	testCases := []struct {
		name    string
		fast    string
		slow    string
		wantErr string
	}{
		{
			name: "Valid intervals",
			fast: "5m",
			slow: "6h",
		},
		{
			name:    "Fast must be shorter than slow",
			fast:    "1h",
			slow:    "5m",
			wantErr: "must be shorter",
		},
		{
			name:    "Equal intervals rejected",
			fast:    "10m",
			slow:    "10m",
			wantErr: "must be shorter",
		},
		{
			name:    "Unparseable fast interval",
			fast:    "soon",
			slow:    "6h",
			wantErr: "invalid fast interval",
		},
		{
			name:    "Unparseable slow interval",
			fast:    "5m",
			slow:    "eventually",
			wantErr: "invalid slow interval",
		},
		{
			name:    "Non-positive interval rejected",
			fast:    "-5m",
			slow:    "6h",
			wantErr: "must be positive",
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			scheduler, err := NewScheduler(engine, tc.fast, tc.slow)
			if tc.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tc.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, scheduler)
		})
	}
}
