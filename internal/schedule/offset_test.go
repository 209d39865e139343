package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseOffset(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Duration
		wantErr error
	}{
		{name: "minutes", input: "30 minutes", want: 30 * time.Minute},
		{name: "hours", input: "1 hours", want: time.Hour},
		{name: "days", input: "2 days", want: 48 * time.Hour},
		{name: "negative magnitude", input: "-15 minutes", want: -15 * time.Minute},
		{name: "zero magnitude", input: "0 minutes", want: 0},
		{name: "unknown unit degrades to zero", input: "2 fortnights", want: 0, wantErr: ErrUnknownUnit},
		{name: "case-sensitive unit", input: "30 Minutes", want: 0, wantErr: ErrUnknownUnit},
		{name: "malformed magnitude", input: "soon minutes", wantErr: ErrBadMagnitude},
		{name: "missing unit", input: "30", wantErr: ErrBadMagnitude},
		{name: "empty string", input: "", wantErr: ErrBadMagnitude},
		{name: "fractional magnitude", input: "1.5 hours", wantErr: ErrBadMagnitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseOffset(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				if tt.wantErr == ErrUnknownUnit {
					// Unknown unit still reports a usable zero offset.
					assert.Equal(t, time.Duration(0), got)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
