package motor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wbusacker/robot-gnc/internal/simerr"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
	}{
		{"forward", Forward},
		{"Backward", Backward},
		{"HOLD", Hold},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseDirection("sustain")
	assert.ErrorIs(t, err, simerr.ErrInvalidCommand)
}

func TestDirectionJSON(t *testing.T) {
	out, err := json.Marshal([]Direction{Forward, Hold, Backward})
	require.NoError(t, err)
	assert.JSONEq(t, `["forward","hold","backward"]`, string(out))

	var back []Direction
	require.NoError(t, json.Unmarshal(out, &back))
	assert.Equal(t, []Direction{Forward, Hold, Backward}, back)

	_, err = json.Marshal(Direction(7))
	assert.Error(t, err)
	assert.Equal(t, "direction(7)", Direction(7).String())
}
