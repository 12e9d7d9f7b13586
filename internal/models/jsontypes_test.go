package models_test

import (
	"encoding/json"
	"testing"

	"dealership/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestStringListFromText(t *testing.T) {
	var payload struct {
		Features models.StringList `json:"features"`
	}

	// Admin forms submit features as one textarea block.
	err := json.Unmarshal([]byte(`{"features":"ABS\nPower Steering\n\nAC"}`), &payload)
	assert.NoError(t, err)
	assert.Equal(t, models.StringList{"ABS", "Power Steering", "AC"}, payload.Features)
}

func TestStringListFromArray(t *testing.T) {
	var payload struct {
		Features models.StringList `json:"features"`
	}

	err := json.Unmarshal([]byte(`{"features":["ABS","  Heated Seats  ",""]}`), &payload)
	assert.NoError(t, err)
	assert.Equal(t, models.StringList{"ABS", "Heated Seats"}, payload.Features)
}

func TestStringListWindowsLineBreaks(t *testing.T) {
	assert.Equal(t, []string{"ABS", "AC"}, models.SplitLines("ABS\r\nAC\r\n"))
}

func TestLooseBoolCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want bool
	}{
		{`true`, true},
		{`false`, false},
		{`1`, true},
		{`0`, false},
		{`"yes"`, true},
		// Boolean("false") is true; the leniency is deliberate.
		{`"false"`, true},
		{`""`, false},
		{`null`, false},
	}

	for _, tc := range cases {
		var b models.LooseBool
		err := json.Unmarshal([]byte(tc.raw), &b)
		assert.NoError(t, err, tc.raw)
		assert.Equal(t, tc.want, bool(b), "coercing %s", tc.raw)
	}
}

func TestLooseBoolMarshalsAsBool(t *testing.T) {
	out, err := json.Marshal(models.LooseBool(true))
	assert.NoError(t, err)
	assert.Equal(t, "true", string(out))
}
