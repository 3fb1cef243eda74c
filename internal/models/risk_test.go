package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRiskCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected RiskCategory
		wantErr  bool
	}{
		{input: "low", expected: RiskLow},
		{input: "LOW", expected: RiskLow},
		{input: "moderate", expected: RiskModerate},
		{input: "medium", expected: RiskModerate},
		{input: "high", expected: RiskHigh},
		{input: "very-high", expected: RiskVeryHigh},
		{input: "Very High", expected: RiskVeryHigh},
		{input: " veryhigh ", expected: RiskVeryHigh},
		{input: "critical", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRiskCategory(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownRiskCategory)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRiskCategory_Ordering(t *testing.T) {
	categories := RiskCategories()
	require.Len(t, categories, 4)

	for i := 1; i < len(categories); i++ {
		assert.True(t, categories[i].MoreSevereThan(categories[i-1]),
			"%s should rank above %s", categories[i], categories[i-1])
	}
}

func TestRiskCategory_StringRoundTrip(t *testing.T) {
	for _, c := range RiskCategories() {
		text, err := c.MarshalText()
		require.NoError(t, err)

		var parsed RiskCategory
		require.NoError(t, parsed.UnmarshalText(text))
		assert.Equal(t, c, parsed)
	}
}

func TestRiskCategory_Invalid(t *testing.T) {
	var zero RiskCategory
	assert.False(t, zero.IsValid())
	assert.False(t, RiskCategory(9).IsValid())
	assert.Equal(t, "RiskCategory(9)", RiskCategory(9).String())

	_, err := RiskCategory(9).MarshalText()
	assert.ErrorIs(t, err, ErrUnknownRiskCategory)
}

func TestPriority(t *testing.T) {
	assert.True(t, PriorityUrgent.MoreUrgentThan(PriorityHigh))
	assert.True(t, PriorityHigh.MoreUrgentThan(PriorityNormal))
	assert.False(t, PriorityNormal.MoreUrgentThan(PriorityUrgent))

	for _, name := range []string{"urgent", "high", "normal"} {
		p, err := ParsePriority(name)
		require.NoError(t, err)
		assert.Equal(t, name, p.String())
	}

	_, err := ParsePriority("routine")
	assert.ErrorIs(t, err, ErrUnknownPriority)

	var zero Priority
	assert.False(t, zero.IsValid())
	_, err = zero.MarshalText()
	assert.ErrorIs(t, err, ErrUnknownPriority)
}
