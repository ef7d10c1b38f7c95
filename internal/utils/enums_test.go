package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEnumLabels(t *testing.T) {
	cases := []struct {
		field EnumField
		in    string
		want  string
	}{
		{EnumBHK, "1", "One"},
		{EnumBHK, "4", "Four"},
		{EnumBHK, "Studio", "Studio"},
		{EnumTimeline, "0-3 Months", "M0_3"},
		{EnumTimeline, "3-6m", "M3_6"},
		{EnumTimeline, ">6 Months", "M6_plus"},
		{EnumSource, "Walk In", "Walk_in"},
		{EnumSource, "Website", "Website"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, NormalizeEnum(c.field, c.in), "%s %q", c.field, c.in)
	}
}

func TestNormalizeEnumPassesUnknownThrough(t *testing.T) {
	assert.Equal(t, "Seven", NormalizeEnum(EnumBHK, "Seven"))
	assert.Equal(t, "M0_3", NormalizeEnum(EnumTimeline, "M0_3"))
	assert.Equal(t, "whatever", NormalizeEnum(EnumField("nope"), "whatever"))
}

func TestEnumLabelIsReverseOfNormalize(t *testing.T) {
	for _, field := range EnumFields() {
		for _, code := range EnumCodes(field) {
			label := EnumLabel(field, code)
			require.Equal(t, code, NormalizeEnum(field, label), "%s %s -> %s", field, code, label)
		}
	}
	assert.Equal(t, "Walk In", EnumLabel(EnumSource, "Walk_in"))
	assert.Equal(t, "unknown-code", EnumLabel(EnumSource, "unknown-code"))
}

func TestIsEnumCode(t *testing.T) {
	assert.True(t, IsEnumCode(EnumCity, "Mohali"))
	assert.False(t, IsEnumCode(EnumCity, "mohali"))
	assert.True(t, IsEnumCode(EnumStatus, StatusNew))
	assert.False(t, IsEnumCode(EnumTimeline, "0-3 Months"))
}

func TestIsResidential(t *testing.T) {
	assert.True(t, IsResidential("Apartment"))
	assert.True(t, IsResidential("Villa"))
	assert.False(t, IsResidential("Plot"))
	assert.False(t, IsResidential(""))
}
