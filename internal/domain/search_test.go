package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchesContractorTerm(t *testing.T) {
	cases := []struct {
		name string
		term string
		want bool
	}{
		{"abn exact", "11222333444", true},
		{"abn with spaces", "11 222 333 444", true},
		{"abn other", "11222333445", false},
		{"name substring", "tom", true},
		{"full name mixed case", "Tom ANDERSON", true},
		{"no match", "rachel", false},
		{"ten digits falls back to name", "1122233344", false},
		{"abn with tabs", "11\t222 333\u00a0444", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchesContractorTerm("Tom", "Anderson", "11 222 333 444", tc.term)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestIsABNQuery(t *testing.T) {
	assert.True(t, IsABNQuery("12 345 678 901"))
	assert.True(t, IsABNQuery("abcdefghijk"))
	assert.True(t, IsABNQuery("chloé duboss"))
	assert.False(t, IsABNQuery("1234567890"))
	assert.False(t, IsABNQuery("chloé dubos"))
}

func TestMatchesContractorTermCountsCharactersNotBytes(t *testing.T) {
	cases := []struct {
		name string
		term string
		want bool
	}{
		{"accented partial name", "chloé dubos", true},
		{"accented full name", "Chloé Dubosc", true},
		{"abn still matches", "12 345 678 901", true},
		{"other accented name", "zoë", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := MatchesContractorTerm("Chloé", "Dubosc", "12 345 678 901", tc.term)
			assert.Equal(t, tc.want, got)
		})
	}
}
