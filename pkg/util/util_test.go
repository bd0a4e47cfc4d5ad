package util

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoveDuplicateStrings(t *testing.T) {
	assert.Equal(t,
		[]string{"1234567890", "2345678901"},
		RemoveDuplicateStrings([]string{"1234567890", "", "2345678901", "1234567890", "0000000000"}, []string{"0000000000"}),
	)
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "abc", TrimString("abcdef", 3))
	assert.Equal(t, "ab", TrimString("ab", 3))
	assert.Equal(t, "→→", TrimString("→→→", 2))
}

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}
	InPlaceFilter(&values, func(v int) bool { return v%2 == 1 })

	assert.Equal(t, []int{1, 3, 5}, values)
}

func TestJourneyDate(t *testing.T) {
	now := time.Date(2026, 3, 9, 17, 45, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-09", JourneyDate(now))

	today, err := ParseJourneyDate("", now)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 9, 0, 0, 0, 0, time.UTC), today)

	parsed, err := ParseJourneyDate("2026-04-01", now)
	require.NoError(t, err)
	assert.Equal(t, "2026-04-01", JourneyDate(parsed))

	_, err = ParseJourneyDate("01/04/2026", now)
	assert.Error(t, err)
}

func TestNormaliseCode(t *testing.T) {
	assert.Equal(t, "NDLS", NormaliseCode("  ndls "))
}
