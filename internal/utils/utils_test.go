package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSchedule(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	want := time.Date(2025, 3, 14, 9, 30, 0, 0, loc)

	for _, in := range []string{
		"2025-03-14T09:30",
		"2025-03-14 09:30",
		"2025-03-14T09:30:45",
		"2025-03-14T02:30:00Z",
	} {
		got, err := ParseSchedule(in, loc)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), "%s parsed as %s", in, got)
	}

	_, err := ParseSchedule("14/03/2025", loc)
	assert.Error(t, err)
	_, err = ParseSchedule("  ", loc)
	assert.Error(t, err)
}

func TestRandomCode(t *testing.T) {
	re := regexp.MustCompile(`^[A-Z0-9]{6}$`)
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		code, err := RandomCode(6)
		require.NoError(t, err)
		assert.Regexp(t, re, code)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 45)
}

func TestFormatRupiah(t *testing.T) {
	assert.Equal(t, "Rp 25.000.000", FormatRupiah(25000000))
	assert.Equal(t, "Rp 0", FormatRupiah(0))
	assert.Equal(t, "-Rp 1.500", FormatRupiah(-1500))
}

func TestNormalizers(t *testing.T) {
	assert.Equal(t, "a@b.com", NormalizeEmail("  A@B.com "))
	assert.Equal(t, "KHANZA30-AB12CD", NormalizeCode(" khanza30-ab12cd"))
	assert.Equal(t, "-", Fallback("  ", "-"))
	assert.Equal(t, "Budi_Santoso", SafeFilenamePart("Budi Santoso"))
}

func TestIndonesianNames(t *testing.T) {
	assert.Equal(t, "Senin", WeekdayID(time.Monday))
	assert.Equal(t, "Agu", MonthShortID(time.August))
	assert.Equal(t, "05 Jan 2025 14:30", FormatScheduleID(time.Date(2025, 1, 5, 14, 30, 0, 0, time.UTC)))
}

func TestSafeFilenamePartTruncatesByRune(t *testing.T) {
	name := strings.Repeat("é", 39) + "ñö"
	got := SafeFilenamePart(name)
	assert.True(t, utf8.ValidString(got), "filename must stay valid UTF-8: %q", got)
	assert.Equal(t, 40, utf8.RuneCountInString(got))
	assert.Equal(t, strings.Repeat("é", 39)+"ñ", got)

	assert.Equal(t, "NA", SafeFilenamePart("   "))
	assert.Equal(t, "a_b_c", SafeFilenamePart("a/b:c"))
}
