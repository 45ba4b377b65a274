// internal/validate/validate_test.go
package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"susu-ledger/internal/apperr"
)

func TestCents(t *testing.T) {
	tests := []struct {
		name    string
		v       int64
		wantErr bool
	}{
		{"one cent", 1, false},
		{"typical amount", 50_000, false},
		{"upper bound", 1_000_000_000_000, false},
		{"zero", 0, true},
		{"negative", -5, true},
		{"above upper bound", 1_000_000_000_001, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Cents(tt.v, "amountCents")
			if tt.wantErr {
				require.Error(t, err)
				assert.Equal(t, apperr.InvalidArgument, apperr.CodeOf(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCentsOrZero(t *testing.T) {
	assert.NoError(t, CentsOrZero(0, "creditLimitCents"))
	assert.NoError(t, CentsOrZero(100, "creditLimitCents"))
	assert.Error(t, CentsOrZero(-1, "creditLimitCents"))
	assert.Error(t, CentsOrZero(1_000_000_000_001, "creditLimitCents"))
}

func TestNonEmptyString(t *testing.T) {
	s, err := NonEmptyString("  hello  ", "name", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, "hello", s)

	_, err = NonEmptyString("   ", "name", 1, 10)
	assert.Equal(t, apperr.InvalidArgument, apperr.CodeOf(err))

	_, err = NonEmptyString(strings.Repeat("x", 11), "name", 1, 10)
	assert.Equal(t, apperr.InvalidArgument, apperr.CodeOf(err))
}

func TestTimestampMillis(t *testing.T) {
	now := time.Now().UTC()

	assert.NoError(t, TimestampMillis(0, "txDateMillis", now))
	assert.NoError(t, TimestampMillis(now.UnixMilli(), "txDateMillis", now))
	assert.NoError(t, TimestampMillis(now.Add(time.Hour).UnixMilli(), "txDateMillis", now))

	assert.Error(t, TimestampMillis(-1, "txDateMillis", now))
	assert.Error(t, TimestampMillis(now.Add(25*time.Hour).UnixMilli(), "txDateMillis", now))
}

func TestDayLabel(t *testing.T) {
	day, err := DayLabel("2024-03-15", "txDay")
	require.NoError(t, err)
	assert.Equal(t, "2024-03-15", day)

	// the label is an opaque 10-char bucket key, stored verbatim; calendar
	// validity is not part of the contract
	day, err = DayLabel("2024-13-01", "txDay")
	require.NoError(t, err)
	assert.Equal(t, "2024-13-01", day)

	for _, bad := range []string{"", "2024-3-15", "20240315", "2024-03-155"} {
		_, err := DayLabel(bad, "txDay")
		assert.Error(t, err, "expected %q to be rejected", bad)
	}
}
