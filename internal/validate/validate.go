// internal/validate/validate.go
package validate

import (
	"strings"
	"time"

	"susu-ledger/internal/apperr"
)

// MaxCents caps any single money amount at 1e12 cents.
const MaxCents int64 = 1_000_000_000_000

// Cents checks that v is a positive integer amount of cents within bounds.
func Cents(v int64, name string) error {
	if v <= 0 {
		return apperr.Newf(apperr.InvalidArgument, "%s must be > 0", name)
	}
	if v > MaxCents {
		return apperr.Newf(apperr.InvalidArgument, "%s is too large", name)
	}
	return nil
}

// CentsOrZero is Cents but also accepts zero. Callers treat an absent
// value as zero before calling.
func CentsOrZero(v int64, name string) error {
	if v == 0 {
		return nil
	}
	return Cents(v, name)
}

// NonEmptyString checks that v trims to a length within [min, max].
func NonEmptyString(v, name string, min, max int) (string, error) {
	s := strings.TrimSpace(v)
	if len(s) < min {
		return "", apperr.Newf(apperr.InvalidArgument, "%s is required", name)
	}
	if len(s) > max {
		return "", apperr.Newf(apperr.InvalidArgument, "%s is too long", name)
	}
	return s, nil
}

// TimestampMillis checks that v is a plausible epoch-millis value: not
// negative and at most one day into the future.
func TimestampMillis(v int64, name string, now time.Time) error {
	if v < 0 {
		return apperr.Newf(apperr.InvalidArgument, "%s must not be negative", name)
	}
	if v > now.Add(24*time.Hour).UnixMilli() {
		return apperr.Newf(apperr.InvalidArgument, "%s is too far in the future", name)
	}
	return nil
}

// DayLabel checks a YYYY-MM-DD day bucket label. The label is stored
// verbatim and only ever compared for equality, so the contract is its
// exact length, not its calendar validity.
func DayLabel(v, name string) (string, error) {
	s := strings.TrimSpace(v)
	if len(s) != 10 {
		return "", apperr.Newf(apperr.InvalidArgument, "%s must be a YYYY-MM-DD label", name)
	}
	return s, nil
}
