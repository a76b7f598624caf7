package domain

import (
	"fmt"
	"regexp"
	"time"
)

// Period identifies one calendar month in "YYYY-MM" form. Contribution
// records and the current pool model are scoped by period.
type Period string

var periodRe = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// ParsePeriod validates the "YYYY-MM" format.
func ParsePeriod(s string) (Period, error) {
	if !periodRe.MatchString(s) {
		return "", NewValidationError("period", fmt.Sprintf("must be YYYY-MM, got %q", s))
	}
	return Period(s), nil
}

func (p Period) String() string { return string(p) }

// PeriodOf returns the period containing t.
func PeriodOf(t time.Time) Period {
	return Period(t.Format("2006-01"))
}

// PreviousPeriod returns the period of the month before t. The scheduled
// monthly distribution runs on the 1st and settles the month that just
// ended.
func PreviousPeriod(t time.Time) Period {
	firstOfMonth := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return PeriodOf(firstOfMonth.AddDate(0, 0, -1))
}
