package shares

import (
	"fmt"
	"time"

	"github.com/fleetledger/backend/internal/domain/shared"
)

// Period is a calendar month in "YYYY-MM" form. Profit is aggregated and
// distributed per period.
type Period struct {
	year  int
	month time.Month
}

// ParsePeriod parses a period label. The label must be exactly 7 characters
// ("YYYY-MM") with a month between 01 and 12.
func ParsePeriod(label string) (Period, error) {
	if len(label) != 7 {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", "Period must be in YYYY-MM format")
	}
	t, err := time.Parse("2006-01", label)
	if err != nil {
		return Period{}, shared.NewDomainError("INVALID_PERIOD", fmt.Sprintf("Invalid period %q: must be YYYY-MM", label))
	}
	return Period{year: t.Year(), month: t.Month()}, nil
}

// Label returns the canonical "YYYY-MM" form
func (p Period) Label() string {
	return fmt.Sprintf("%04d-%02d", p.year, int(p.month))
}

// Window returns the half-open UTC time window [first instant of the month,
// first instant of the next month).
func (p Period) Window() (start, end time.Time) {
	start = time.Date(p.year, p.month, 1, 0, 0, 0, 0, time.UTC)
	end = start.AddDate(0, 1, 0)
	return start, end
}

// String implements fmt.Stringer
func (p Period) String() string {
	return p.Label()
}
