package worldart

import (
	"fmt"
	"regexp"
	"strconv"
	"time"
)

// Date is a calendar date. The zero value means the date is unset.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate returns a Date for the given components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// IsZero reports whether the date is unset.
func (d Date) IsZero() bool {
	return d.Year == 0 && d.Month == 0 && d.Day == 0
}

// Before reports whether d is earlier than o.
func (d Date) Before(o Date) bool {
	return d.Time().Before(o.Time())
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// String formats the date as YYYY-MM-DD, or "" when unset.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// MarshalText implements encoding.TextMarshaler.
func (d Date) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Date) UnmarshalText(b []byte) error {
	parsed, err := ParseDate(string(b))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// ParseDate parses a YYYY-MM-DD date. An empty string yields the zero Date.
func ParseDate(s string) (Date, error) {
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return Date{}, Errorf(EINVALID, "invalid date %q", s)
	}
	return NewDate(t.Year(), t.Month(), t.Day()), nil
}

// dateRangeRe matches "DD.MM.YYYY" or "??.MM.YYYY", optionally followed by
// a second date anywhere later in the text.
var dateRangeRe = regexp.MustCompile(`(\d{2}|\?\?)[^\d?](\d{2})[^\d?](\d{4})(?:.*?(\d{2}|\?\?)[^\d?](\d{2})[^\d?](\d{4}))?`)

// ParseDateRange parses the first date token of text as the start date and
// an optional second token as the end date. An unknown day ("??") in the
// start date becomes the 1st. Tokens that do not form a valid calendar date
// are left unset.
func ParseDateRange(text string) (start, end Date, ok bool) {
	m := dateRangeRe.FindStringSubmatch(text)
	if m == nil {
		return Date{}, Date{}, false
	}
	start, ok = parseDayMonthYear(m[1], m[2], m[3], true)
	if !ok {
		return Date{}, Date{}, false
	}
	if m[4] != "" {
		end, _ = parseDayMonthYear(m[4], m[5], m[6], false)
	}
	return start, end, true
}

func parseDayMonthYear(day, month, year string, unknownDay bool) (Date, bool) {
	if day == "??" {
		if !unknownDay {
			return Date{}, false
		}
		day = "01"
	}
	d, err1 := strconv.Atoi(day)
	m, err2 := strconv.Atoi(month)
	y, err3 := strconv.Atoi(year)
	if err1 != nil || err2 != nil || err3 != nil {
		return Date{}, false
	}
	return validDate(y, m, d)
}

var releaseDateRe = regexp.MustCompile(`\d{4}(?:\.\d{2}\.\d{2})?`)

// ParseReleaseDate parses a release table cell holding either "YYYY.MM.DD"
// or a bare year, which defaults to January 1st.
func ParseReleaseDate(text string) (Date, bool) {
	token := releaseDateRe.FindString(text)
	if token == "" {
		return Date{}, false
	}
	y, err := strconv.Atoi(token[0:4])
	if err != nil {
		return Date{}, false
	}
	if len(token) == 4 {
		return NewDate(y, time.January, 1), true
	}
	m, err1 := strconv.Atoi(token[5:7])
	d, err2 := strconv.Atoi(token[8:10])
	if err1 != nil || err2 != nil {
		return Date{}, false
	}
	return validDate(y, m, d)
}

// validDate rejects components that time.Date would normalize.
func validDate(y, m, d int) (Date, bool) {
	t := time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != m || t.Day() != d {
		return Date{}, false
	}
	return NewDate(y, time.Month(m), d), true
}
