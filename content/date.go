package content

import (
	"errors"
	"fmt"
	"time"

	"github.com/goodsign/monday"
	"github.com/pelletier/go-toml/v2"
)

// ErrInvalidDate is reported when a date field is present but cannot be read as a date.
var ErrInvalidDate = errors.New("invalid date")

// Date is the normalized publication date of a post.
type Date struct {
	SortKey int64  `json:"sortKey"` // Unix milliseconds at 12:00 UTC on the publication day
	Display string `json:"display"` // Long form, e.g. "March 1, 2024"
}

// IsZero reports whether the post is undated.
func (d Date) IsZero() bool {
	return d.SortKey == 0 && d.Display == ""
}

// displayLayout is the long date form used for listings.
const displayLayout = "January 2, 2006"

// noonHour is the hour every date is pinned to so that converting the
// instant to any zone within twelve hours of UTC lands on the same day.
const noonHour = 12

// dateLayouts are the string forms accepted for a date field.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	displayLayout,
}

// coerceDay reduces a front matter date value to its calendar day.
// The zero time and no error are returned for a nil value.
func coerceDay(v any) (time.Time, error) {
	var y, d int
	var m time.Month
	switch t := v.(type) {
	case nil:
		return time.Time{}, nil
	case time.Time:
		y, m, d = t.UTC().Date()
	case toml.LocalDate:
		y, m, d = t.Year, time.Month(t.Month), t.Day
	case toml.LocalDateTime:
		y, m, d = t.Year, time.Month(t.Month), t.Day
	case string:
		p, err := parseDate(t)
		if err != nil {
			return time.Time{}, err
		}
		y, m, d = p.UTC().Date()
	case int:
		y, m, d = time.UnixMilli(int64(t)).UTC().Date()
	case int64:
		y, m, d = time.UnixMilli(t).UTC().Date()
	default:
		return time.Time{}, fmt.Errorf("%w: unsupported type %T", ErrInvalidDate, v)
	}
	day := time.Date(y, m, d, noonHour, 0, 0, 0, time.UTC)
	// time.Date normalizes out-of-range values; a changed day means the input was bogus.
	if yy, mm, dd := day.Date(); yy != y || mm != m || dd != d {
		return time.Time{}, fmt.Errorf("%w: %04d-%02d-%02d", ErrInvalidDate, y, m, d)
	}
	return day, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// dateFormatter renders Date values for one locale.
type dateFormatter struct {
	locale monday.Locale
}

// format builds the Date for a front matter value.
func (f dateFormatter) format(v any) (Date, error) {
	day, err := coerceDay(v)
	if err != nil || day.IsZero() {
		return Date{}, err
	}
	return Date{
		SortKey: day.UnixMilli(),
		Display: monday.Format(day, displayLayout, f.locale),
	}, nil
}

// supportedLocale reports whether monday can format dates for name.
func supportedLocale(name string) bool {
	for _, l := range monday.ListLocales() {
		if string(l) == name {
			return true
		}
	}
	return false
}
