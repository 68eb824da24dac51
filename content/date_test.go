package content

import (
	"errors"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"
)

func TestDateFormat(t *testing.T) {
	want := Date{
		SortKey: time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC).UnixMilli(),
		Display: "March 1, 2024",
	}
	tests := []any{
		toml.LocalDate{Year: 2024, Month: 3, Day: 1},
		toml.LocalDateTime{LocalDate: toml.LocalDate{Year: 2024, Month: 3, Day: 1}, LocalTime: toml.LocalTime{Hour: 23, Minute: 59}},
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, time.February, 29, 22, 0, 0, 0, time.FixedZone("EST", -5*3600)),
		"2024-03-01",
		"2024-03-01T08:30:00",
		"2024-03-01 08:30:00",
		"2024-03-01T08:30:00Z",
		"March 1, 2024",
		time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli(),
		int(time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC).UnixMilli()),
	}
	f := dateFormatter{locale: DefaultLocale}
	for _, v := range tests {
		got, err := f.format(v)
		if err != nil {
			t.Errorf("%#v: %v", v, err)
			continue
		}
		if got != want {
			t.Errorf("%#v: got %#v, want %#v", v, got, want)
		}
	}
}

func TestDateHostZone(t *testing.T) {
	saved := time.Local
	defer func() { time.Local = saved }()
	f := dateFormatter{locale: DefaultLocale}
	for _, offset := range []int{-11, -5, 0, 9, 14} {
		time.Local = time.FixedZone("test", offset*3600)
		for _, v := range []any{"2024-03-01", toml.LocalDate{Year: 2024, Month: 3, Day: 1}} {
			d, err := f.format(v)
			if err != nil {
				t.Fatal(err)
			}
			if d.Display != "March 1, 2024" {
				t.Errorf("offset %d, %#v: display %q", offset, v, d.Display)
			}
		}
	}
}

func TestDateMissing(t *testing.T) {
	d, err := dateFormatter{locale: DefaultLocale}.format(nil)
	if err != nil {
		t.Fatal(err)
	}
	if !d.IsZero() {
		t.Errorf("expected zero date, got %#v", d)
	}
}

func TestDateInvalid(t *testing.T) {
	f := dateFormatter{locale: DefaultLocale}
	for _, v := range []any{"yesterday", "2024-13-01", true, 1.5, []any{"2024-03-01"}} {
		if _, err := f.format(v); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("%#v: expected ErrInvalidDate, got %v", v, err)
		}
	}
}

func TestDateLocale(t *testing.T) {
	d, err := dateFormatter{locale: "de_DE"}.format("2024-03-01")
	if err != nil {
		t.Fatal(err)
	}
	if d.Display != "März 1, 2024" {
		t.Errorf("display %q", d.Display)
	}
}
