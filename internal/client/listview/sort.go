package listview

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrInvalidDate is returned when a date sort meets a value it cannot parse.
var ErrInvalidDate = errors.New("invalid date")

// Direction of a sort.
type Direction string

const (
	Ascending  Direction = "ascending"
	Descending Direction = "descending"
)

// SortKey names a column a resource can be ordered by.
type SortKey string

// SortConfig is the active ordering of one list view.
type SortConfig struct {
	Key       SortKey
	Direction Direction
}

// Toggle returns the configuration after the user selects key: the same key
// flips direction, a different key starts ascending.
func (c SortConfig) Toggle(key SortKey) SortConfig {
	if c.Key == key && c.Direction != Descending {
		return SortConfig{Key: key, Direction: Descending}
	}
	return SortConfig{Key: key, Direction: Ascending}
}

// Key orders records of type T by one column. prepare extracts the column
// once per record and returns a comparator over record indexes.
type Key[T any] interface {
	prepare(records []T) (func(i, j int) int, error)
}

// Keys maps the sort keys a resource supports to their orderings.
type Keys[T any] map[SortKey]Key[T]

type keyFunc[T any] func(records []T) (func(i, j int) int, error)

func (f keyFunc[T]) prepare(records []T) (func(i, j int) int, error) { return f(records) }

// ByDecimal orders numerically by a decimal column.
func ByDecimal[T any](get func(T) decimal.Decimal) Key[T] {
	return keyFunc[T](func(records []T) (func(i, j int) int, error) {
		vals := make([]decimal.Decimal, len(records))
		for i, r := range records {
			vals[i] = get(r)
		}
		return func(i, j int) int { return vals[i].Cmp(vals[j]) }, nil
	})
}

// ByInt orders numerically by an integer column.
func ByInt[T any](get func(T) int64) Key[T] {
	return keyFunc[T](func(records []T) (func(i, j int) int, error) {
		vals := make([]int64, len(records))
		for i, r := range records {
			vals[i] = get(r)
		}
		return func(i, j int) int { return cmp.Compare(vals[i], vals[j]) }, nil
	})
}

// ByText orders lexically, ignoring case.
func ByText[T any](get func(T) string) Key[T] {
	return keyFunc[T](func(records []T) (func(i, j int) int, error) {
		vals := make([]string, len(records))
		for i, r := range records {
			vals[i] = strings.ToLower(get(r))
		}
		return func(i, j int) int { return strings.Compare(vals[i], vals[j]) }, nil
	})
}

// ByTime orders chronologically by a raw timestamp column. Any value that
// does not parse fails the whole sort with ErrInvalidDate.
func ByTime[T any](get func(T) string) Key[T] {
	return keyFunc[T](func(records []T) (func(i, j int) int, error) {
		vals := make([]time.Time, len(records))
		for i, r := range records {
			t, err := ParseTimestamp(get(r))
			if err != nil {
				return nil, err
			}
			vals[i] = t
		}
		return func(i, j int) int { return vals[i].Compare(vals[j]) }, nil
	})
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// ParseTimestamp accepts the ISO-8601 shapes the remote service emits.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
}

// Sort returns records ordered by cfg. The sort is stable. A key missing
// from keys leaves the input order untouched.
func Sort[T any](records []T, keys Keys[T], cfg SortConfig) ([]T, error) {
	out := slices.Clone(records)
	key, ok := keys[cfg.Key]
	if !ok {
		return out, nil
	}

	compare, err := key.prepare(records)
	if err != nil {
		return nil, err
	}

	idx := make([]int, len(records))
	for i := range idx {
		idx[i] = i
	}
	slices.SortStableFunc(idx, func(i, j int) int {
		if cfg.Direction == Descending {
			return compare(j, i)
		}
		return compare(i, j)
	})

	for pos, i := range idx {
		out[pos] = records[i]
	}
	return out, nil
}
