package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/datatypes"
)

var (
	ErrInvalidTimeRange = errors.New("invalid time range")
	ErrInvalidClock     = errors.New("invalid time of day")
)

const day = 24 * time.Hour

// Duration возвращает длительность слота в минутах.
// Если конец раньше начала, интервал переходит через полночь.
func Duration(start, end datatypes.Time) int {
	d := (time.Duration(end) - time.Duration(start)) % day
	if d < 0 {
		d += day
	}
	return int(d / time.Minute)
}

// Combine склеивает дату дня и время слота.
func Combine(date datatypes.Date, tod datatypes.Time) time.Time {
	y, m, d := time.Time(date).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Add(time.Duration(tod))
}

// ISO форматирует локальное время без зоны: 2015-09-07T09:00:00.
// Микросекунды добавляются только если они ненулевые.
func ISO(t time.Time) string {
	s := t.Format("2006-01-02T15:04:05")
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	return s
}

// ParseClock разбирает "HH:MM" или "HH:MM:SS".
func ParseClock(s string) (datatypes.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			return datatypes.NewTime(t.Hour(), t.Minute(), t.Second(), 0), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidClock, s)
}

// TimeRange представляет временной интервал [Start, End).
type TimeRange struct {
	Start time.Time
	End   time.Time
}

// NewTimeRange создаёт интервал и делает простую валидацию.
func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if start.IsZero() || end.IsZero() || !end.After(start) {
		return TimeRange{}, ErrInvalidTimeRange
	}
	return TimeRange{Start: start, End: end}, nil
}

// SlotRange строит интервал слота в конкретный день.
// Слот, заканчивающийся после полуночи, продлевается на следующие сутки.
func SlotRange(date datatypes.Date, start, end datatypes.Time) TimeRange {
	from := Combine(date, start)
	return TimeRange{Start: from, End: from.Add(time.Duration(Duration(start, end)) * time.Minute)}
}

// HasOverlap проверяет, пересекается ли newRange с existing.
// inclusive = true — касание концами считается пересечением.
func HasOverlap(
	newRange TimeRange,
	existing []TimeRange,
	inclusive bool,
) (bool, []TimeRange) {
	var conflicts []TimeRange

	for _, tr := range existing {
		if rangesOverlap(newRange, tr, inclusive) {
			conflicts = append(conflicts, tr)
		}
	}

	return len(conflicts) > 0, conflicts
}

func rangesOverlap(a, b TimeRange, inclusive bool) bool {
	if inclusive {
		return !a.Start.After(b.End) && !b.Start.After(a.End)
	}

	// Полуоткрытые интервалы [Start, End)
	return a.Start.Before(b.End) && b.Start.Before(a.End)
}

// FormatSlotForUser форматирует интервал в строку вида
// "Monday, September 7, 2015, 09:00–09:45".
// Если loc != nil, время переводится в указанный часовой пояс.
func FormatSlotForUser(tr TimeRange, loc *time.Location) string {
	start := tr.Start
	end := tr.End

	if loc != nil {
		start = start.In(loc)
		end = end.In(loc)
	}

	return fmt.Sprintf("%s, %s–%s",
		start.Format("Monday, January 2, 2006"),
		start.Format("15:04"),
		end.Format("15:04"),
	)
}
