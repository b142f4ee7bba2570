package profile

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"sort"
	"strings"
	"time"
)

// Days lists the day names a weekly schedule is expected to use.
var Days = []string{"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday"}

// TimeOfDay is a wall-clock time counted in seconds since midnight.
type TimeOfDay int

// ParseTimeOfDay accepts "15:04" or "15:04:05".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"15:04", "15:04:05"} {
		t, err := time.Parse(layout, s)
		if err == nil {
			return TimeOfDay(t.Hour()*3600 + t.Minute()*60 + t.Second()), nil
		}
	}
	return 0, fmt.Errorf("parse time of day %q: expected HH:MM or HH:MM:SS", s)
}

// Clock builds a TimeOfDay from hours and minutes.
func Clock(hour, minute int) TimeOfDay {
	return TimeOfDay(hour*3600 + minute*60)
}

func (t TimeOfDay) String() string {
	h, m, s := int(t)/3600, int(t)%3600/60, int(t)%60
	if s != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

func (t TimeOfDay) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeOfDay) UnmarshalText(text []byte) error {
	parsed, err := ParseTimeOfDay(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Interval is an availability window within one day.
type Interval struct {
	Start TimeOfDay
	End   TimeOfDay
}

// MarshalJSON encodes the interval as a ["start", "end"] pair.
func (i Interval) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]TimeOfDay{i.Start, i.End})
}

// UnmarshalJSON accepts either a ["start", "end"] pair or a
// {"start": ..., "end": ...} object.
func (i *Interval) UnmarshalJSON(data []byte) error {
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '[' {
		var pair []TimeOfDay
		if err := json.Unmarshal(trimmed, &pair); err != nil {
			return fmt.Errorf("decode interval: %w", err)
		}
		if len(pair) != 2 {
			return fmt.Errorf("interval must have exactly 2 elements, got %d", len(pair))
		}
		i.Start, i.End = pair[0], pair[1]
		return nil
	}

	var obj struct {
		Start *TimeOfDay `json:"start"`
		End   *TimeOfDay `json:"end"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("decode interval: %w", err)
	}
	if obj.Start == nil || obj.End == nil {
		return fmt.Errorf("interval requires both start and end")
	}
	i.Start, i.End = *obj.Start, *obj.End
	return nil
}

// Schedule maps day names to ordered availability intervals. It is stored as
// given and never consulted by feature extraction.
type Schedule map[string][]Interval

// ScheduleIssue points at a questionable schedule entry.
type ScheduleIssue struct {
	Day    string
	Index  int
	Reason string
}

func (i ScheduleIssue) String() string {
	if i.Index < 0 {
		return fmt.Sprintf("%s: %s", i.Day, i.Reason)
	}
	return fmt.Sprintf("%s[%d]: %s", i.Day, i.Index, i.Reason)
}

// Issues reports unknown day names and intervals whose start does not precede
// their end, ordered by day and position.
func (s Schedule) Issues() []ScheduleIssue {
	days := make([]string, 0, len(s))
	for day := range s {
		days = append(days, day)
	}
	sort.Strings(days)

	var issues []ScheduleIssue
	for _, day := range days {
		if !slices.Contains(Days, strings.ToLower(day)) {
			issues = append(issues, ScheduleIssue{Day: day, Index: -1, Reason: "unknown day name"})
		}
		for idx, interval := range s[day] {
			if interval.Start >= interval.End {
				issues = append(issues, ScheduleIssue{
					Day:    day,
					Index:  idx,
					Reason: fmt.Sprintf("start %s does not precede end %s", interval.Start, interval.End),
				})
			}
		}
	}
	return issues
}

// Clone returns a deep copy. A nil schedule stays nil.
func (s Schedule) Clone() Schedule {
	if s == nil {
		return nil
	}
	clone := make(Schedule, len(s))
	for day, intervals := range s {
		clone[day] = slices.Clone(intervals)
	}
	return clone
}
