// Package timeblock normalises weekly meeting times into minute intervals and
// answers overlap queries. It is the leaf dependency of the planner.
package timeblock

import (
	"fmt"
	"strconv"
	"strings"

	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

// Weekday indexes Monday through Sunday as 1..7.
type Weekday int

const (
	Monday Weekday = iota + 1
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayTokens = map[string]Weekday{
	"M":  Monday,
	"T":  Tuesday,
	"W":  Wednesday,
	"Th": Thursday,
	"F":  Friday,
	"Sa": Saturday,
	"Su": Sunday,
}

var weekdayNames = map[Weekday]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

// String returns the full weekday name.
func (w Weekday) String() string {
	if name, ok := weekdayNames[w]; ok {
		return name
	}
	return fmt.Sprintf("Weekday(%d)", int(w))
}

// ParseWeekday resolves a token from the 7-symbol vocabulary M,T,W,Th,F,Sa,Su.
func ParseWeekday(token string) (Weekday, error) {
	if day, ok := weekdayTokens[token]; ok {
		return day, nil
	}
	return 0, appErrors.Clone(appErrors.ErrUnknownWeekday, fmt.Sprintf("unknown weekday token %q", token))
}

// ParseClock converts a wall-clock "HH:MM" string to minutes since midnight.
func ParseClock(raw string) (int, error) {
	parts := strings.SplitN(raw, ":", 2)
	if len(parts) != 2 {
		return 0, appErrors.Clone(appErrors.ErrMalformedSchedule, fmt.Sprintf("malformed time %q", raw))
	}
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrMalformedSchedule.Code, appErrors.ErrMalformedSchedule.Status, fmt.Sprintf("malformed time %q", raw))
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, appErrors.Wrap(err, appErrors.ErrMalformedSchedule.Code, appErrors.ErrMalformedSchedule.Status, fmt.Sprintf("malformed time %q", raw))
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, appErrors.Clone(appErrors.ErrMalformedSchedule, fmt.Sprintf("time %q out of range", raw))
	}
	return hours*60 + minutes, nil
}

// Block is a normalised meeting interval on a single weekday. Start and End
// are minutes since midnight and the interval is half-open: [Start, End).
type Block struct {
	Day   Weekday
	Start int
	End   int
}

// Overlaps reports half-open interval intersection on the same weekday.
// Touching endpoints do not overlap.
func (b Block) Overlaps(o Block) bool {
	return b.Day == o.Day && b.Start < o.End && o.Start < b.End
}

// Minutes returns the block's duration in minutes.
func (b Block) Minutes() int {
	return b.End - b.Start
}

// Normalize expands a weekday set plus a start/end pair into one Block per
// weekday. End at or before start fails with a malformed-schedule error.
func Normalize(days []string, startTime, endTime string) ([]Block, error) {
	start, err := ParseClock(startTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(endTime)
	if err != nil {
		return nil, err
	}
	if end <= start {
		return nil, appErrors.Clone(appErrors.ErrMalformedSchedule, fmt.Sprintf("end time %q not after start time %q", endTime, startTime))
	}

	blocks := make([]Block, 0, len(days))
	for _, token := range days {
		day, err := ParseWeekday(token)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, Block{Day: day, Start: start, End: end})
	}
	return blocks, nil
}
