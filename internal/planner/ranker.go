package planner

import (
	"fmt"
	"sort"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/timeblock"
)

// Weights holds the penalty policy for preference scoring. Lower total score
// is better. The exact numbers are product policy, not derived constants;
// density is deliberately the smallest so it acts as a tiebreak.
type Weights struct {
	MinuteOutsideWindow float64
	FridayMeeting       float64
	WarningConflict     float64
	DistinctStartHour   float64
}

// DefaultWeights is the placeholder policy pending product tuning.
var DefaultWeights = Weights{
	MinuteOutsideWindow: 1,
	FridayMeeting:       480,
	WarningConflict:     240,
	DistinctStartHour:   15,
}

// Preferred time-of-day windows in minutes since midnight. Morning ends at
// noon, afternoon runs to 17:00, evening covers the rest of the day.
var preferenceWindows = map[models.TimePreference][2]int{
	models.TimePreferenceMorning:   {0, 12 * 60},
	models.TimePreferenceAfternoon: {12 * 60, 17 * 60},
	models.TimePreferenceEvening:   {17 * 60, 24 * 60},
}

// Rank scores every candidate against the preferences and returns schedules
// sorted best-first with stable ties. Each schedule carries the full conflict
// list from re-running detection, its deduplicated credit total, and an
// auto-generated "Option N" name in rank order.
func Rank(candidates [][]models.CourseSection, busyTimes []models.BusyTime, prefs models.SchedulePreferences, courses CourseLookup, completed []string, termID string) ([]models.Schedule, error) {
	return RankWithWeights(candidates, busyTimes, prefs, courses, completed, termID, DefaultWeights)
}

// RankWithWeights is Rank with an explicit penalty policy.
func RankWithWeights(candidates [][]models.CourseSection, busyTimes []models.BusyTime, prefs models.SchedulePreferences, courses CourseLookup, completed []string, termID string, weights Weights) ([]models.Schedule, error) {
	schedules := make([]models.Schedule, 0, len(candidates))
	for _, combo := range candidates {
		conflicts, err := DetectConflicts(combo, busyTimes, courses, completed)
		if err != nil {
			return nil, err
		}

		blocks, err := comboBlocks(combo)
		if err != nil {
			return nil, err
		}

		score := scoreCandidate(blocks, conflicts, prefs, weights)
		schedules = append(schedules, models.Schedule{
			TermID:       termID,
			Sections:     combo,
			BusyTimes:    busyTimes,
			TotalCredits: TotalCredits(combo, courses),
			Conflicts:    conflicts,
			Score:        score,
		})
	}

	sort.SliceStable(schedules, func(i, j int) bool {
		return schedules[i].Score < schedules[j].Score
	})

	for i := range schedules {
		schedules[i].ID = fmt.Sprintf("option-%d", i+1)
		schedules[i].Name = fmt.Sprintf("Option %d", i+1)
	}
	return schedules, nil
}

// TotalCredits sums parent-course credits once per distinct course among the
// chosen sections.
func TotalCredits(sections []models.CourseSection, courses CourseLookup) int {
	total := 0
	counted := make(map[string]bool, len(sections))
	for _, section := range sections {
		if counted[section.CourseID] {
			continue
		}
		counted[section.CourseID] = true
		if course, ok := lookupCourse(courses, section.CourseID); ok {
			total += course.Credits
		}
	}
	return total
}

func comboBlocks(combo []models.CourseSection) ([]timeblock.Block, error) {
	var blocks []timeblock.Block
	for _, section := range combo {
		sectionBlocks, err := SectionBlocks(section)
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, sectionBlocks...)
	}
	return blocks, nil
}

func scoreCandidate(blocks []timeblock.Block, conflicts []models.ScheduleConflict, prefs models.SchedulePreferences, weights Weights) float64 {
	score := 0.0

	if window, ok := preferenceWindows[prefs.TimeOfDay]; ok {
		for _, block := range blocks {
			score += float64(minutesOutsideWindow(block, window[0], window[1])) * weights.MinuteOutsideWindow
		}
	}

	if prefs.AvoidFriday {
		for _, block := range blocks {
			if block.Day == timeblock.Friday {
				score += weights.FridayMeeting
			}
		}
	}

	for _, conflict := range conflicts {
		if conflict.Severity == models.SeverityWarning {
			score += weights.WarningConflict
		}
	}

	score += float64(distinctStartHours(blocks)) * weights.DistinctStartHour
	return score
}

func minutesOutsideWindow(block timeblock.Block, windowStart, windowEnd int) int {
	overlapStart := block.Start
	if windowStart > overlapStart {
		overlapStart = windowStart
	}
	overlapEnd := block.End
	if windowEnd < overlapEnd {
		overlapEnd = windowEnd
	}
	inside := overlapEnd - overlapStart
	if inside < 0 {
		inside = 0
	}
	return block.Minutes() - inside
}

// distinctStartHours counts the distinct start hours spanned per day, summed
// across days. Denser schedules score lower.
func distinctStartHours(blocks []timeblock.Block) int {
	type dayHour struct {
		day  timeblock.Weekday
		hour int
	}
	seen := make(map[dayHour]bool, len(blocks))
	for _, block := range blocks {
		seen[dayHour{day: block.Day, hour: block.Start / 60}] = true
	}
	return len(seen)
}
