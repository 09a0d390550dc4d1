package planner

import (
	"fmt"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/timeblock"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

// Generation defaults. The node budget bounds worst-case latency on large
// section products; the candidate cap stops the search once enough complete
// combinations exist.
const (
	DefaultNodeBudget    = 50000
	DefaultMaxCandidates = 200
)

// Config bounds the candidate search.
type Config struct {
	NodeBudget    int
	MaxCandidates int
}

func (c Config) withDefaults() Config {
	if c.NodeBudget <= 0 {
		c.NodeBudget = DefaultNodeBudget
	}
	if c.MaxCandidates <= 0 {
		c.MaxCandidates = DefaultMaxCandidates
	}
	return c
}

// SectionFilters restricts which sections of each course are eligible.
// An absent or empty AllowedSections entry means every section is allowed.
type SectionFilters struct {
	ExcludeHonors   map[string]bool
	AllowedSections map[string][]string
}

type candidateSection struct {
	section models.CourseSection
	blocks  []timeblock.Block
}

// Iterator is a finite, restartable lazy sequence over conflict-free section
// combinations. Courses are visited in input order; within a course, sections
// keep catalog order, so iteration order is deterministic.
type Iterator struct {
	eligible [][]candidateSection
	cfg      Config
	idx      []int
	pos      int
	visited  int
	emitted  int
	done     bool
	trivial  bool
}

// NewIterator validates the course selection and prepares the backtracking
// search. Fixed sections collapse their course's eligible set to one entry.
// A course left with zero eligible sections fails immediately.
func NewIterator(selectedCourseIDs []string, courses CourseLookup, busyTimes []models.BusyTime, fixedSections []models.CourseSection, filters SectionFilters, cfg Config) (*Iterator, error) {
	fixedByCourse := make(map[string]models.CourseSection, len(fixedSections))
	for _, section := range fixedSections {
		fixedByCourse[section.CourseID] = section
	}

	eligible := make([][]candidateSection, 0, len(selectedCourseIDs))
	for _, courseID := range selectedCourseIDs {
		course, ok := courses.CourseByID(courseID)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found in catalog", courseID))
		}

		sections := eligibleSections(course, fixedByCourse, filters)
		if len(sections) == 0 {
			return nil, appErrors.Clone(appErrors.ErrNoEligibleSections, fmt.Sprintf("course %s has no eligible sections; remove or adjust filters", course.Code))
		}

		candidates := make([]candidateSection, 0, len(sections))
		for _, section := range sections {
			blocks, err := SectionBlocks(section)
			if err != nil {
				return nil, err
			}
			candidates = append(candidates, candidateSection{section: section, blocks: blocks})
		}
		eligible = append(eligible, candidates)
	}

	it := &Iterator{
		eligible: eligible,
		cfg:      cfg.withDefaults(),
		idx:      make([]int, len(eligible)),
	}
	return it, nil
}

// Reset rewinds the iterator to the start of the sequence.
func (it *Iterator) Reset() {
	for i := range it.idx {
		it.idx[i] = 0
	}
	it.pos = 0
	it.visited = 0
	it.emitted = 0
	it.done = false
	it.trivial = false
}

// Visited reports how many search nodes the iterator has explored.
func (it *Iterator) Visited() int {
	return it.visited
}

// Next returns the next conflict-free combination, or ok=false when the
// sequence is exhausted. Only newly introduced error-severity time conflicts
// prune the search; busy-time overlaps are warnings and never prune.
func (it *Iterator) Next() ([]models.CourseSection, bool, error) {
	if it.done {
		return nil, false, nil
	}
	if len(it.eligible) == 0 {
		// Zero selected courses is legal: one trivial empty schedule.
		if it.trivial {
			it.done = true
			return nil, false, nil
		}
		it.trivial = true
		return []models.CourseSection{}, true, nil
	}

	for {
		if it.pos < 0 {
			it.done = true
			return nil, false, nil
		}
		if it.idx[it.pos] >= len(it.eligible[it.pos]) {
			it.idx[it.pos] = 0
			it.pos--
			if it.pos >= 0 {
				it.idx[it.pos]++
			}
			continue
		}

		it.visited++
		if it.visited > it.cfg.NodeBudget {
			it.done = true
			return nil, false, appErrors.Clone(appErrors.ErrGenerationBudgetExceeded, "")
		}

		candidate := it.eligible[it.pos][it.idx[it.pos]]
		if it.conflictsWithChosen(candidate) {
			it.idx[it.pos]++
			continue
		}

		if it.pos == len(it.eligible)-1 {
			combo := it.currentCombo()
			it.emitted++
			if it.emitted >= it.cfg.MaxCandidates {
				it.done = true
			} else {
				it.idx[it.pos]++
			}
			return combo, true, nil
		}
		it.pos++
	}
}

// conflictsWithChosen is the incremental conflict check: the tentative
// section against every already-chosen section, block by block.
func (it *Iterator) conflictsWithChosen(candidate candidateSection) bool {
	for level := 0; level < it.pos; level++ {
		chosen := it.eligible[level][it.idx[level]]
		for _, blockA := range candidate.blocks {
			for _, blockB := range chosen.blocks {
				if blockA.Overlaps(blockB) {
					return true
				}
			}
		}
	}
	return false
}

func (it *Iterator) currentCombo() []models.CourseSection {
	combo := make([]models.CourseSection, len(it.eligible))
	for level := range it.eligible {
		combo[level] = it.eligible[level][it.idx[level]].section
	}
	return combo
}

// Generate materializes every conflict-free combination of exactly one
// section per selected course, honoring fixed sections and filters. Busy
// times never exclude a combination; their overlaps surface later as
// warning conflicts during ranking. Exhausting the node budget fails only
// when no combination was found; otherwise the partial set is returned.
func Generate(selectedCourseIDs []string, courses CourseLookup, busyTimes []models.BusyTime, fixedSections []models.CourseSection, filters SectionFilters, cfg Config) ([][]models.CourseSection, error) {
	it, err := NewIterator(selectedCourseIDs, courses, busyTimes, fixedSections, filters, cfg)
	if err != nil {
		return nil, err
	}

	var combos [][]models.CourseSection
	for {
		combo, ok, err := it.Next()
		if err != nil {
			if appErrors.HasCode(err, appErrors.ErrGenerationBudgetExceeded) && len(combos) > 0 {
				return combos, nil
			}
			return nil, err
		}
		if !ok {
			return combos, nil
		}
		combos = append(combos, combo)
	}
}

func eligibleSections(course models.Course, fixedByCourse map[string]models.CourseSection, filters SectionFilters) []models.CourseSection {
	if fixed, ok := fixedByCourse[course.ID]; ok {
		return []models.CourseSection{fixed}
	}

	var allowedSet map[string]bool
	if allowed := filters.AllowedSections[course.ID]; len(allowed) > 0 {
		allowedSet = make(map[string]bool, len(allowed))
		for _, id := range allowed {
			allowedSet[id] = true
		}
	}

	var result []models.CourseSection
	for _, section := range course.Sections {
		if allowedSet != nil && !allowedSet[section.ID] {
			continue
		}
		if filters.ExcludeHonors[course.ID] && section.Type == models.SectionTypeHonors {
			continue
		}
		result = append(result, section)
	}
	return result
}
