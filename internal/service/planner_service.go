package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/planner"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
)

type plannerCatalog interface {
	CourseByID(id string) (models.Course, bool)
	SectionByID(id string) (models.CourseSection, models.Course, bool)
	StudentByID(id string) (models.StudentInfo, bool)
}

type generationObserver interface {
	ObserveGeneration(nodesVisited, candidates int, duration time.Duration)
}

// PlannerConfig governs the candidate search and the saved-schedule session.
type PlannerConfig struct {
	NodeBudget    int
	MaxCandidates int
	MaxResults    int
	SessionTTL    time.Duration
}

// PlannerService orchestrates schedule generation, ranking, ad-hoc conflict
// checks, and the in-memory saved-schedule session.
type PlannerService struct {
	catalog   plannerCatalog
	metrics   generationObserver
	validator *validator.Validate
	logger    *zap.Logger
	cfg       PlannerConfig
	store     *scheduleStore
}

// NewPlannerService wires planner dependencies.
func NewPlannerService(catalog plannerCatalog, metrics generationObserver, validate *validator.Validate, logger *zap.Logger, cfg PlannerConfig) *PlannerService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxResults <= 0 {
		cfg.MaxResults = 10
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 12 * time.Hour
	}
	return &PlannerService{
		catalog:   catalog,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		cfg:       cfg,
		store:     newScheduleStore(cfg.SessionTTL),
	}
}

// Generate produces conflict-free schedule candidates for the requested
// courses and returns them ranked by preference fit.
func (s *PlannerService) Generate(ctx context.Context, req dto.GenerateScheduleRequest) (*dto.GenerateScheduleResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule generation payload")
	}

	completed := s.resolveCompleted(req.StudentID, req.CompletedCourses)
	fixed, err := s.resolveSections(req.FixedSections)
	if err != nil {
		return nil, err
	}

	filters := planner.SectionFilters{}
	if len(req.Filters.ExcludeHonors) > 0 {
		filters.ExcludeHonors = make(map[string]bool, len(req.Filters.ExcludeHonors))
		for _, id := range req.Filters.ExcludeHonors {
			filters.ExcludeHonors[id] = true
		}
	}
	filters.AllowedSections = req.Filters.AllowedSections

	started := time.Now()
	it, err := planner.NewIterator(req.CourseIDs, s.catalog, req.BusyTimes, fixed, filters, planner.Config{
		NodeBudget:    s.cfg.NodeBudget,
		MaxCandidates: s.cfg.MaxCandidates,
	})
	if err != nil {
		return nil, err
	}

	var candidates [][]models.CourseSection
	truncated := false
	for {
		combo, ok, iterErr := it.Next()
		if iterErr != nil {
			if appErrors.HasCode(iterErr, appErrors.ErrGenerationBudgetExceeded) && len(candidates) > 0 {
				truncated = true
				break
			}
			return nil, iterErr
		}
		if !ok {
			break
		}
		candidates = append(candidates, combo)
	}

	ranked, err := planner.Rank(candidates, req.BusyTimes, req.Preferences, s.catalog, completed, req.TermID)
	if err != nil {
		return nil, err
	}

	limit := req.MaxResults
	if limit <= 0 || limit > s.cfg.MaxResults {
		limit = s.cfg.MaxResults
	}
	if len(ranked) > limit {
		ranked = ranked[:limit]
		truncated = true
	}

	if s.metrics != nil {
		s.metrics.ObserveGeneration(it.Visited(), len(candidates), time.Since(started))
	}
	s.logger.Info("schedule generation finished",
		zap.Int("courses", len(req.CourseIDs)),
		zap.Int("nodes_visited", it.Visited()),
		zap.Int("candidates", len(candidates)),
		zap.Int("returned", len(ranked)),
		zap.Bool("truncated", truncated))

	return &dto.GenerateScheduleResponse{
		Schedules:    ranked,
		NodesVisited: it.Visited(),
		Truncated:    truncated,
	}, nil
}

// CheckConflicts runs conflict detection over an ad-hoc section selection.
func (s *PlannerService) CheckConflicts(ctx context.Context, req dto.ConflictCheckRequest) (*dto.ConflictCheckResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid conflict check payload")
	}
	sections, err := s.resolveSections(req.SectionIDs)
	if err != nil {
		return nil, err
	}
	conflicts, err := planner.DetectConflicts(sections, req.BusyTimes, s.catalog, req.CompletedCourses)
	if err != nil {
		return nil, err
	}
	if conflicts == nil {
		conflicts = []models.ScheduleConflict{}
	}
	return &dto.ConflictCheckResponse{Conflicts: conflicts}, nil
}

// --- Saved schedule session ---

// Save stores a schedule in the session, assigning an id when absent.
func (s *PlannerService) Save(ctx context.Context, req dto.SaveScheduleRequest) (models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Schedule{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}
	schedule := req.Schedule
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.Name == "" {
		schedule.Name = "Saved schedule"
	}
	if schedule.TotalCredits == 0 && len(schedule.Sections) > 0 {
		schedule.TotalCredits = planner.TotalCredits(schedule.Sections, s.catalog)
	}
	s.store.Save(schedule)
	return schedule, nil
}

// List returns all live saved schedules, oldest first.
func (s *PlannerService) List(ctx context.Context) []models.Schedule {
	return s.store.List()
}

// Get resolves one saved schedule.
func (s *PlannerService) Get(ctx context.Context, id string) (models.Schedule, error) {
	schedule, ok := s.store.Get(id)
	if !ok {
		return models.Schedule{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule %s not found", id))
	}
	return schedule, nil
}

// Rename updates a saved schedule's display name.
func (s *PlannerService) Rename(ctx context.Context, id string, req dto.RenameScheduleRequest) (models.Schedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return models.Schedule{}, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid rename payload")
	}
	schedule, ok := s.store.Get(id)
	if !ok {
		return models.Schedule{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule %s not found", id))
	}
	schedule.Name = req.Name
	s.store.Save(schedule)
	return schedule, nil
}

// Duplicate copies a saved schedule under a fresh id.
func (s *PlannerService) Duplicate(ctx context.Context, id string) (models.Schedule, error) {
	schedule, ok := s.store.Get(id)
	if !ok {
		return models.Schedule{}, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("schedule %s not found", id))
	}
	dup := schedule
	dup.ID = uuid.NewString()
	dup.Name = schedule.Name + " (copy)"
	dup.Sections = append([]models.CourseSection(nil), schedule.Sections...)
	dup.BusyTimes = append([]models.BusyTime(nil), schedule.BusyTimes...)
	dup.Conflicts = append([]models.ScheduleConflict(nil), schedule.Conflicts...)
	s.store.Save(dup)
	return dup, nil
}

// Delete removes a saved schedule. Deleting an unknown id is a no-op.
func (s *PlannerService) Delete(ctx context.Context, id string) {
	s.store.Delete(id)
}

func (s *PlannerService) resolveCompleted(studentID string, explicit []string) []string {
	completed := append([]string(nil), explicit...)
	if studentID == "" {
		return completed
	}
	student, ok := s.catalog.StudentByID(studentID)
	if !ok {
		return completed
	}
	seen := make(map[string]bool, len(completed))
	for _, c := range completed {
		seen[c] = true
	}
	for _, c := range student.CompletedCourses {
		if !seen[c] {
			completed = append(completed, c)
			seen[c] = true
		}
	}
	return completed
}

func (s *PlannerService) resolveSections(ids []string) ([]models.CourseSection, error) {
	sections := make([]models.CourseSection, 0, len(ids))
	for _, id := range ids {
		section, _, ok := s.catalog.SectionByID(id)
		if !ok {
			return nil, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("section %s not found", id))
		}
		sections = append(sections, section)
	}
	return sections, nil
}

// --- Session store ---

type savedSchedule struct {
	schedule models.Schedule
	savedAt  time.Time
}

type scheduleStore struct {
	ttl   time.Duration
	mu    sync.RWMutex
	items map[string]savedSchedule
}

func newScheduleStore(ttl time.Duration) *scheduleStore {
	return &scheduleStore{
		ttl:   ttl,
		items: make(map[string]savedSchedule),
	}
}

func (s *scheduleStore) Save(schedule models.Schedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, exists := s.items[schedule.ID]
	savedAt := time.Now()
	if exists {
		savedAt = entry.savedAt
	}
	s.items[schedule.ID] = savedSchedule{schedule: schedule, savedAt: savedAt}
}

func (s *scheduleStore) Get(id string) (models.Schedule, bool) {
	s.mu.RLock()
	entry, ok := s.items[id]
	s.mu.RUnlock()
	if !ok {
		return models.Schedule{}, false
	}
	if time.Since(entry.savedAt) > s.ttl {
		s.Delete(id)
		return models.Schedule{}, false
	}
	return entry.schedule, true
}

func (s *scheduleStore) List() []models.Schedule {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	entries := make([]savedSchedule, 0, len(s.items))
	for id, entry := range s.items {
		if now.Sub(entry.savedAt) > s.ttl {
			delete(s.items, id)
			continue
		}
		entries = append(entries, entry)
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].savedAt.Equal(entries[j].savedAt) {
			return entries[i].schedule.ID < entries[j].schedule.ID
		}
		return entries[i].savedAt.Before(entries[j].savedAt)
	})
	schedules := make([]models.Schedule, len(entries))
	for i, entry := range entries {
		schedules[i] = entry.schedule
	}
	return schedules
}

func (s *scheduleStore) Delete(id string) {
	s.mu.Lock()
	delete(s.items, id)
	s.mu.Unlock()
}
