package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/dto"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/planner"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/export"
)

type exportCatalog interface {
	CourseByID(id string) (models.Course, bool)
	SectionByID(id string) (models.CourseSection, models.Course, bool)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// DownloadFormat selects the rendered download encoding.
type DownloadFormat string

const (
	DownloadCSV DownloadFormat = "csv"
	DownloadPDF DownloadFormat = "pdf"
)

// DownloadResult carries rendered bytes plus HTTP metadata.
type DownloadResult struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ExportService serialises schedules into the portable envelope, rehydrates
// them against the live catalog, and renders printable downloads.
type ExportService struct {
	catalog   exportCatalog
	csv       csvRenderer
	pdf       pdfRenderer
	validator *validator.Validate
	logger    *zap.Logger
}

// NewExportService wires export dependencies.
func NewExportService(catalog exportCatalog, csv csvRenderer, pdf pdfRenderer, validate *validator.Validate, logger *zap.Logger) *ExportService {
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExportService{catalog: catalog, csv: csv, pdf: pdf, validator: validate, logger: logger}
}

// Export converts a schedule into the portable envelope. Only stable
// identifiers cross the boundary; times and rooms are re-resolved on import.
func (s *ExportService) Export(ctx context.Context, req dto.ExportScheduleRequest) (*dto.ScheduleExport, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid export payload")
	}
	schedule := req.Schedule
	envelope := &dto.ScheduleExport{
		Version:      dto.ScheduleExportVersion,
		Name:         schedule.Name,
		TermID:       schedule.TermID,
		Sections:     make([]dto.ExportedSection, 0, len(schedule.Sections)),
		TotalCredits: schedule.TotalCredits,
	}
	for _, section := range schedule.Sections {
		if section.CourseID == "" || section.ID == "" {
			return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("section %q is missing identifiers", section.ID))
		}
		envelope.Sections = append(envelope.Sections, dto.ExportedSection{
			CourseID:  section.CourseID,
			SectionID: section.ID,
		})
	}
	return envelope, nil
}

// Import rehydrates an envelope against the live catalog. Unknown versions
// and unresolvable references fail closed; a credit mismatch between the
// file and the catalog is reconciled in the catalog's favour with a notice.
func (s *ExportService) Import(ctx context.Context, raw []byte) (*dto.ImportScheduleResponse, error) {
	var envelope dto.ScheduleExport
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidScheduleFormat.Code, appErrors.ErrInvalidScheduleFormat.Status, "schedule file is not valid JSON")
	}
	if envelope.Version != dto.ScheduleExportVersion {
		return nil, appErrors.Clone(appErrors.ErrInvalidScheduleFormat, fmt.Sprintf("unsupported schedule file version %q", envelope.Version))
	}
	if err := s.validator.Struct(envelope); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidScheduleFormat.Code, appErrors.ErrInvalidScheduleFormat.Status, "schedule file is missing required fields")
	}

	schedule := models.Schedule{
		Name:     envelope.Name,
		TermID:   envelope.TermID,
		Sections: make([]models.CourseSection, 0, len(envelope.Sections)),
	}
	for _, ref := range envelope.Sections {
		section, course, ok := s.catalog.SectionByID(ref.SectionID)
		if !ok || course.ID != ref.CourseID {
			return nil, appErrors.Clone(appErrors.ErrUnresolvedCourseReference,
				fmt.Sprintf("section %s of course %s does not exist in the catalog", ref.SectionID, ref.CourseID))
		}
		schedule.Sections = append(schedule.Sections, section)
	}

	var notices []string
	schedule.TotalCredits = planner.TotalCredits(schedule.Sections, s.catalog)
	if envelope.TotalCredits != 0 && envelope.TotalCredits != schedule.TotalCredits {
		notices = append(notices, fmt.Sprintf("total credits adjusted from %d to %d to match the current catalog", envelope.TotalCredits, schedule.TotalCredits))
	}
	s.logger.Info("schedule imported",
		zap.Int("sections", len(schedule.Sections)),
		zap.Int("notices", len(notices)))
	return &dto.ImportScheduleResponse{Schedule: schedule, Notices: notices}, nil
}

// Download renders a schedule's weekly grid as CSV or PDF.
func (s *ExportService) Download(ctx context.Context, scheduleID string, req dto.DownloadScheduleRequest, format DownloadFormat) (*DownloadResult, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid download payload")
	}

	data := s.buildDataset(req.Schedule)
	name := sanitizeFileName(scheduleID)
	if name == "" {
		name = "schedule"
	}

	switch format {
	case DownloadCSV:
		payload, err := s.csv.Render(data)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &DownloadResult{FileName: name + ".csv", ContentType: "text/csv", Data: payload}, nil
	case DownloadPDF:
		title := req.Schedule.Name
		if title == "" {
			title = "Schedule"
		}
		payload, err := s.pdf.Render(data, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &DownloadResult{FileName: name + ".pdf", ContentType: "application/pdf", Data: payload}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported download format %q", format))
	}
}

func (s *ExportService) buildDataset(schedule models.Schedule) export.Dataset {
	data := export.Dataset{
		Headers: []string{"Course", "Section", "Days", "Time", "Room", "Instructor", "Credits"},
	}
	if schedule.Name != "" {
		data.Summary = append(data.Summary, "Schedule: "+schedule.Name)
	}
	if schedule.TermID != "" {
		data.Summary = append(data.Summary, "Term: "+schedule.TermID)
	}
	data.Summary = append(data.Summary, fmt.Sprintf("Total credits: %d", schedule.TotalCredits))

	for _, section := range schedule.Sections {
		courseLabel := section.CourseID
		credits := ""
		if course, ok := s.catalog.CourseByID(section.CourseID); ok {
			courseLabel = course.Code + " " + course.Name
			credits = fmt.Sprintf("%d", course.Credits)
		}
		for _, meeting := range section.Schedule {
			data.Rows = append(data.Rows, map[string]string{
				"Course":     courseLabel,
				"Section":    section.SectionNumber,
				"Days":       strings.Join(meeting.Days, " "),
				"Time":       meeting.StartTime + "-" + meeting.EndTime,
				"Room":       meeting.Room,
				"Instructor": section.Instructor,
				"Credits":    credits,
			})
		}
	}
	return data
}

func sanitizeFileName(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
