package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/catalog"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/internal/models"
	appErrors "github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/errors"
	"github.com/elanthamilan/camu-course-compass-planner-sub000/pkg/response"
)

type catalogReader interface {
	Courses(filter catalog.CourseFilter) ([]models.Course, models.Pagination)
	CourseByID(id string) (models.Course, bool)
	Programs() []models.AcademicProgram
	ProgramByID(id string) (models.AcademicProgram, bool)
	StudentByID(id string) (models.StudentInfo, bool)
}

// CatalogHandler exposes read-only catalog endpoints.
type CatalogHandler struct {
	catalog catalogReader
}

// NewCatalogHandler constructs the handler.
func NewCatalogHandler(store catalogReader) *CatalogHandler {
	return &CatalogHandler{catalog: store}
}

// ListCourses godoc
// @Summary List catalog courses
// @Description Supports free-text search over code and name, department filtering, and pagination.
// @Tags Catalog
// @Produce json
// @Param search query string false "Search over course code and name"
// @Param department query string false "Department filter"
// @Param page query int false "Page number (1-based)"
// @Param pageSize query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /courses [get]
func (h *CatalogHandler) ListCourses(c *gin.Context) {
	filter := catalog.CourseFilter{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		Page:       queryInt(c, "page", 1),
		PageSize:   queryInt(c, "pageSize", 20),
	}
	courses, pagination := h.catalog.Courses(filter)
	response.JSON(c, http.StatusOK, courses, &pagination)
}

// GetCourse godoc
// @Summary Get one course with its sections
// @Tags Catalog
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /courses/{id} [get]
func (h *CatalogHandler) GetCourse(c *gin.Context) {
	course, ok := h.catalog.CourseByID(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("course %s not found", c.Param("id"))))
		return
	}
	response.JSON(c, http.StatusOK, course, nil)
}

// ListPrograms godoc
// @Summary List academic programs
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /programs [get]
func (h *CatalogHandler) ListPrograms(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.catalog.Programs(), nil)
}

// GetProgram godoc
// @Summary Get one academic program with its requirements
// @Tags Catalog
// @Produce json
// @Param id path string true "Program ID"
// @Success 200 {object} response.Envelope
// @Router /programs/{id} [get]
func (h *CatalogHandler) GetProgram(c *gin.Context) {
	program, ok := h.catalog.ProgramByID(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("program %s not found", c.Param("id"))))
		return
	}
	response.JSON(c, http.StatusOK, program, nil)
}

// GetStudent godoc
// @Summary Get a student record
// @Tags Catalog
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /students/{id} [get]
func (h *CatalogHandler) GetStudent(c *gin.Context) {
	student, ok := h.catalog.StudentByID(c.Param("id"))
	if !ok {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", c.Param("id"))))
		return
	}
	response.JSON(c, http.StatusOK, student, nil)
}

func queryInt(c *gin.Context, key string, fallback int) int {
	raw := c.Query(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 1 {
		return fallback
	}
	return value
}
