package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/course-planner-api/internal/dto"
	"github.com/noah-isme/course-planner-api/internal/middleware"
	"github.com/noah-isme/course-planner-api/internal/service"
	appErrors "github.com/noah-isme/course-planner-api/pkg/errors"
	"github.com/noah-isme/course-planner-api/pkg/response"
)

type timetablePlanner interface {
	Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, bool, error)
	Customize(ctx context.Context, req dto.CustomizeTimetableRequest) (*dto.CustomizeTimetableResponse, error)
	Load(ctx context.Context, req dto.LoadTimetableRequest) (*dto.LoadTimetableResponse, error)
	Export(ctx context.Context, req dto.ExportTimetableRequest) (*dto.ExportedFile, error)
	InvalidateTerm(ctx context.Context, req dto.InvalidateCacheRequest) (*dto.InvalidateCacheResponse, error)
}

// TimetableHandler exposes the timetable planning endpoints.
type TimetableHandler struct {
	service timetablePlanner
}

// NewTimetableHandler constructs the handler.
func NewTimetableHandler(svc *service.TimetableService) *TimetableHandler {
	return &TimetableHandler{service: svc}
}

// Generate godoc
// @Summary Generate conflict-free timetables
// @Description Looks up every section of the requested courses and returns all clash-free timetables, best first.
// @Tags Timetables
// @Accept json
// @Accept x-www-form-urlencoded
// @Produce json
// @Param payload body dto.GenerateTimetableRequest true "Term and course list"
// @Success 200 {object} response.Envelope{data=dto.GenerateTimetableResponse}
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /schedule [post]
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.GenerateTimetableRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}
	start := time.Now()
	resp, cacheHit, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	if cacheHit {
		c.Header("X-Cache", "HIT")
	} else {
		c.Header("X-Cache", "MISS")
	}
	response.JSON(c, http.StatusOK, resp, withProcessingTime(c, start))
}

// Customize godoc
// @Summary Filter timetables by availability
// @Description Removes every timetable that meets during a blocked period and re-ranks the rest. The result can be posted again to chain rules.
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.CustomizeTimetableRequest true "Timetables and availability rules"
// @Success 200 {object} response.Envelope{data=dto.CustomizeTimetableResponse}
// @Failure 400 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /customization [post]
func (h *TimetableHandler) Customize(c *gin.Context) {
	var req dto.CustomizeTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid customization payload"))
		return
	}
	start := time.Now()
	resp, err := h.service.Customize(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, withProcessingTime(c, start))
}

// Load godoc
// @Summary Score one timetable
// @Tags Timetables
// @Accept json
// @Produce json
// @Param payload body dto.LoadTimetableRequest true "Chosen timetable"
// @Success 200 {object} response.Envelope{data=dto.LoadTimetableResponse}
// @Failure 400 {object} response.Envelope
// @Router /schedule/load [post]
func (h *TimetableHandler) Load(c *gin.Context) {
	var req dto.LoadTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid timetable payload"))
		return
	}
	resp, err := h.service.Load(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

// Export godoc
// @Summary Download one timetable as CSV or PDF
// @Tags Timetables
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param payload body dto.ExportTimetableRequest true "Timetable and format"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /schedule/export [post]
func (h *TimetableHandler) Export(c *gin.Context) {
	var req dto.ExportTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid export payload"))
		return
	}
	file, err := h.service.Export(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Body)
}

// InvalidateCache godoc
// @Summary Drop cached timetables of a term
// @Tags Timetables
// @Produce json
// @Param term query string true "Term such as 202490 or fall 2024"
// @Success 200 {object} response.Envelope{data=dto.InvalidateCacheResponse}
// @Failure 400 {object} response.Envelope
// @Router /schedule/cache [delete]
func (h *TimetableHandler) InvalidateCache(c *gin.Context) {
	var req dto.InvalidateCacheRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid cache request"))
		return
	}
	resp, err := h.service.InvalidateTerm(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp)
}

func withProcessingTime(c *gin.Context, start time.Time) map[string]interface{} {
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	return meta
}
