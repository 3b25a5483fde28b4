package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/djangocon/conference-site/internal/export"
	"github.com/djangocon/conference-site/internal/service"
)

type scheduleHandler struct {
	schedule   *service.ScheduleService
	siteDomain string
	log        *slog.Logger
}

func newScheduleHandler(schedule *service.ScheduleService, siteDomain string, log *slog.Logger) *scheduleHandler {
	return &scheduleHandler{schedule: schedule, siteDomain: siteDomain, log: log}
}

// JSON отдаёт фид расписания для видеокоманды.
func (h *scheduleHandler) JSON(c *gin.Context) {
	data, err := h.schedule.ScheduleJSON(c.Request.Context(), CurrentUser(c))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	var buf bytes.Buffer
	if err := service.EncodeScheduleJSON(&buf, data); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.Data(http.StatusOK, export.ContentTypeJSON, buf.Bytes())
}

// Guidebook отдаёт CSV для импорта в Guidebook.
func (h *scheduleHandler) Guidebook(c *gin.Context) {
	table, err := h.schedule.Guidebook(c.Request.Context())
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, table); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	attachment(c, "guidebook.csv", export.ContentTypeCSV, buf.Bytes())
}

// Presentation рендерит страницу доклада.
func (h *scheduleHandler) Presentation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		abortWithError(c, http.StatusNotFound, "not found")
		return
	}

	detail, err := h.schedule.Presentation(c.Request.Context(), uint(id))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}

	c.HTML(http.StatusOK, "presentation_detail.html", gin.H{
		"Presentation": detail.Presentation,
		"Speakers":     detail.Speakers,
		"When":         detail.When,
		"Rooms":        detail.Rooms,
		"SiteDomain":   h.siteDomain,
	})
}

// attachment отдаёт тело как скачиваемый файл.
func attachment(c *gin.Context, filename, contentType string, body []byte) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, contentType, body)
}
