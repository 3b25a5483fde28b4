package web

import (
	"bytes"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/djangocon/conference-site/internal/export"
	"github.com/djangocon/conference-site/internal/listing"
	"github.com/djangocon/conference-site/internal/service"
)

type exportHandler struct {
	proposals *service.ProposalExportService
	sponsors  *service.SponsorService
	log       *slog.Logger
}

func newExportHandler(proposals *service.ProposalExportService, sponsors *service.SponsorService, log *slog.Logger) *exportHandler {
	return &exportHandler{proposals: proposals, sponsors: sponsors, log: log}
}

// ProposalsCSV — выгрузка заявок; ?kind=talk ограничивает вид.
func (h *exportHandler) ProposalsCSV(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.proposals.WriteCSV(c.Request.Context(), &buf, c.Query("kind")); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	attachment(c, "proposals.csv", export.ContentTypeCSV, buf.Bytes())
}

func (h *exportHandler) ProposalsXLSX(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.proposals.WriteXLSX(c.Request.Context(), &buf, c.Query("kind")); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	attachment(c, "proposals.xlsx", export.ContentTypeXLSX, buf.Bytes())
}

func (h *exportHandler) ProposalDocuments(c *gin.Context) {
	var buf bytes.Buffer
	added, err := h.proposals.DocumentsZip(c.Request.Context(), &buf, c.Query("kind"))
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	h.log.InfoContext(c.Request.Context(), "proposal documents exported", slog.Int("files", added))
	attachment(c, "proposal_documents.zip", export.ContentTypeZIP, buf.Bytes())
}

// Sponsors — публичный список активных спонсоров постранично.
func (h *exportHandler) Sponsors(c *gin.Context) {
	page, _ := strconv.Atoi(c.Query("page"))
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(listing.DefaultPageSize)))

	result, err := h.sponsors.Listing(c.Request.Context(), page, size)
	if err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *exportHandler) SponsorsZip(c *gin.Context) {
	var buf bytes.Buffer
	if err := h.sponsors.ExportZip(c.Request.Context(), &buf); err != nil {
		respondServiceError(c, h.log, err)
		return
	}
	attachment(c, "sponsors.zip", export.ContentTypeZIP, buf.Bytes())
}
