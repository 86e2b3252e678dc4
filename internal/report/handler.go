package report

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"healthai-backend/internal/shared/metrics"
	"healthai-backend/internal/shared/server/respond"
	"healthai-backend/internal/shared/telemetry"
)

// Handler serves POST /report.
type Handler struct {
	Gen *Generator
}

// NewHandler constructs a Handler.
func NewHandler(gen *Generator) *Handler {
	return &Handler{Gen: gen}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/report", h.generate)
}

func (h *Handler) generate(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil && !errors.Is(err, io.EOF) {
		respond.Error(c, http.StatusBadRequest, "invalid_body", "request body must be a JSON object with mhLabel, phLabel and status", nil)
		return
	}

	var buf bytes.Buffer
	meta, err := h.Gen.Render(&buf, in)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to generate report", nil)
		return
	}
	metrics.IncReportsGenerated()
	telemetry.Info("report.generated", map[string]any{
		"request_id": c.GetString("requestId"),
		"report_id":  meta.ID,
		"bytes":      meta.Bytes,
	})

	c.Header("Content-Disposition", `attachment; filename="`+FileName+`"`)
	c.Header("X-Report-Id", meta.ID)
	c.Data(http.StatusOK, "application/pdf", buf.Bytes())
}
