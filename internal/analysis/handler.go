package analysis

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"healthai-backend/internal/shared/metrics"
	"healthai-backend/internal/shared/server/respond"
)

// OutcomeKey is the gin context key the logging middleware reads.
const OutcomeKey = "analysisOutcome"

// Handler wires HTTP handlers to the relay service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches POST /analyze behind the given middleware.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup, mw ...gin.HandlerFunc) {
	handlers := append(append([]gin.HandlerFunc{}, mw...), h.analyze)
	rg.POST("/analyze", handlers...)
}

type analyzeRequest struct {
	Message string `json:"message"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Set(OutcomeKey, string(OutcomeInvalidRequest))
		respond.JSON(c, http.StatusBadRequest, InvalidRequestResult())
		return
	}

	raw, err := h.Svc.Analyze(c.Request.Context(), req.Message)
	outcome := Classify(err)
	c.Set(OutcomeKey, string(outcome))

	switch outcome {
	case OutcomeSuccess:
		respond.RawJSON(c, http.StatusOK, raw)
	case OutcomeInvalidRequest:
		respond.JSON(c, http.StatusBadRequest, InvalidRequestResult())
	case OutcomeRateLimited:
		respond.JSON(c, http.StatusTooManyRequests, BusyResult())
	default:
		respond.JSON(c, http.StatusInternalServerError, ErrorResult())
	}
}

// RejectBusy answers a request turned away by the relay's own rate limiter
// with the same busy payload the provider path uses.
func RejectBusy(c *gin.Context, retryAfter time.Duration) {
	_ = retryAfter
	metrics.IncAnalyzeRateLimited()
	c.Set(OutcomeKey, string(OutcomeThrottled))
	respond.JSON(c, http.StatusTooManyRequests, BusyResult())
}
