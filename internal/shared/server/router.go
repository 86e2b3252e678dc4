package server

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"healthai-backend/internal/analysis"
	"healthai-backend/internal/report"
	"healthai-backend/internal/shared/config"
	"healthai-backend/internal/shared/metrics"
	"healthai-backend/internal/shared/server/middleware"
	"healthai-backend/internal/shared/server/respond"
)

const analyzeRateGroup = "ANALYZE"

// RouterDeps contains wired handlers for routing.
type RouterDeps struct {
	Config          config.Config
	AnalysisHandler *analysis.Handler
	ReportHandler   *report.Handler
	// Ready reports whether an LLM provider is configured.
	Ready func() bool
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.LimitBodySize(deps.Config.MaxBodyBytes),
	)

	r.GET("/healthz", func(c *gin.Context) {
		respond.OK(c, gin.H{"status": "ok"})
	})
	r.GET("/readyz", func(c *gin.Context) {
		if deps.Ready != nil && !deps.Ready() {
			respond.JSON(c, http.StatusServiceUnavailable, gin.H{"status": "degraded", "llm": "not_configured"})
			return
		}
		respond.OK(c, gin.H{"status": "ok", "provider": deps.Config.LLMProvider})
	})
	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	if deps.AnalysisHandler != nil {
		limiter := middleware.RateLimit(middleware.RateLimitConfig{
			Rules: map[string]middleware.RateLimitRule{
				analyzeRateGroup: {Rate: deps.Config.RateLimitRPS, Burst: deps.Config.RateLimitBurst},
			},
			DefaultGroup: analyzeRateGroup,
			Reject:       analysis.RejectBusy,
		})
		deps.AnalysisHandler.RegisterRoutes(api, limiter)
	}
	if deps.ReportHandler != nil {
		deps.ReportHandler.RegisterRoutes(api)
	}

	registerStatic(r, ResolvePublicDir(deps.Config.PublicDir))
	return r
}

// registerStatic serves every unmatched GET from root; "/" maps to index.html.
func registerStatic(r *gin.Engine, root string) {
	files := http.FileServer(http.Dir(root))
	r.NoRoute(func(c *gin.Context) {
		method := c.Request.Method
		if (method != http.MethodGet && method != http.MethodHead) || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			respond.Error(c, http.StatusNotFound, "not_found", "route not found", nil)
			return
		}
		files.ServeHTTP(c.Writer, c.Request)
	})
}

// ResolvePublicDir returns dir when it holds index.html, otherwise the first
// parent of the working directory that has dir/index.html. Absolute paths are
// used as given.
func ResolvePublicDir(dir string) string {
	if strings.TrimSpace(dir) == "" {
		dir = "public"
	}
	if filepath.IsAbs(dir) {
		return dir
	}
	wd, err := os.Getwd()
	if err != nil {
		return dir
	}
	candidates := []string{wd, filepath.Dir(wd), filepath.Dir(filepath.Dir(wd))}
	for _, base := range candidates {
		candidate := filepath.Join(base, dir)
		if fileExists(filepath.Join(candidate, "index.html")) {
			return candidate
		}
	}
	return dir
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":3000"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
