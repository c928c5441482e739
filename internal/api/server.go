package api

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/david/foundation-fit/internal/analyze"
	"github.com/david/foundation-fit/internal/cache"
	"github.com/david/foundation-fit/internal/config"
	"github.com/david/foundation-fit/internal/models"
	"github.com/david/foundation-fit/internal/propublica"
)

// Searcher is the registry surface the search and organization
// endpoints need. *propublica.Client satisfies it.
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*propublica.SearchResponse, error)
	Organization(ctx context.Context, ein string) (*propublica.OrgResponse, error)
}

// Analyzer runs one full foundation analysis.
type Analyzer interface {
	Analyze(ctx context.Context, ein string, opts analyze.Options) (*models.AnalysisResult, error)
}

type Server struct {
	Echo     *echo.Echo
	Registry Searcher
	Service  Analyzer
	Store    *cache.TTLCache
	Cfg      *config.Config
}

var (
	adminSecretOnce    sync.Once
	adminSecretRuntime string
	adminSecretErr     error
)

func NewServer(registry Searcher, service Analyzer, store *cache.TTLCache, cfg *config.Config) *Server {
	e := echo.New()
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// CORS: allow frontend origins from env or default to localhost
	allowedOrigins := []string{"http://localhost:3000"}
	if extra := os.Getenv("CORS_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			o = strings.TrimSpace(o)
			if o != "" {
				allowedOrigins = append(allowedOrigins, o)
			}
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization, "X-Admin-Secret"},
	}))

	s := &Server{
		Echo:     e,
		Registry: registry,
		Service:  service,
		Store:    store,
		Cfg:      cfg,
	}

	s.routes()
	return s
}

func (s *Server) routes() {
	s.Echo.GET("/health", s.handleHealth)

	api := s.Echo.Group("/api/v1")
	api.GET("/search", s.handleSearch)
	api.GET("/organizations/:ein", s.handleGetOrganization)
	api.GET("/analyze/:ein", s.handleAnalyze)

	admin := api.Group("/admin")
	admin.Use(s.adminMiddleware)
	admin.POST("/cache/purge", s.handlePurgeCache)
}

// Start runs the server on the given port, blocking until shutdown.
func (s *Server) Start(port string) error {
	return s.Echo.Start(":" + port)
}

func (s *Server) handleHealth(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (s *Server) handleSearch(c echo.Context) error {
	query := strings.TrimSpace(c.QueryParam("q"))
	if query == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing query parameter"})
	}

	page := 0
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}

	result, err := s.Registry.Search(c.Request().Context(), query, page)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Search failed"})
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleGetOrganization(c echo.Context) error {
	ein := c.Param("ein")

	result, err := s.Registry.Organization(c.Request().Context(), ein)
	if err != nil {
		if errors.Is(err, propublica.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Organization not found"})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to fetch organization"})
	}
	return c.JSON(http.StatusOK, result)
}

func (s *Server) handleAnalyze(c echo.Context) error {
	ein := c.Param("ein")
	opts := s.analyzeOptions(c)

	result, err := s.Service.Analyze(c.Request().Context(), ein, opts)
	if err != nil {
		if errors.Is(err, propublica.ErrNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Organization not found"})
		}
		if errors.Is(err, propublica.ErrNoFilings) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "No filings found for this organization"})
		}
		log.Printf("[api] analyze %s: %v", ein, err)
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to analyze organization"})
	}

	// Filing analyses are stable for a day; let clients cache them.
	c.Response().Header().Set("Cache-Control", "public, max-age=86400")
	return c.JSON(http.StatusOK, result)
}

// analyzeOptions builds analysis options from query parameters.
// Anything invalid or absent falls back to the configured defaults.
func (s *Server) analyzeOptions(c echo.Context) analyze.Options {
	prefs := s.Cfg.Preferences.DefaultPreferences()

	if v, err := strconv.ParseInt(c.QueryParam("grant_size_min"), 10, 64); err == nil && v > 0 {
		prefs.GrantSizeMin = v
	}
	if v, err := strconv.ParseInt(c.QueryParam("grant_size_max"), 10, 64); err == nil && v > prefs.GrantSizeMin {
		prefs.GrantSizeMax = v
	}
	if v := c.QueryParam("cause_areas"); v != "" {
		var areas []models.CauseArea
		for _, part := range splitCSV(v) {
			if models.IsValidCauseArea(part) {
				areas = append(areas, models.CauseArea(part))
			}
		}
		if len(areas) > 0 {
			prefs.CauseAreas = areas
		}
	}
	switch models.RecipientType(c.QueryParam("recipient_type")) {
	case models.RecipientNonprofit:
		prefs.RecipientType = models.RecipientNonprofit
	case models.RecipientUniversity:
		prefs.RecipientType = models.RecipientUniversity
	case models.RecipientGovernment:
		prefs.RecipientType = models.RecipientGovernment
	case models.RecipientAny:
		prefs.RecipientType = models.RecipientAny
	}

	withNews := s.Cfg.News.Enabled
	if v := c.QueryParam("news"); v != "" {
		withNews = withNews && v != "false"
	}

	return analyze.Options{Preferences: prefs, WithNews: withNews}
}

// splitCSV splits a comma-separated query parameter into trimmed non-empty strings.
func splitCSV(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}

func (s *Server) handlePurgeCache(c echo.Context) error {
	n := s.Store.Purge()
	log.Printf("[api] cache purged, %d entries dropped", n)
	return c.JSON(http.StatusOK, map[string]int{"purged": n})
}

func (s *Server) adminMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret, err := adminSecret()
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Server admin configuration error"})
		}

		// Check X-Admin-Secret header or Bearer token
		authHeader := c.Request().Header.Get("Authorization")
		adminHeader := c.Request().Header.Get("X-Admin-Secret")

		if adminHeader == secret {
			return next(c)
		}
		if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
			if authHeader[7:] == secret {
				return next(c)
			}
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized admin access"})
	}
}

func adminSecret() (string, error) {
	adminSecretOnce.Do(func() {
		secret := strings.TrimSpace(os.Getenv("ADMIN_SECRET"))
		if secret != "" {
			adminSecretRuntime = secret
			return
		}

		buf := make([]byte, 48)
		if _, err := rand.Read(buf); err != nil {
			adminSecretErr = fmt.Errorf("failed to generate ADMIN_SECRET fallback: %w", err)
			return
		}

		adminSecretRuntime = base64.RawURLEncoding.EncodeToString(buf)
		log.Print("ADMIN_SECRET is not set; using ephemeral in-memory fallback secret")
	})

	if adminSecretErr != nil {
		return "", adminSecretErr
	}
	if adminSecretRuntime == "" {
		return "", fmt.Errorf("admin secret unavailable")
	}

	return adminSecretRuntime, nil
}
