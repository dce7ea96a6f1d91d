package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/sproutly/sprout-backend/internal/ai"
	"github.com/sproutly/sprout-backend/internal/config"
	"github.com/sproutly/sprout-backend/internal/handler"
	"github.com/sproutly/sprout-backend/internal/impact"
	appmw "github.com/sproutly/sprout-backend/internal/middleware"
	"github.com/sproutly/sprout-backend/internal/repository"
	"github.com/sproutly/sprout-backend/internal/service"
	"gorm.io/gorm"
)

type Server struct {
	e              *echo.Echo
	userRepo       repository.UserRepository
	habitRepo      repository.HabitRepository
	completionRepo repository.CompletionRepository
	sha            string
	build          string
}

func New(db *gorm.DB, cfg *config.Config, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc: func(origin string) (bool, error) {
			low := strings.ToLower(origin)
			if strings.HasPrefix(low, "http://localhost:") || strings.HasPrefix(low, "http://127.0.0.1:") ||
				strings.HasPrefix(low, "https://localhost:") || strings.HasPrefix(low, "https://127.0.0.1:") {
				return true, nil
			}
			u, err := url.Parse(origin)
			if err != nil {
				return false, nil
			}
			if u.Scheme != "http" && u.Scheme != "https" {
				return false, nil
			}
			host := u.Hostname()
			if strings.HasSuffix(host, "vercel.app") {
				return true, nil
			}
			return false, nil
		},
	}))

	userRepo := repository.NewUserRepository(db)
	habitRepo := repository.NewHabitRepository(db)
	completionRepo := repository.NewCompletionRepository(db)

	llm := ai.NewGeminiClient(cfg.GeminiChatModel)
	engine := ai.NewEngine(llm)
	celebrator := ai.NewCelebrator(llm)
	partner := impact.NewRouter(cfg)

	habitSvc := service.NewHabitService(habitRepo, completionRepo, userRepo, partner, celebrator)
	insightSvc := service.NewInsightService(userRepo, habitRepo, completionRepo)
	onboardingSvc := service.NewOnboardingService(engine, userRepo, habitRepo)

	habitHandler := handler.NewHabitHandler(habitSvc)
	insightHandler := handler.NewInsightHandler(insightSvc)
	onboardingHandler := handler.NewOnboardingHandler(onboardingSvc)
	userHandler := handler.NewUserHandler(userRepo)

	authMw, err := appmw.NewAuthMiddleware(context.Background(), userRepo)
	if err != nil {
		e.Logger.Fatalf("failed to init firebase auth: %v", err)
	}

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	api := e.Group("/api", authMw.RequireAuth)
	api.GET("/auth/user", userHandler.Me)
	api.GET("/dashboard", insightHandler.Dashboard)
	api.GET("/analytics", insightHandler.Analytics)
	api.GET("/recent-impact", insightHandler.RecentImpact)
	api.GET("/impact-timeline", insightHandler.ImpactTimeline)

	api.GET("/habits", habitHandler.List)
	api.POST("/habits", habitHandler.Create)
	api.PATCH("/habits/:id", habitHandler.Update)
	api.DELETE("/habits/:id", habitHandler.Delete)
	api.POST("/habits/:id/toggle", habitHandler.Toggle)
	api.GET("/habits/:id/celebration", habitHandler.Celebration)
	api.POST("/completions/:id/feedback", habitHandler.Feedback)

	api.POST("/onboarding/message", onboardingHandler.Message)
	api.POST("/onboarding/complete", onboardingHandler.Complete)

	return &Server{
		e:              e,
		userRepo:       userRepo,
		habitRepo:      habitRepo,
		completionRepo: completionRepo,
		sha:            sha,
		build:          buildTime,
	}
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	if s.userRepo != nil {
		s.userRepo.SetDB(db)
	}
	if s.habitRepo != nil {
		s.habitRepo.SetDB(db)
	}
	if s.completionRepo != nil {
		s.completionRepo.SetDB(db)
	}
}
