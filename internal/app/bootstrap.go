package app

import (
	"context"
	"fmt"
	"strings"

	"role-match/internal/config"
	"role-match/internal/delivery/http/handler"
	"role-match/internal/delivery/http/middleware"
	"role-match/internal/delivery/http/routes"
	"role-match/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

// Bootstrap builds the container and the HTTP app. The returned cleanup stops
// the websocket hub and releases storage.
func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg, nil)
	if err != nil {
		return nil, nil, err
	}

	hubCtx, stopHub := context.WithCancel(context.Background())
	go c.Hub.Run(hubCtx)

	app := New(c)
	cleanup := func() error {
		stopHub()
		return c.Close()
	}
	return app, cleanup, nil
}

func registerGlobalMiddleware(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	errMw := middleware.NewErrorMiddleware(c.Logger)
	app.Use(errMw.Middleware())

	accessMw := middleware.NewAccessLogMiddleware(c.Logger, "/health")
	app.Use(accessMw.Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	h := routes.Handlers{
		Health:         handler.NewHealthHandler(c.DB, c.Cache),
		Recommendation: handler.NewRecommendationHandler(c.Recommendations, c.Config.Data.TopK),
		LearningPath:   handler.NewLearningPathHandler(c.LearningPaths),
		Pipeline:       handler.NewPipelineHandler(c.Pipeline),
		WS:             ws.NewHandler(c.Hub, c.Logger),
	}
	if c.JWT != nil {
		h.OperatorGuard = middleware.NewAuthMiddleware(c.JWT).Middleware()
	} else {
		h.OperatorGuard = middleware.NewAuthMiddleware(nil).Middleware()
	}

	routes.NewRegistry(h).Register(app)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
