package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/mohitvuyala/portfolio/backend/internal/config"
	"github.com/mohitvuyala/portfolio/backend/internal/handler/feedback"
	"github.com/mohitvuyala/portfolio/backend/internal/handler/gate"
	"github.com/mohitvuyala/portfolio/backend/internal/handler/site"
	middlewarePkg "github.com/mohitvuyala/portfolio/backend/internal/middleware"
	feedbackService "github.com/mohitvuyala/portfolio/backend/internal/service/feedback"
	gateService "github.com/mohitvuyala/portfolio/backend/internal/service/gate"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(cfg *config.Config, gateSvc *gateService.Service, feedbackSvc *feedbackService.Service, hub *feedbackService.Hub) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS(cfg.Server.AllowedOrigins...))

	sessions := middlewarePkg.NewSessionManager(cfg.Session.Secret, cfg.Session.TTL, cfg.Session.SecureCookie)

	site.New(cfg.Links.Map()).RegisterRoutes(r)

	// Riddle gate routes need a session
	r.Group(func(gr chi.Router) {
		gr.Use(sessions.Middleware)
		gate.New(gateSvc, cfg.Session.DebugShowAnswer).RegisterRoutes(gr)
	})

	feedbackHandler := feedback.New(feedbackSvc)
	r.Route("/api", func(api chi.Router) {
		feedbackHandler.RegisterRoutes(api)

		api.Group(func(op chi.Router) {
			op.Use(middlewarePkg.RequireOperator(cfg.Operator.TokenHash))
			feedbackHandler.RegisterOperatorRoutes(op)
			if hub != nil {
				feedback.NewLiveHandler(hub).RegisterRoutes(op)
			}
		})
	})

	return r
}
