package site

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohitvuyala/portfolio/backend/pkg/utils"
)

// Handler 提供前端所需的静态配置
type Handler struct {
	links map[string]string
}

// New 创建站点处理器
func New(links map[string]string) *Handler {
	copied := make(map[string]string, len(links))
	for key, value := range links {
		copied[key] = value
	}
	return &Handler{links: copied}
}

// RegisterRoutes 注册站点相关的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/config", h.handleConfig)
	r.Get("/healthz", h.handleHealth)
}

func (h *Handler) handleConfig(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]any{"links": h.links})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	utils.RespondJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
