package gate

import (
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mohitvuyala/portfolio/backend/internal/middleware"
	gateService "github.com/mohitvuyala/portfolio/backend/internal/service/gate"
	"github.com/mohitvuyala/portfolio/backend/pkg/utils"
)

// Handler 谜题门禁的HTTP处理器
type Handler struct {
	gateSvc     *gateService.Service
	debugAnswer bool
}

// New 创建门禁处理器。debugAnswer 打开 /_debug_answer 调试接口。
func New(gateSvc *gateService.Service, debugAnswer bool) *Handler {
	return &Handler{
		gateSvc:     gateSvc,
		debugAnswer: debugAnswer,
	}
}

// RegisterRoutes 注册门禁相关的路由，调用方需先挂载会话中间件
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/riddle", h.handleRiddle)
	r.Get("/riddle/status", h.handleStatus)
	r.Post("/solve", h.handleSolve)
	r.Get("/_debug_answer", h.handleDebugAnswer)
}

type riddleResponse struct {
	Question string `json:"question"`
}

type solveResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

type statusResponse struct {
	Unlocked bool `json:"unlocked"`
}

// handleRiddle 下发新谜题，覆盖旧的挑战
func (h *Handler) handleRiddle(w http.ResponseWriter, r *http.Request) {
	question, err := h.gateSvc.IssueChallenge(r.Context(), middleware.SessionID(r.Context()))
	if err != nil {
		log.Printf("[gate] issue challenge failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "riddle-unavailable")
		return
	}

	utils.RespondJSON(w, http.StatusOK, riddleResponse{Question: question})
}

// handleSolve 校验答案
func (h *Handler) handleSolve(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.DecodeFields(w, r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid-body")
		return
	}

	ok, err := h.gateSvc.SubmitAnswer(r.Context(), middleware.SessionID(r.Context()), fields["answer"])
	if errors.Is(err, gateService.ErrNoChallenge) {
		utils.RespondJSON(w, http.StatusOK, solveResponse{OK: false, Error: "no-riddle"})
		return
	}
	if err != nil {
		log.Printf("[gate] submit answer failed: %v", err)
		utils.RespondError(w, http.StatusInternalServerError, "gate-error")
		return
	}

	utils.RespondJSON(w, http.StatusOK, solveResponse{OK: ok})
}

// handleStatus 返回当前会话是否已解锁
func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	unlocked := h.gateSvc.Unlocked(r.Context(), middleware.SessionID(r.Context()))
	utils.RespondJSON(w, http.StatusOK, statusResponse{Unlocked: unlocked})
}

// handleDebugAnswer 本地排障用，需要 DEBUG_SHOW_ANSWER 打开
func (h *Handler) handleDebugAnswer(w http.ResponseWriter, r *http.Request) {
	if !h.debugAnswer {
		utils.RespondError(w, http.StatusForbidden, "disabled")
		return
	}

	answer, _ := h.gateSvc.PeekAnswer(r.Context(), middleware.SessionID(r.Context()))
	utils.RespondJSON(w, http.StatusOK, map[string]any{
		"ok":     true,
		"answer": answer,
	})
}
