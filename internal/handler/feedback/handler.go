package feedback

import (
	"errors"
	"io"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	feedbackModel "github.com/mohitvuyala/portfolio/backend/internal/model/feedback"
	feedbackService "github.com/mohitvuyala/portfolio/backend/internal/service/feedback"
	"github.com/mohitvuyala/portfolio/backend/pkg/utils"
)

// Handler 反馈服务的HTTP处理器
type Handler struct {
	feedbackSvc *feedbackService.Service
}

// New 创建反馈处理器
func New(feedbackSvc *feedbackService.Service) *Handler {
	return &Handler{feedbackSvc: feedbackSvc}
}

// RegisterRoutes 注册访客提交反馈的路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/feedback", h.handleSubmit)
}

// RegisterOperatorRoutes 注册列表与导出路由
func (h *Handler) RegisterOperatorRoutes(r chi.Router) {
	r.Get("/feedbacks", h.handleList)
	r.Get("/feedbacks.csv", h.handleExport)
}

type submitResponse struct {
	OK bool  `json:"ok"`
	ID int64 `json:"id"`
}

type listResponse struct {
	OK bool `json:"ok"`
	feedbackModel.Page
}

// handleSubmit 保存一条反馈
func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	fields, err := utils.DecodeFields(w, r)
	if err != nil {
		utils.RespondError(w, http.StatusBadRequest, "invalid-body")
		return
	}

	record, err := h.feedbackSvc.Submit(r.Context(), fields["name"], fields["email"], fields["message"])
	if err != nil {
		h.respondServiceError(w, err)
		return
	}

	utils.RespondJSON(w, http.StatusOK, submitResponse{OK: true, ID: record.ID})
}

// handleList 分页列出反馈
func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, err := h.feedbackSvc.List(r.Context(),
		queryInt(q, "page", 1),
		queryInt(q, "pageSize", feedbackService.DefaultPageSize),
	)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	if page.Records == nil {
		page.Records = []feedbackModel.Record{}
	}

	utils.RespondJSON(w, http.StatusOK, listResponse{OK: true, Page: page})
}

// handleExport 以CSV流式导出反馈
func (h *Handler) handleExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := feedbackService.ExportOptions{
		All:      queryBool(q, "all"),
		Page:     queryInt(q, "page", 1),
		PageSize: queryInt(q, "pageSize", feedbackService.DefaultExportPageSize),
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="feedbacks.csv"`)

	out := &trackingWriter{w: w}
	if err := h.feedbackSvc.ExportCSV(r.Context(), out, opts); err != nil {
		if !out.wrote {
			w.Header().Del("Content-Disposition")
			h.respondServiceError(w, err)
			return
		}
		// Headers are already sent; the client sees a truncated file.
		log.Printf("[feedback] csv export aborted: %v", err)
	}
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	var validationErr *feedbackService.ValidationError
	if errors.As(err, &validationErr) {
		utils.RespondError(w, http.StatusBadRequest, validationErr.Code)
		return
	}

	log.Printf("[feedback] request failed: %v", err)
	utils.RespondError(w, http.StatusInternalServerError, "db-error")
}

type trackingWriter struct {
	w     io.Writer
	wrote bool
}

func (t *trackingWriter) Write(p []byte) (int, error) {
	if len(p) > 0 {
		t.wrote = true
	}
	return t.w.Write(p)
}

// queryInt 解析整数参数，缺失或非法时返回默认值
func queryInt(q url.Values, key string, fallback int) int {
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func queryBool(q url.Values, key string) bool {
	switch strings.ToLower(strings.TrimSpace(q.Get(key))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
