package utils

import (
	"encoding/json"
	"log"
	"net/http"
)

// RespondJSON 发送JSON响应
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

// ErrorResponse 是所有失败响应的统一结构
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// RespondError 发送错误响应
func RespondError(w http.ResponseWriter, status int, code string) {
	RespondJSON(w, status, ErrorResponse{OK: false, Error: code})
}
