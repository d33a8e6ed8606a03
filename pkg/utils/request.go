package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
)

// MaxBodyBytes 限制请求体大小
const MaxBodyBytes = 1 << 20

// DecodeFields 读取 JSON 对象或表单请求体，返回字符串化的字段。
// 非字符串的 JSON 标量会被转换为文本，null 视为空字符串。空请求体返回空表。
func DecodeFields(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, MaxBodyBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(MaxBodyBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
			return nil, fmt.Errorf("parse form: %w", err)
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		return fields, nil
	}

	var raw map[string]any
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("decode json body: %w", err)
	}

	fields := make(map[string]string, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case nil:
			fields[key] = ""
		case string:
			fields[key] = v
		case json.Number:
			fields[key] = v.String()
		case bool:
			if v {
				fields[key] = "true"
			} else {
				fields[key] = "false"
			}
		default:
			encoded, _ := json.Marshal(v)
			fields[key] = strings.TrimSpace(string(encoded))
		}
	}
	return fields, nil
}
