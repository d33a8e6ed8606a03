package utils

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeFieldsJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(`{"answer": 4, "name": null, "ok": true, "message": "hi"}`))
	req.Header.Set("Content-Type", "application/json")

	fields, err := DecodeFields(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("DecodeFields err: %v", err)
	}
	if fields["answer"] != "4" || fields["name"] != "" || fields["ok"] != "true" || fields["message"] != "hi" {
		t.Fatalf("unexpected fields: %v", fields)
	}
}

func TestDecodeFieldsForm(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader("answer=+cba+&extra=1"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	fields, err := DecodeFields(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("DecodeFields err: %v", err)
	}
	if fields["answer"] != " cba " {
		t.Fatalf("answer = %q", fields["answer"])
	}
}

func TestDecodeFieldsEmptyAndInvalid(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/solve", nil)
	fields, err := DecodeFields(httptest.NewRecorder(), req)
	if err != nil || len(fields) != 0 {
		t.Fatalf("expected empty fields, got %v (%v)", fields, err)
	}

	bad := httptest.NewRequest(http.MethodPost, "/solve", strings.NewReader(`{"answer":`))
	bad.Header.Set("Content-Type", "application/json")
	if _, err := DecodeFields(httptest.NewRecorder(), bad); err == nil {
		t.Fatal("expected error for truncated json")
	}
}
