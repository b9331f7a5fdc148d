package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/melvinzhang/ailisp/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestHandleEvalArithmetic(t *testing.T) {
	s := New(config.New(nil), nil)
	router := s.Router()

	body, _ := json.Marshal(evalRequest{Source: "+ 2 3\n"})
	req := httptest.NewRequest(http.MethodPost, "/eval", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp evalResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.Contains(resp.Trace, "5") {
		t.Fatalf("trace missing evaluated value: %q", resp.Trace)
	}
}

func TestHandleEvalRejectsMissingSource(t *testing.T) {
	s := New(config.New(nil), nil)
	router := s.Router()

	req := httptest.NewRequest(http.MethodPost, "/eval", bytes.NewReader([]byte("{}")))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestHandleRunUTM(t *testing.T) {
	s := New(config.New(nil), nil)
	router := s.Router()

	body, _ := json.Marshal(runUTMRequest{Expr: "+ 2 3"})
	req := httptest.NewRequest(http.MethodPost, "/run-utm", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var resp runUTMResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Result != "5" {
		t.Fatalf("run-utm result = %q, want 5", resp.Result)
	}
}
