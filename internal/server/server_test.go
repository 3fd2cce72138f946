package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"narrator/internal/api"
	"narrator/internal/config"
	"narrator/internal/cuesheet"
	"narrator/internal/history"
	"narrator/internal/logging"
	"narrator/internal/testsupport"
)

func newTestServer(t *testing.T, opts ...testsupport.ConfigOption) (*Server, *config.Config) {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories: %v", err)
	}
	logger := logging.NewNop()

	var recorder api.Recorder
	var reader api.HistoryReader
	if cfg.Convert.RecordHistory {
		store := testsupport.MustOpenHistory(t, cfg)
		recorder = store
		reader = store
	}
	srv, err := New(Options{
		Config:     cfg,
		Conversion: api.NewConversionService(recorder, logger),
		History:    api.NewHistoryService(reader),
		Logger:     logger,
		Version:    "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, cfg
}

func TestConvertPlainText(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/convert?name=episode1.txt", strings.NewReader(testsupport.SampleTranscript))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/plain; charset=utf-8" {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "episode1_manuscript.txt") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	if rec.Header().Get("X-Conversion-Id") == "" {
		t.Fatal("expected conversion id header")
	}
	if rec.Header().Get("X-Request-Id") == "" {
		t.Fatal("expected request id header")
	}
	want := "\n００５１　　ＯＮ\n\n００４７　　Ｎ　　ｒｅａｌ\n\n００５２　　ＯＮ"
	if rec.Body.String() != want {
		t.Fatalf("got %q want %q", rec.Body.String(), want)
	}
}

func TestConvertMultipartJSON(t *testing.T) {
	srv, _ := newTestServer(t)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "take2.txt")
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	part.Write([]byte("0012 - 0015\nV1, 2\nHello there.\n"))
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/convert?format=json", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp api.ConvertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Source != "take2.txt" {
		t.Fatalf("unexpected source %q", resp.Source)
	}
	if resp.Manuscript != "００１２　　Ｎ　　Ｈｅｌｌｏ ｔｈｅｒｅ．\n\n００１５　　ＯＮ" {
		t.Fatalf("unexpected manuscript %q", resp.Manuscript)
	}
	if resp.Stats.OnScreenCues != 1 || len(resp.Highlights) != 1 {
		t.Fatalf("unexpected stats/highlights: %+v %+v", resp.Stats, resp.Highlights)
	}
}

func TestConvertCuesheet(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/convert?format=xlsx&name=ep.txt", strings.NewReader(testsupport.SampleTranscript))
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if ct := rec.Header().Get("Content-Type"); ct != cuesheet.ContentType {
		t.Fatalf("unexpected content type %q", ct)
	}
	if cd := rec.Header().Get("Content-Disposition"); !strings.Contains(cd, "ep_manuscript.xlsx") {
		t.Fatalf("unexpected content disposition %q", cd)
	}
	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()
	rows, err := f.GetRows(cuesheet.SheetName)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) < 2 {
		t.Fatalf("expected header and cue rows, got %v", rows)
	}
}

func TestConvertErrors(t *testing.T) {
	srv, _ := newTestServer(t, testsupport.WithMaxUploadMiB(1))
	tests := []struct {
		name   string
		method string
		target string
		body   []byte
		want   int
	}{
		{"wrong method", http.MethodGet, "/api/convert", nil, http.StatusMethodNotAllowed},
		{"bad format", http.MethodPost, "/api/convert?format=pdf", []byte("x"), http.StatusBadRequest},
		{"multipart without file", http.MethodPost, "/api/convert", nil, http.StatusBadRequest},
		{"invalid utf-8", http.MethodPost, "/api/convert", []byte{0xC3, 0x28}, http.StatusUnprocessableEntity},
		{"too large", http.MethodPost, "/api/convert", bytes.Repeat([]byte("a"), 1<<20+1), http.StatusRequestEntityTooLarge},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, bytes.NewReader(tt.body))
			if tt.name == "multipart without file" {
				req.Header.Set("Content-Type", "multipart/form-data; boundary=xyz")
			}
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d: %s", tt.want, rec.Code, rec.Body.String())
			}
			var payload api.ErrorResponse
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil || payload.Error == "" {
				t.Fatalf("expected JSON error body, got %q", rec.Body.String())
			}
		})
	}
}

func TestConvertEmptyUpload(t *testing.T) {
	srv, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodPost, "/api/convert?format=json", http.NoBody)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp api.ConvertResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Manuscript != "" || len(resp.Highlights) != 0 {
		t.Fatalf("expected empty manuscript, got %+v", resp)
	}
}

type failingHistory struct{}

func (failingHistory) List(context.Context, int) ([]history.Entry, error) {
	return nil, errors.New("database is locked")
}

func TestHistoryEndpointLogsStoreFailure(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithoutHistory())
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	srv, err := New(Options{
		Config:     cfg,
		Conversion: api.NewConversionService(nil, logger),
		History:    api.NewHistoryService(failingHistory{}),
		Logger:     logger,
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	out := logs.String()
	for _, want := range []string{
		`"msg":"history query failed"`,
		`"event_type":"history_list_failed"`,
		`"error":"database is locked"`,
		`"request_id":`,
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected log to contain %s, got %s", want, out)
		}
	}
}

func TestHistoryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()
	for _, name := range []string{"a.txt", "b.txt"} {
		req := httptest.NewRequest(http.MethodPost, "/api/convert?name="+name, strings.NewReader(testsupport.SampleTranscript))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("convert %s: %d", name, rec.Code)
		}
	}

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=1", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp api.HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Conversions) != 1 {
		t.Fatalf("expected 1 record, got %d", len(resp.Conversions))
	}
	if resp.Conversions[0].Adapter != "http" || resp.Conversions[0].Stats.DroppedLines != 1 {
		t.Fatalf("unexpected record %+v", resp.Conversions[0])
	}

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history?limit=zero", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad limit, got %d", rec.Code)
	}
}

func TestHistoryEndpointWithoutHistory(t *testing.T) {
	srv, _ := newTestServer(t, testsupport.WithoutHistory())
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/history", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if strings.TrimSpace(rec.Body.String()) != `{"conversions":[]}` {
		t.Fatalf("unexpected body %q", rec.Body.String())
	}
}

func TestStatusEndpoint(t *testing.T) {
	srv, cfg := newTestServer(t)
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/status", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var status api.ServerStatus
	if err := json.Unmarshal(rec.Body.Bytes(), &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Version != "test" || !status.HistoryEnabled || status.HistoryPath != cfg.HistoryPath() {
		t.Fatalf("unexpected status %+v", status)
	}
	if status.MaxUploadBytes != cfg.MaxUploadBytes() {
		t.Fatalf("unexpected upload limit %d", status.MaxUploadBytes)
	}
}

func TestAuthMiddleware(t *testing.T) {
	srv, _ := newTestServer(t, testsupport.WithToken("s3cret"))
	handler := srv.Handler()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic s3cret", http.StatusUnauthorized},
		{"wrong token", "Bearer nope", http.StatusUnauthorized},
		{"valid", "Bearer s3cret", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/status", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			handler.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Fatalf("expected %d, got %d", tt.want, rec.Code)
			}
		})
	}
}

func TestStartRejectsSecondInstance(t *testing.T) {
	srv, cfg := newTestServer(t, testsupport.WithoutHistory())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := srv.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer srv.Stop()
	if srv.Addr() == "" {
		t.Fatal("expected bound address")
	}

	second, err := New(Options{
		Config:     cfg,
		Conversion: api.NewConversionService(nil, nil),
		Logger:     logging.NewNop(),
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := second.Start(ctx); !errors.Is(err, ErrAlreadyRunning) {
		t.Fatalf("expected ErrAlreadyRunning, got %v", err)
	}

	resp, err := http.Get("http://" + srv.Addr() + "/api/status")
	if err != nil {
		t.Fatalf("GET status: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
