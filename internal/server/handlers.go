package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"narrator/internal/api"
	"narrator/internal/cuesheet"
	"narrator/internal/history"
	"narrator/internal/logging"
	"narrator/internal/manuscript"
	"narrator/internal/textutil"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatXLSX = "xlsx"
)

func (s *Server) handleConvert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	format := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("format")))
	if format == "" {
		format = formatText
	}
	if format != formatText && format != formatJSON && format != formatXLSX {
		s.writeError(w, http.StatusBadRequest, "format must be text, json, or xlsx")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes())
	raw, source, err := readUpload(r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			s.writeError(w, http.StatusRequestEntityTooLarge, "transcript exceeds server.max_upload_mib")
		default:
			s.writeError(w, http.StatusBadRequest, err.Error())
		}
		return
	}

	conv, err := s.conversion.Convert(r.Context(), api.ConvertRequest{
		Adapter: history.AdapterHTTP,
		Source:  source,
		Raw:     raw,
	})
	if err != nil {
		if errors.Is(err, manuscript.ErrInvalidEncoding) {
			s.writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		s.internalError(w, r, "conversion failed", "convert_failed", err)
		return
	}
	s.served.Add(1)
	s.conversion.Record(r.Context(), conv, "")

	w.Header().Set("X-Conversion-Id", conv.ID)
	switch format {
	case formatJSON:
		s.writeJSON(w, http.StatusOK, api.NewConvertResponse(conv))
	case formatXLSX:
		var buf bytes.Buffer
		opts := cuesheet.Options{
			FontFamily:     s.cfg.Cuesheet.FontFamily,
			FontSize:       s.cfg.Cuesheet.FontSize,
			HighlightColor: s.cfg.Cuesheet.HighlightColor,
		}
		if err := cuesheet.Write(&buf, manuscript.ParseCues(conv.Result.Text), opts); err != nil {
			s.internalError(w, r, "cue sheet export failed", "cuesheet_write_failed", err,
				logging.String(logging.FieldErrorHint, "check the [cuesheet] settings"))
			return
		}
		name := strings.TrimSuffix(manuscript.OutputName(conv.Source, s.cfg.Convert.OutputSuffix), ".txt") + ".xlsx"
		w.Header().Set("Content-Type", cuesheet.ContentType)
		w.Header().Set("Content-Disposition", attachment(name))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	default:
		name := manuscript.OutputName(conv.Source, s.cfg.Convert.OutputSuffix)
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Header().Set("Content-Disposition", attachment(name))
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, conv.Result.Text)
	}
}

// readUpload returns the transcript bytes and their display name from either
// a multipart "file" field or the raw body.
func readUpload(r *http.Request) ([]byte, string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "multipart/form-data" {
		file, header, err := r.FormFile("file")
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				return nil, "", err
			}
			return nil, "", errors.New("multipart upload must include a \"file\" field")
		}
		defer file.Close()
		raw, err := io.ReadAll(file)
		if err != nil {
			return nil, "", err
		}
		return raw, filepath.Base(filepath.ToSlash(header.Filename)), nil
	}

	raw, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	return raw, strings.TrimSpace(r.URL.Query().Get("name")), nil
}

func attachment(name string) string {
	name = textutil.SanitizeFileName(name)
	if name == "" {
		name = "manuscript.txt"
	}
	return mime.FormatMediaType("attachment", map[string]string{"filename": name})
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	limit := history.DefaultListLimit
	if value := strings.TrimSpace(r.URL.Query().Get("limit")); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil || parsed <= 0 {
			s.writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	records, err := s.history.List(r.Context(), limit)
	if err != nil {
		s.internalError(w, r, "history query failed", "history_list_failed", err,
			logging.String(logging.FieldErrorHint, "check that paths.state_dir/history.db is readable"))
		return
	}
	s.writeJSON(w, http.StatusOK, api.HistoryResponse{Conversions: records})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	status := api.ServerStatus{
		Version:           s.version,
		StartedAt:         s.startedAt.UTC().Format(time.RFC3339Nano),
		UptimeSeconds:     int64(time.Since(s.startedAt).Seconds()),
		ConversionsServed: s.served.Load(),
		HistoryEnabled:    s.conversion.HistoryEnabled(),
		LockFilePath:      s.cfg.LockPath(),
		MaxUploadBytes:    s.cfg.MaxUploadBytes(),
	}
	if status.HistoryEnabled {
		status.HistoryPath = s.cfg.HistoryPath()
	}
	s.writeJSON(w, http.StatusOK, status)
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("failed to encode response", logging.Error(err))
	}
}

// internalError logs err with the request's context fields and replies 500.
func (s *Server) internalError(w http.ResponseWriter, r *http.Request, msg, eventType string, err error, attrs ...logging.Attr) {
	attrs = append(attrs, logging.Error(err), logging.String("path", r.URL.Path))
	logging.ErrorWithContext(logging.WithContext(r.Context(), s.logger), msg, eventType, attrs...)
	s.writeError(w, http.StatusInternalServerError, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, api.ErrorResponse{Error: message})
}
