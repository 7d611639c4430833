package server

import (
	"encoding/json"
	"fmt"
	"html"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/memoweave/memoweave/internal/model"
	"github.com/memoweave/memoweave/internal/pipeline"
)

const keepAliveInterval = 15 * time.Second

// handleAnalyzeStream runs one analysis and relays its events as
// server-sent events. Progress arrives as plain data lines; the stream
// ends with exactly one "result" or "error" event.
func (s *Server) handleAnalyzeStream(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("filename")
	if name == "" {
		s.writeError(w, http.StatusBadRequest, fmt.Errorf("missing filename parameter"))
		return
	}
	ruleParam := r.URL.Query().Get("rule")
	if ruleParam == "" {
		ruleParam = string(model.RuleTemporal)
	}
	rule, err := model.ParseRule(ruleParam)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err)
		return
	}

	text, err := s.files.Read(name)
	if err != nil {
		s.writeError(w, fileStatus(err), err)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		s.writeError(w, http.StatusInternalServerError, fmt.Errorf("streaming unsupported"))
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	req := pipeline.NewRequest(name, text, rule)
	req.ForceRebuild = r.URL.Query().Get("force_rebuild") == "true"
	s.logger.Info("analysis started",
		zap.String("request_id", req.ID),
		zap.String("filename", name),
		zap.String("rule", string(rule)),
	)

	events := s.analyzer.Analyze(r.Context(), req)
	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-keepAlive.C:
			fmt.Fprint(w, ": keep-alive\n\n")
			flusher.Flush()
		case event, ok := <-events:
			if !ok {
				return
			}
			s.writeEvent(w, req.ID, event)
			flusher.Flush()
		}
	}
}

func (s *Server) writeEvent(w http.ResponseWriter, requestID string, event pipeline.Event) {
	switch event.Type {
	case pipeline.EventProgress:
		fmt.Fprintf(w, "data: %s\n\n", event.Message)
	case pipeline.EventResult:
		payload := marshalNoEscape(map[string]string{"feedback": htmlFeedback(event.Feedback)})
		fmt.Fprintf(w, "event: result\ndata: %s\n\n", payload)
		s.logger.Info("analysis finished", zap.String("request_id", requestID))
	case pipeline.EventError:
		payload := marshalNoEscape(map[string]string{"error": event.Err.Error()})
		fmt.Fprintf(w, "event: error\ndata: %s\n\n", payload)
		s.logger.Warn("analysis failed",
			zap.String("request_id", requestID),
			zap.String("stage", string(event.Stage)),
			zap.Error(event.Err),
		)
	}
}

// marshalNoEscape encodes v as JSON without HTML-escaping <, >, and &,
// so rendered markup reaches the browser verbatim.
func marshalNoEscape(v any) []byte {
	var buf strings.Builder
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	return []byte(strings.TrimRight(buf.String(), "\n"))
}

// htmlFeedback renders reasoning feedback for the browser: markdown
// bold becomes <b> and newlines become <br>. The text is escaped
// first, so model output cannot inject markup.
func htmlFeedback(feedback string) string {
	escaped := html.EscapeString(feedback)

	var b strings.Builder
	parts := strings.Split(escaped, "**")
	for i, part := range parts {
		switch {
		case i%2 == 1 && i < len(parts)-1:
			b.WriteString("<b>")
			b.WriteString(part)
			b.WriteString("</b>")
		case i%2 == 1:
			// Unbalanced marker, keep it literal.
			b.WriteString("**")
			b.WriteString(part)
		default:
			b.WriteString(part)
		}
	}
	return strings.ReplaceAll(b.String(), "\n", "<br>")
}
