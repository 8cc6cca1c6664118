package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// AnswerFunc produces the HTTP status and raw JSON body for a question.
type AnswerFunc func(question string) (status int, body string)

// AnswerServer is an in-memory answering service speaking the
// question/answer JSON protocol.
type AnswerServer struct {
	URL string

	mu        sync.Mutex
	questions []string
	headers   []http.Header
}

// StartAnswerServer launches an answering service backed by fn. The server
// is closed when the test finishes.
func StartAnswerServer(t testing.TB, fn AnswerFunc) *AnswerServer {
	t.Helper()
	srv := &AnswerServer{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Question string `json:"question"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid request", http.StatusBadRequest)
			return
		}
		srv.record(req.Question, r.Header.Clone())
		status, body := fn(req.Question)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	srv.URL = server.URL
	return srv
}

func (s *AnswerServer) record(question string, header http.Header) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.questions = append(s.questions, question)
	s.headers = append(s.headers, header)
}

// Questions returns the questions received so far, in arrival order.
func (s *AnswerServer) Questions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.questions...)
}

// Header returns the request headers of the i-th received question.
func (s *AnswerServer) Header(i int) http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.headers) {
		return nil
	}
	return s.headers[i]
}
