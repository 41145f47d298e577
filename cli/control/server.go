package control

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"kosehub/domain"
)

var ErrAlreadyRunning = errors.New("already running")

// TryListen tries to bind the control address. If it's already in use, we assume an instance is running.
func TryListen(addr string) (net.Listener, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, ErrAlreadyRunning
	}
	return ln, nil
}

type Server struct {
	runner domain.Runner
}

func NewServer(runner domain.Runner) *Server { return &Server{runner: runner} }

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/set-interval":
		s.handleSetInterval(w, r)
	case r.Method == http.MethodPost && r.URL.Path == "/run":
		s.handleRun(w)
	default:
		http.NotFound(w, r)
	}
}

func (s *Server) handleSetInterval(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Duration string `json:"duration"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	d, err := time.ParseDuration(req.Duration)
	if err != nil {
		http.Error(w, fmt.Sprintf("invalid duration: %v", err), http.StatusBadRequest)
		return
	}

	old := s.runner.CurrentInterval()
	s.runner.SetInterval(d)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true, "old": old.String(), "new": d.String()})
}

func (s *Server) handleRun(w http.ResponseWriter) {
	s.runner.TriggerRun()
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"ok": true})
}
