// Package api exposes the assistant over HTTP.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"

	"github.com/voyagekit/mcp-server-travel-bridge/pkg/assistant"
)

// AssistantService is the interface the API server needs from the assistant.
type AssistantService interface {
	Connect(ctx context.Context) error
	Connected() bool
	Disconnect() error
	Tools(ctx context.Context) ([]assistant.ToolInfo, error)
	Query(ctx context.Context, query string) (*assistant.Answer, error)
}

// QueryRequest is the body of POST /query
type QueryRequest struct {
	Query string `json:"query"`
}

// QueryResponse is the result of POST /query
type QueryResponse struct {
	Response  string   `json:"response"`
	ToolsUsed []string `json:"tools_used"`
}

// ToolsResponse is the result of GET /tools
type ToolsResponse struct {
	Tools []assistant.ToolInfo `json:"tools"`
}

// Server is the assistant's REST API server.
type Server struct {
	svc AssistantService
	srv *http.Server
}

// NewServer creates an API server listening on addr.
func NewServer(svc AssistantService, addr string) *Server {
	s := &Server{svc: svc}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /query", s.handleQuery)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /connect", s.handleConnect)
	mux.HandleFunc("GET /tools", s.handleTools)
	mux.HandleFunc("POST /disconnect", s.handleDisconnect)

	s.srv = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start begins listening. Blocks until the context is cancelled.
func (s *Server) Start(ctx context.Context) error {
	go func() {
		<-ctx.Done()
		shutCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.srv.Shutdown(shutCtx)
	}()

	log.Info("API server starting", "addr", s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api server: %w", err)
	}
	return nil
}

// Handler returns the underlying http.Handler for testing.
func (s *Server) Handler() http.Handler {
	return s.srv.Handler
}

// --- Handlers ---

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var request QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	if request.Query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "query is required"})
		return
	}

	answer, err := s.svc.Query(r.Context(), request.Query)
	if err != nil {
		log.Error("Query failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	toolsUsed := answer.ToolsUsed
	if toolsUsed == nil {
		toolsUsed = []string{}
	}

	writeJSON(w, http.StatusOK, QueryResponse{
		Response:  answer.Response,
		ToolsUsed: toolsUsed,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "initializing"
	if s.svc.Connected() {
		status = "healthy"
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":    status,
		"connected": s.svc.Connected(),
	})
}

func (s *Server) handleConnect(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Connect(r.Context()); err != nil {
		log.Error("Connect failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Connected to server"})
}

func (s *Server) handleTools(w http.ResponseWriter, r *http.Request) {
	tools, err := s.svc.Tools(r.Context())
	if err != nil {
		log.Error("Listing tools failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ToolsResponse{Tools: tools})
}

func (s *Server) handleDisconnect(w http.ResponseWriter, _ *http.Request) {
	if err := s.svc.Disconnect(); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Disconnected from server"})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}
