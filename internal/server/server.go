// Package server exposes an exported schema model over a read-only HTTP API.
package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"xsd-binder/internal/diagnostic"
	"xsd-binder/internal/export"
	"xsd-binder/internal/qname"
)

// Server serves one exported model.
type Server struct {
	router chi.Router
	model  *export.Model
	log    *slog.Logger
}

// NewServer creates the HTTP handler for model.
func NewServer(model *export.Model, log *slog.Logger) *Server {
	s := &Server{
		model: model,
		log:   log,
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	r.Route("/api", func(r chi.Router) {
		r.Get("/namespaces", s.handleListNamespaces)
		r.Get("/namespaces/{nsID}", s.handleNamespace)
		r.Get("/namespaces/{nsID}/types/{typeName}", s.handleType)
		r.Get("/diagnostics", s.handleDiagnostics)
	})

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

// namespaceSummary is one entry of the namespace listing.
type namespaceSummary struct {
	ID              int    `json:"id"`
	URI             string `json:"uri"`
	URL             string `json:"url,omitempty"`
	Prefix          string `json:"prefix,omitempty"`
	Elements        int    `json:"elements"`
	Types           int    `json:"types"`
	Attributes      int    `json:"attributes"`
	Groups          int    `json:"groups"`
	AttributeGroups int    `json:"attribute_groups"`
}

func (s *Server) handleListNamespaces(w http.ResponseWriter, r *http.Request) {
	out := make([]namespaceSummary, 0, len(s.model.Namespaces))
	for _, ns := range s.model.Namespaces {
		out = append(out, namespaceSummary{
			ID:              ns.ID,
			URI:             ns.URI,
			URL:             ns.URL,
			Prefix:          ns.Prefix,
			Elements:        len(ns.Elements),
			Types:           len(ns.Types),
			Attributes:      len(ns.Attributes),
			Groups:          len(ns.Groups),
			AttributeGroups: len(ns.AttributeGroups),
		})
	}

	writeJSON(w, http.StatusOK, map[string]any{"namespaces": out})
}

func (s *Server) handleNamespace(w http.ResponseWriter, r *http.Request) {
	ns, ok := s.namespace(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, ns)
}

// handleType looks a type up by local name within the namespace.
func (s *Server) handleType(w http.ResponseWriter, r *http.Request) {
	ns, ok := s.namespace(w, r)
	if !ok {
		return
	}

	name := qname.New(ns.URI, chi.URLParam(r, "typeName"))

	typ, ok := ns.FindType(name.Full())
	if !ok {
		jsonError(w, "type "+name.Full()+" not found", http.StatusNotFound)
		return
	}

	writeJSON(w, http.StatusOK, typ)
}

// handleDiagnostics lists diagnostics, optionally filtered by
// ?severity= and ?code=.
func (s *Server) handleDiagnostics(w http.ResponseWriter, r *http.Request) {
	var severity *diagnostic.DiagnosticSeverity

	if raw := r.URL.Query().Get("severity"); raw != "" {
		var sev diagnostic.DiagnosticSeverity
		if err := sev.UnmarshalText([]byte(raw)); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}

		severity = &sev
	}

	code := r.URL.Query().Get("code")

	out := make([]diagnostic.Diagnostic, 0, len(s.model.Diagnostics))
	for _, d := range s.model.Diagnostics {
		if severity != nil && d.Severity != *severity {
			continue
		}

		if code != "" && d.Code != code {
			continue
		}

		out = append(out, d)
	}

	writeJSON(w, http.StatusOK, map[string]any{"diagnostics": out})
}

func (s *Server) namespace(w http.ResponseWriter, r *http.Request) (*export.Namespace, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "nsID"))
	if err != nil {
		jsonError(w, "namespace id must be an integer", http.StatusBadRequest)
		return nil, false
	}

	ns, ok := s.model.Namespace(id)
	if !ok {
		jsonError(w, "namespace not found", http.StatusNotFound)
		return nil, false
	}

	return ns, true
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	writeJSON(w, code, map[string]string{"error": msg})
}
