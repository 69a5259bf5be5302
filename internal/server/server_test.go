package server

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"xsd-binder/internal/diagnostic"
	"xsd-binder/internal/export"
)

func testModel() *export.Model {
	var diags diagnostic.Diagnostics
	diags.AddError(diagnostic.CodeUnresolvedType, "type {urn:pets}Cat not found", "{urn:pets}Cat", "element cat", "file:///pets.xsd")
	diags.AddWarning(diagnostic.CodeGrammar, "unexpected element", "", "schema", "file:///pets.xsd")

	return &export.Model{
		Namespaces: []export.Namespace{
			{
				ID:     2,
				URI:    "urn:pets",
				Prefix: "p",
				Elements: []export.Element{
					{Name: "{urn:pets}Kennel", MinOccurs: 1, MaxOccurs: 1},
				},
				Types: []export.Type{
					{Name: "{urn:pets}Animal", Kind: "complex"},
					{
						Name:   "{urn:pets}Dog",
						Kind:   "complex",
						Parent: &export.TypeRef{Name: "{urn:pets}Animal", Resolved: true},
					},
				},
			},
		},
		Diagnostics: diags.All(),
	}
}

func newTestServer(t *testing.T) (*Server, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))

	return NewServer(testModel(), log), &buf
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealth(t *testing.T) {
	s, logs := newTestServer(t)

	rec := get(t, s, "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
	assert.Contains(t, logs.String(), "path=/health")
	assert.Contains(t, logs.String(), "status=200")
}

func TestListNamespaces(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/namespaces")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Namespaces []namespaceSummary `json:"namespaces"`
	}
	decode(t, rec, &body)

	require.Len(t, body.Namespaces, 1)
	assert.Equal(t, namespaceSummary{ID: 2, URI: "urn:pets", Prefix: "p", Elements: 1, Types: 2}, body.Namespaces[0])
}

func TestNamespace(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/namespaces/2")
	require.Equal(t, http.StatusOK, rec.Code)

	var ns export.Namespace
	decode(t, rec, &ns)
	assert.Equal(t, "urn:pets", ns.URI)
	assert.Len(t, ns.Types, 2)

	assert.Equal(t, http.StatusNotFound, get(t, s, "/api/namespaces/9").Code)
	assert.Equal(t, http.StatusBadRequest, get(t, s, "/api/namespaces/pets").Code)
}

func TestType(t *testing.T) {
	s, _ := newTestServer(t)

	rec := get(t, s, "/api/namespaces/2/types/Dog")
	require.Equal(t, http.StatusOK, rec.Code)

	var typ export.Type
	decode(t, rec, &typ)
	assert.Equal(t, "{urn:pets}Dog", typ.Name)
	require.NotNil(t, typ.Parent)
	assert.Equal(t, "{urn:pets}Animal", typ.Parent.Name)

	rec = get(t, s, "/api/namespaces/2/types/Cat")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "{urn:pets}Cat")
}

func TestDiagnostics(t *testing.T) {
	s, _ := newTestServer(t)

	tests := []struct {
		query string
		code  int
		want  int
	}{
		{"", http.StatusOK, 2},
		{"?severity=error", http.StatusOK, 1},
		{"?code=grammar", http.StatusOK, 1},
		{"?severity=info", http.StatusOK, 0},
		{"?severity=fatal", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := get(t, s, "/api/diagnostics"+tt.query)
			require.Equal(t, tt.code, rec.Code)

			if tt.code != http.StatusOK {
				return
			}

			var body struct {
				Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
			}
			decode(t, rec, &body)
			assert.Len(t, body.Diagnostics, tt.want)
		})
	}
}
