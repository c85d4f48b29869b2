package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/paperview/paperview/internal/paper"
	"github.com/paperview/paperview/internal/viz"
	"github.com/sirupsen/logrus/hooks/test"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeLibrary struct {
	records []paper.Record
	err     error
}

func (f *fakeLibrary) List(limit int) ([]paper.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	if limit > 0 && limit < len(f.records) {
		return f.records[:limit], nil
	}
	return f.records, nil
}

func sampleLibrary() *fakeLibrary {
	return &fakeLibrary{records: []paper.Record{
		{ID: "vaswani2017", PaperID: "vaswani2017", Title: "Attention Is All You Need",
			Authors: []string{"Ashish Vaswani", "Noam Shazeer"}, Year: "2017", URL: "https://arxiv.org/abs/1706.03762"},
		{ID: "he2016", PaperID: "he2016", Title: "Deep Residual Learning",
			Authors: []string{"Kaiming He"}, Year: "2016"},
	}}
}

func newTestRouter(t *testing.T, lib Library, lang string) http.Handler {
	t.Helper()
	logger, _ := test.NewNullLogger()
	seed := uint64(42)
	return NewRouter(&Deps{Log: logger, Library: lib, Language: lang, Seed: &seed})
}

func doRequest(h http.Handler, method, target string, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	want := []Route{
		{Method: http.MethodGet, Path: "/", Name: "home"},
		{Method: http.MethodGet, Path: "/workspace", Name: "workspace"},
	}
	if got := Routes(); !reflect.DeepEqual(got, want) {
		t.Errorf("Routes() = %+v, want %+v", got, want)
	}
}

func TestHome_Language(t *testing.T) {
	r := newTestRouter(t, sampleLibrary(), "zh")

	tests := []struct {
		name   string
		target string
		header map[string]string
		lang   string
		total  string
	}{
		{"query param", "/?lang=en", nil, "en", "Total 2 papers"},
		{"accept language", "/", map[string]string{"Accept-Language": "en-US,en;q=0.9"}, "en", "Total 2 papers"},
		{"query beats header", "/?lang=zh", map[string]string{"Accept-Language": "en"}, "zh", "共 2 篇"},
		{"unsupported falls back to default", "/?lang=fr", map[string]string{"Accept-Language": "de"}, "zh", "共 2 篇"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := doRequest(r, http.MethodGet, tt.target, tt.header)
			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", w.Code)
			}
			if got := w.Header().Get("Content-Language"); got != tt.lang {
				t.Errorf("Content-Language = %q, want %q", got, tt.lang)
			}
			body := w.Body.String()
			if !strings.Contains(body, tt.total) {
				t.Errorf("body missing %q", tt.total)
			}
			if !strings.Contains(body, "Attention Is All You Need") {
				t.Error("body missing library record")
			}
		})
	}
}

func TestHome_NoLibrary(t *testing.T) {
	r := newTestRouter(t, nil, "en")
	w := doRequest(r, http.MethodGet, "/", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Total 0 papers") {
		t.Error("empty library should show zero papers")
	}
}

func TestHome_LibraryError(t *testing.T) {
	r := newTestRouter(t, &fakeLibrary{err: errors.New("disk gone")}, "en")
	w := doRequest(r, http.MethodGet, "/", nil)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want 500", w.Code)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["code"] != ErrCodeInternalError || body["request_id"] == "" {
		t.Errorf("error body = %v", body)
	}
}

func TestWorkspace(t *testing.T) {
	r := newTestRouter(t, sampleLibrary(), "en")
	w := doRequest(r, http.MethodGet, "/workspace", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q", ct)
	}
	body := w.Body.String()
	if !strings.Contains(body, viz.CytoscapeCDN) || !strings.Contains(body, "vaswani2017") {
		t.Error("workspace should render the library graph")
	}
	if !strings.Contains(body, "View Full Paper") {
		t.Error("workspace labels should be localized")
	}
}

func TestWorkspace_EmptyLibrary(t *testing.T) {
	r := newTestRouter(t, &fakeLibrary{}, "zh")
	w := doRequest(r, http.MethodGet, "/workspace", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "开始你的论文分析之旅") {
		t.Error("empty workspace should show the localized welcome title")
	}
}

func TestWorkspace_BibParam(t *testing.T) {
	path := filepath.Join(t.TempDir(), "refs.bib")
	bib := "@article{lecun1998,\n  title={Gradient-based learning},\n  author={Yann LeCun and Leon Bottou},\n  year={1998}\n}\n"
	if err := os.WriteFile(path, []byte(bib), 0o644); err != nil {
		t.Fatal(err)
	}

	r := newTestRouter(t, sampleLibrary(), "en")
	w := doRequest(r, http.MethodGet, "/graph.json?bib="+path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var g viz.Graph
	if err := json.Unmarshal(w.Body.Bytes(), &g); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(g.Nodes) != 1 || g.Nodes[0].ID != "lecun1998" {
		t.Fatalf("nodes = %+v, want the bib entry only", g.Nodes)
	}
	if g.MainPaper == nil || g.MainPaper.ID != g.Nodes[0].ID {
		t.Errorf("mainPaper = %+v, want nodes[0]", g.MainPaper)
	}
	if want := []string{"Yann LeCun", "Leon Bottou"}; !reflect.DeepEqual(g.Nodes[0].Authors, want) {
		t.Errorf("authors = %v, want %v", g.Nodes[0].Authors, want)
	}
}

func TestGraphJSON_Formats(t *testing.T) {
	tests := []struct {
		name     string
		query    string
		wantCode int
		wantKey  string
	}{
		{name: "default is graph", query: "", wantCode: http.StatusOK, wantKey: "mainPaper"},
		{name: "explicit graph", query: "?format=graph", wantCode: http.StatusOK, wantKey: "mainPaper"},
		{name: "cytoscape", query: "?format=cytoscape", wantCode: http.StatusOK, wantKey: "nodes"},
		{name: "unknown", query: "?format=dot", wantCode: http.StatusBadRequest, wantKey: "code"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter(t, sampleLibrary(), "en")
			w := doRequest(r, http.MethodGet, "/graph.json"+tt.query, nil)
			if w.Code != tt.wantCode {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantCode)
			}

			var body map[string]json.RawMessage
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
			if _, ok := body[tt.wantKey]; !ok {
				t.Errorf("body = %s, want key %q", w.Body.String(), tt.wantKey)
			}
			if tt.query == "?format=cytoscape" {
				if _, ok := body["mainPaper"]; ok {
					t.Error("cytoscape elements should not carry mainPaper")
				}
			}
		})
	}
}

func TestWorkspace_MissingBib(t *testing.T) {
	r := newTestRouter(t, sampleLibrary(), "en")
	w := doRequest(r, http.MethodGet, "/workspace?bib=/nonexistent/refs.bib", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), ErrCodeInvalidRequest) {
		t.Errorf("body = %s", w.Body.String())
	}
}

func TestGraphJSON_Seeded(t *testing.T) {
	lib := &fakeLibrary{}
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		lib.records = append(lib.records, paper.Record{ID: id, PaperID: id, Title: id})
	}
	r := newTestRouter(t, lib, "en")

	first := doRequest(r, http.MethodGet, "/graph.json?format=cytoscape", nil)
	second := doRequest(r, http.MethodGet, "/graph.json?format=cytoscape", nil)
	if first.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", first.Code)
	}
	if first.Body.String() != second.Body.String() {
		t.Error("seeded graphs should be identical across requests")
	}

	var elements viz.CytoscapeElements
	if err := json.Unmarshal(first.Body.Bytes(), &elements); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(elements.Nodes) != 6 || len(elements.Edges) < 5 {
		t.Errorf("got %d nodes, %d edges", len(elements.Nodes), len(elements.Edges))
	}
}

func TestHealthz(t *testing.T) {
	r := newTestRouter(t, sampleLibrary(), "en")
	w := doRequest(r, http.MethodGet, "/healthz", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["status"] != "ok" || body["papers"] != float64(2) {
		t.Errorf("body = %v", body)
	}
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(t, nil, "en")
	w := doRequest(r, http.MethodGet, "/healthz", map[string]string{RequestIDHeader: "client-chosen"})

	id := w.Header().Get(RequestIDHeader)
	if id == "client-chosen" {
		t.Error("client request ID must not become the canonical ID")
	}
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("X-Request-ID %q is not a UUID: %v", id, err)
	}
}

func TestMetrics(t *testing.T) {
	r := newTestRouter(t, nil, "en")
	doRequest(r, http.MethodGet, "/healthz", nil)

	w := doRequest(r, http.MethodGet, "/metrics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	if !strings.Contains(w.Body.String(), "paperview_http_requests_total") {
		t.Error("metrics should expose the request counter")
	}
}

func TestUnknownRoute(t *testing.T) {
	r := newTestRouter(t, nil, "en")
	if w := doRequest(r, http.MethodGet, "/nope", nil); w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}
