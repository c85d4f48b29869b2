package server

import (
	"math/rand/v2"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/paperview/paperview/internal/bibtex"
	"github.com/paperview/paperview/internal/i18n"
	"github.com/paperview/paperview/internal/paper"
	"github.com/paperview/paperview/internal/viz"
	"github.com/sirupsen/logrus"
)

// Error code constants for JSON error responses.
const (
	ErrCodeInvalidRequest = "invalid_request"
	ErrCodeInternalError  = "internal_error"
)

type handler struct {
	deps *Deps
	log  logrus.FieldLogger
}

// respondError writes a JSON error carrying the request ID.
func respondError(c *gin.Context, status int, code, message string) {
	ErrorsTotal.WithLabelValues(code).Inc()
	c.AbortWithStatusJSON(status, gin.H{
		"error":      message,
		"code":       code,
		"request_id": c.GetString(RequestIDKey),
	})
}

func (h *handler) t(c *gin.Context, key string, args map[string]any) string {
	return h.deps.Bundle.T(c.GetString(LanguageKey), key, args)
}

// libraryRecords lists every stored record, or none without a library.
func (h *handler) libraryRecords() ([]paper.Record, error) {
	if h.deps.Library == nil {
		return []paper.Record{}, nil
	}
	return h.deps.Library.List(0)
}

// graphRecords returns the records of ?bib= when given, else the library.
func (h *handler) graphRecords(c *gin.Context) ([]paper.Record, string, bool) {
	log := requestLogger(c, h.log)

	if path := strings.TrimSpace(c.Query("bib")); path != "" {
		records, err := bibtex.ParseFile(path, bibtex.WithLogger(log))
		if err != nil {
			log.WithError(err).Warn("reading bib file failed")
			respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
			return nil, "", false
		}
		return records, "bib", true
	}

	records, err := h.libraryRecords()
	if err != nil {
		log.WithError(err).Error("listing library failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "listing library failed")
		return nil, "", false
	}
	return records, "library", true
}

func (h *handler) buildGraph(c *gin.Context) (*viz.Graph, bool) {
	records, source, ok := h.graphRecords(c)
	if !ok {
		return nil, false
	}

	opts := []viz.Option{viz.WithLogger(requestLogger(c, h.log))}
	if h.deps.Seed != nil {
		seed := *h.deps.Seed
		opts = append(opts, viz.WithRand(rand.New(rand.NewPCG(seed, seed))))
	}

	g := viz.Synthesize(records, opts...)
	GraphsBuilt.WithLabelValues(source).Inc()
	GraphNodes.Observe(float64(len(g.Nodes)))
	return g, true
}

// graphLabels localizes the graph page.
func (h *handler) graphLabels(c *gin.Context) viz.Labels {
	return viz.Labels{
		PageTitle:  h.t(c, "paperGraph.paperList.title", nil),
		Title:      h.t(c, "paperGraph.paperDetail.titleLabel", nil),
		Authors:    h.t(c, "paperGraph.paperDetail.authorsLabel", nil),
		Year:       h.t(c, "paperGraph.paperDetail.yearLabel", nil),
		Citations:  h.t(c, "paperGraph.paperDetail.citationsLabel", nil),
		ViewPaper:  h.t(c, "paperGraph.paperDetail.viewFullPaper", nil),
		EmptyTitle: h.t(c, "workspace.welcome.title", nil),
		EmptyHint:  h.t(c, "workspace.welcome.subtitle", nil),
	}
}

func (h *handler) workspace(c *gin.Context) {
	g, ok := h.buildGraph(c)
	if !ok {
		return
	}

	page, err := viz.GenerateHTML(g, viz.HTMLOptions{Layout: h.deps.Layout, Labels: h.graphLabels(c)})
	if err != nil {
		requestLogger(c, h.log).WithError(err).Error("rendering workspace failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "rendering graph failed")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// graphJSON serves the graph as {mainPaper, nodes, edges}, or as
// Cytoscape.js elements with ?format=cytoscape.
func (h *handler) graphJSON(c *gin.Context) {
	format := c.DefaultQuery("format", viz.FormatGraph)
	if _, err := (&viz.Graph{}).Payload(format); err != nil {
		respondError(c, http.StatusBadRequest, ErrCodeInvalidRequest, err.Error())
		return
	}

	g, ok := h.buildGraph(c)
	if !ok {
		return
	}
	payload, _ := g.Payload(format)
	c.JSON(http.StatusOK, payload)
}

func (h *handler) healthz(c *gin.Context) {
	records, err := h.libraryRecords()
	if err != nil {
		requestLogger(c, h.log).WithError(err).Error("health check failed")
		respondError(c, http.StatusServiceUnavailable, ErrCodeInternalError, "library unavailable")
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok", "papers": len(records)})
}

type feature struct {
	Title       string
	Description string
}

type paperRow struct {
	ID      string
	Title   string
	Authors string
	Year    string
	URL     string
}

type langLink struct {
	Code   string
	Label  string
	Active bool
}

type homeData struct {
	Lang          string
	Title         string
	Search        string
	FeaturesTitle string
	Features      []feature
	PaperListHead string
	Total         string
	Papers        []paperRow
	WorkspaceText string
	Languages     []langLink
	Copyright     string
}

func (h *handler) home(c *gin.Context) {
	records, err := h.libraryRecords()
	if err != nil {
		requestLogger(c, h.log).WithError(err).Error("listing library failed")
		respondError(c, http.StatusInternalServerError, ErrCodeInternalError, "listing library failed")
		return
	}

	lang := c.GetString(LanguageKey)
	data := homeData{
		Lang:          lang,
		Title:         h.t(c, "hero.title", nil),
		Search:        h.t(c, "hero.searchPlaceholder", nil),
		FeaturesTitle: h.t(c, "features.sectionTitle", nil),
		PaperListHead: h.t(c, "paperGraph.paperList.title", nil),
		Total:         h.t(c, "paperGraph.paperList.total", map[string]any{"count": len(records)}),
		WorkspaceText: h.t(c, "sidebar.space", nil),
		Copyright:     h.t(c, "footer.copyright", nil),
	}
	for _, key := range []string{"arxiv", "visualization", "realtime"} {
		data.Features = append(data.Features, feature{
			Title:       h.t(c, "features."+key+".title", nil),
			Description: h.t(c, "features."+key+".description", nil),
		})
	}
	for _, r := range records {
		authors := strings.Join(r.Authors, ", ")
		if len(r.Authors) > 1 {
			authors = r.FirstAuthor() + " " + h.t(c, "paperGraph.paperDetail.andOthers", nil)
		}
		data.Papers = append(data.Papers, paperRow{
			ID: r.ID, Title: r.Title, Authors: authors, Year: r.Year, URL: r.URL,
		})
	}
	for _, code := range i18n.Supported() {
		data.Languages = append(data.Languages, langLink{
			Code:   code,
			Label:  h.t(c, "language."+code, nil),
			Active: code == lang,
		})
	}

	c.HTML(http.StatusOK, "home", data)
}
