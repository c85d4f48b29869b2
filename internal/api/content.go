package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// ListContent returns every generated content folder, newest date first.
func (c *Client) ListContent(ctx context.Context) ([]ContentSummary, error) {
	data, err := c.do(ctx, http.MethodGet, "/content/list/", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Contents []ContentSummary `json:"contents"`
	}
	if err := decode(data, &resp, "content list"); err != nil {
		return nil, err
	}
	if resp.Contents == nil {
		resp.Contents = []ContentSummary{}
	}
	return resp.Contents, nil
}

// GetContent fetches one content folder by its "yyyy-mm-dd/folder" id.
func (c *Client) GetContent(ctx context.Context, id string) (*ContentDetail, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("content id is required")
	}

	data, err := c.do(ctx, http.MethodGet, "/content/"+escapePath(id)+"/", nil, nil)
	if err != nil {
		return nil, err
	}

	var detail ContentDetail
	if err := decode(data, &detail, "content detail"); err != nil {
		return nil, err
	}
	if detail.ID == "" {
		detail.ID = id
	}
	return &detail, nil
}

// DeleteContent removes a content folder.
func (c *Client) DeleteContent(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("content id is required")
	}
	_, err := c.do(ctx, http.MethodDelete, "/content/"+escapePath(id)+"/", nil, nil)
	return err
}

// ContentImageURL returns the URL serving a content image path such as
// "2025-01-02/folder/1.png".
func (c *Client) ContentImageURL(path string) string {
	return c.endpoint("/content/image/", url.Values{"path": {path}})
}

// IndexImages lists the home page background image names.
func (c *Client) IndexImages(ctx context.Context) ([]string, error) {
	data, err := c.do(ctx, http.MethodGet, "/index/images/", nil, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Images []string `json:"images"`
	}
	if err := decode(data, &resp, "index images"); err != nil {
		return nil, err
	}
	if resp.Images == nil {
		resp.Images = []string{}
	}
	return resp.Images, nil
}

// SearchPapers searches the backend's paper index by title.
func (c *Client) SearchPapers(ctx context.Context, query string) ([]SearchResult, error) {
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("search query is required")
	}

	data, err := c.do(ctx, http.MethodGet, "/search/", url.Values{"q": {query}}, nil)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Results []SearchResult `json:"results"`
	}
	if err := decode(data, &resp, "search results"); err != nil {
		return nil, err
	}
	if resp.Results == nil {
		resp.Results = []SearchResult{}
	}
	return resp.Results, nil
}

// ExtractWordcloud asks the backend for the term frequencies of a PDF.
func (c *Client) ExtractWordcloud(ctx context.Context, pdfURL string) ([]WordFrequency, error) {
	if strings.TrimSpace(pdfURL) == "" {
		return nil, fmt.Errorf("PDF URL is required")
	}

	data, err := c.do(ctx, http.MethodPost, "/wordcloud/extract/", nil, map[string]string{"pdf_url": pdfURL})
	if err != nil {
		return nil, err
	}

	var words []WordFrequency
	if err := decodeData(data, &words, "word cloud"); err != nil {
		return nil, err
	}
	return words, nil
}
