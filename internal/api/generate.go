package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// ProgressFunc reports transferred bytes. total is -1 when unknown.
type ProgressFunc func(done, total int64)

// progressReader reports every read to a ProgressFunc.
type progressReader struct {
	r        io.Reader
	done     int64
	total    int64
	progress ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.done += int64(n)
		if p.progress != nil {
			p.progress(p.done, p.total)
		}
	}
	return n, err
}

// UploadPDF uploads a local PDF as the multipart field "file" and returns
// the generated content. progress may be nil.
func (c *Client) UploadPDF(ctx context.Context, path string, progress ProgressFunc) (*GenerateResult, error) {
	if !strings.EqualFold(filepath.Ext(path), ".pdf") {
		return nil, fmt.Errorf("only PDF files can be uploaded: %s", path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(path))
	if err != nil {
		return nil, fmt.Errorf("creating form file: %w", err)
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	body := &progressReader{r: &buf, total: int64(buf.Len()), progress: progress}
	resp, err := c.send(ctx, http.MethodPost, "/generate/upload/", nil, body, mw.FormDataContentType())
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := c.readBody(resp, http.MethodPost, "/generate/upload/")
	if err != nil {
		return nil, err
	}
	return decodeGenerate(data)
}

// GenerateFromURL generates content from a remote PDF URL.
func (c *Client) GenerateFromURL(ctx context.Context, pdfURL string) (*GenerateResult, error) {
	if strings.TrimSpace(pdfURL) == "" {
		return nil, fmt.Errorf("URL is required")
	}
	data, err := c.do(ctx, http.MethodPost, "/generate/url/", nil, map[string]string{"url": pdfURL})
	if err != nil {
		return nil, err
	}
	return decodeGenerate(data)
}

// GenerateFromText generates content answering a free-text question.
func (c *Client) GenerateFromText(ctx context.Context, question string) (*GenerateResult, error) {
	if strings.TrimSpace(question) == "" {
		return nil, fmt.Errorf("question is required")
	}
	data, err := c.do(ctx, http.MethodPost, "/generate/text/", nil, map[string]string{"question": question})
	if err != nil {
		return nil, err
	}
	return decodeGenerate(data)
}

func decodeGenerate(data []byte) (*GenerateResult, error) {
	var result GenerateResult
	if err := decode(data, &result, "generation result"); err != nil {
		return nil, err
	}
	if result.Images == nil {
		result.Images = []string{}
	}
	return &result, nil
}

// ProxyPDF downloads a remote PDF through the backend into w and returns the
// number of bytes written. progress may be nil.
func (c *Client) ProxyPDF(ctx context.Context, pdfURL string, w io.Writer, progress ProgressFunc) (int64, error) {
	if strings.TrimSpace(pdfURL) == "" {
		return 0, fmt.Errorf("URL is required")
	}

	resp, err := c.send(ctx, http.MethodGet, "/proxy/pdf/", url.Values{"url": {pdfURL}}, nil, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body := &progressReader{r: resp.Body, total: resp.ContentLength, progress: progress}
	n, err := io.Copy(w, body)
	if err != nil {
		err = fmt.Errorf("%w: downloading PDF: %v", ErrNetworkError, err)
		c.logFailure(http.MethodGet, "/proxy/pdf/", err)
		return n, err
	}
	return n, nil
}
