package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/paperview/paperview/internal/api"
)

func TestRemoteErrorCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantExit int
		wantCode string
	}{
		{"sentinel not found", fmt.Errorf("get: %w", api.ErrNotFound), ExitAPINotFound, "not_found"},
		{"404", &api.APIError{StatusCode: 404, Code: "not_found"}, ExitAPINotFound, "not_found"},
		{"auth", &api.APIError{StatusCode: 401}, ExitAPIAuthError, "auth_error"},
		{"rate limited", api.ErrRateLimited, ExitAPIError, "rate_limited"},
		{"network", api.ErrNetworkError, ExitAPIError, "api_error"},
		{"other", errors.New("boom"), ExitAPIError, "api_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exit, code := remoteErrorCode(tt.err)
			if exit != tt.wantExit || code != tt.wantCode {
				t.Errorf("remoteErrorCode() = (%d, %q), want (%d, %q)", exit, code, tt.wantExit, tt.wantCode)
			}
		})
	}
}

func TestParseSessionID(t *testing.T) {
	if id, err := parseSessionID("12"); err != nil || id != 12 {
		t.Errorf("parseSessionID(12) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "0", "-3", "abc"} {
		if _, err := parseSessionID(bad); err == nil {
			t.Errorf("parseSessionID(%q) should fail", bad)
		}
	}
}

func TestFormatSearchResultHuman(t *testing.T) {
	year, cites := 2017, 90000
	out := formatSearchResultHuman(api.SearchResult{
		Title:     "Attention Is All You Need",
		Authors:   "Vaswani et al.",
		Year:      &year,
		Citations: &cites,
		PDFURL:    "https://arxiv.org/pdf/1706.03762",
	}, 1)

	for _, want := range []string{"1. Attention Is All You Need", "(2017)", "Citations: 90000", "PDF: https://arxiv.org/pdf/1706.03762"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	bare := formatSearchResultHuman(api.SearchResult{Title: "Untitled", URL: "https://example.org"}, 2)
	if strings.Contains(bare, "Citations") || strings.Contains(bare, "(") {
		t.Errorf("unknown year and citations should be omitted:\n%s", bare)
	}
	if !strings.Contains(bare, "URL: https://example.org") {
		t.Errorf("URL should be shown when there is no PDF link:\n%s", bare)
	}
}
