package api

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
)

// AIConfig returns the active model configuration, or nil when none is set.
func (c *Client) AIConfig(ctx context.Context) (*AIModelConfig, error) {
	data, err := c.do(ctx, http.MethodGet, "/ai/config/", nil, nil)
	if err != nil {
		return nil, err
	}

	var env struct {
		Data *AIModelConfig `json:"data"`
	}
	if err := decode(data, &env, "AI config"); err != nil {
		return nil, err
	}
	return env.Data, nil
}

// SetAIConfig stores and activates a model configuration.
func (c *Client) SetAIConfig(ctx context.Context, cfg AIModelConfig) (*AIModelConfig, error) {
	if cfg.Provider == "" || cfg.ModelName == "" {
		return nil, fmt.Errorf("provider and model name are required")
	}
	data, err := c.do(ctx, http.MethodPost, "/ai/config/", nil, cfg)
	if err != nil {
		return nil, err
	}

	var saved AIModelConfig
	if err := decodeData(data, &saved, "AI config"); err != nil {
		return nil, err
	}
	return &saved, nil
}

// AIOptions lists the selectable providers keyed by provider id.
func (c *Client) AIOptions(ctx context.Context) (map[string]AIProvider, error) {
	data, err := c.do(ctx, http.MethodGet, "/ai/options/", nil, nil)
	if err != nil {
		return nil, err
	}

	var options map[string]AIProvider
	if err := decodeData(data, &options, "AI options"); err != nil {
		return nil, err
	}
	return options, nil
}

// Translate translates text into targetLang in one request.
func (c *Client) Translate(ctx context.Context, text, targetLang string) (*TranslateResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("text is required")
	}
	req := TranslateRequest{Text: text, TargetLang: targetLang}

	data, err := c.do(ctx, http.MethodPost, "/translate/", nil, req)
	if err != nil {
		return nil, err
	}

	var result TranslateResult
	if err := decodeData(data, &result, "translation"); err != nil {
		return nil, err
	}
	return &result, nil
}

// Chat sends a conversation, optionally about contextText, in one request.
func (c *Client) Chat(ctx context.Context, messages []Message, contextText string) (*ChatResult, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	req := ChatRequest{Messages: messages, ContextText: contextText}

	data, err := c.do(ctx, http.MethodPost, "/chat/", nil, req)
	if err != nil {
		return nil, err
	}

	var result ChatResult
	if err := decodeData(data, &result, "chat reply"); err != nil {
		return nil, err
	}
	return &result, nil
}

// TranslateStream streams a translation, calling onEvent for every event.
// onEvent may be nil.
func (c *Client) TranslateStream(ctx context.Context, req TranslateRequest, onEvent func(StreamEvent)) (*StreamResult, error) {
	if strings.TrimSpace(req.Text) == "" {
		return nil, fmt.Errorf("text is required")
	}
	return c.stream(ctx, "/translate/stream/", req, onEvent)
}

// ChatStream streams a chat reply, calling onEvent for every event.
// onEvent may be nil.
func (c *Client) ChatStream(ctx context.Context, req ChatRequest, onEvent func(StreamEvent)) (*StreamResult, error) {
	if len(req.Messages) == 0 {
		return nil, fmt.Errorf("messages are required")
	}
	return c.stream(ctx, "/chat/stream/", req, onEvent)
}

func (c *Client) stream(ctx context.Context, path string, in any, onEvent func(StreamEvent)) (*StreamResult, error) {
	payload, err := json.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	resp, err := c.send(ctx, http.MethodPost, path, nil, bytes.NewReader(payload), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	result, err := parseEventStream(resp.Body, onEvent)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) {
			apiErr.StatusCode = resp.StatusCode
			apiErr.Path = path
		}
		c.logFailure(http.MethodPost, path, err)
		return nil, err
	}
	return result, nil
}

// parseEventStream reads "data:" lines until a done or error event.
func parseEventStream(body io.Reader, onEvent func(StreamEvent)) (*StreamResult, error) {
	scanner := bufio.NewScanner(body)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	result := &StreamResult{}
	var text strings.Builder

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data:") {
			continue
		}
		data := strings.TrimSpace(strings.TrimPrefix(line, "data:"))

		var ev StreamEvent
		if err := json.Unmarshal([]byte(data), &ev); err != nil {
			continue
		}
		if onEvent != nil {
			onEvent(ev)
		}

		switch ev.Type {
		case EventStart:
			result.Model = ev.Model
		case EventChunk:
			text.WriteString(ev.Content)
		case EventDone:
			result.Text = text.String()
			result.SessionID = ev.SessionID
			return result, nil
		case EventError:
			return nil, &APIError{Code: "stream_error", Message: ev.Error}
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: reading event stream: %v", ErrNetworkError, err)
	}
	return nil, fmt.Errorf("%w: stream ended without done event", ErrInvalidResponse)
}

// ListSessions returns the most recent active sessions.
func (c *Client) ListSessions(ctx context.Context) ([]Session, error) {
	data, err := c.do(ctx, http.MethodGet, "/sessions/", nil, nil)
	if err != nil {
		return nil, err
	}

	var sessions []Session
	if err := decodeData(data, &sessions, "sessions"); err != nil {
		return nil, err
	}
	return sessions, nil
}

// GetSession returns a session with its messages.
func (c *Client) GetSession(ctx context.Context, id int) (*SessionDetail, error) {
	data, err := c.do(ctx, http.MethodGet, sessionPath(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var detail SessionDetail
	if err := decodeData(data, &detail, "session"); err != nil {
		return nil, err
	}
	return &detail, nil
}

// CreateSession starts an empty session.
func (c *Client) CreateSession(ctx context.Context, req CreateSessionRequest) (*CreatedSession, error) {
	data, err := c.do(ctx, http.MethodPost, "/sessions/", nil, req)
	if err != nil {
		return nil, err
	}

	var created CreatedSession
	if err := decodeData(data, &created, "created session"); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteSession deactivates a session.
func (c *Client) DeleteSession(ctx context.Context, id int) error {
	_, err := c.do(ctx, http.MethodDelete, sessionPath(id), nil, nil)
	return err
}

func sessionPath(id int) string {
	return "/sessions/" + strconv.Itoa(id) + "/"
}
