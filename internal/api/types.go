package api

import "encoding/json"

// ContentSummary is one generated content folder in the listing.
type ContentSummary struct {
	ID         string   `json:"id"` // "yyyy-mm-dd/folder"
	Title      string   `json:"title"`
	Date       string   `json:"date"`
	Folder     string   `json:"folder"`
	Images     []string `json:"images"`
	ImageCount int      `json:"image_count"`
}

// ContentDetail is a single generated content folder.
type ContentDetail struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Summary json.RawMessage `json:"summary"`
	Mermaid string          `json:"mermaid"`
	Images  []string        `json:"images"`
}

// GenerateResult is returned by the upload, URL and text generation calls.
type GenerateResult struct {
	OutputDir string          `json:"output_dir"`
	Images    []string        `json:"images"`
	Title     string          `json:"title"`
	Raw       json.RawMessage `json:"dify_result,omitempty"`
}

// SearchResult is one paper from the backend's title search.
type SearchResult struct {
	Title           string `json:"title"`
	Authors         string `json:"authors"`
	Abstract        string `json:"abstract"`
	Year            *int   `json:"year"`
	Citations       *int   `json:"citations"`
	URL             string `json:"url"`
	PDFURL          string `json:"pdf_url"`
	ArxivID         string `json:"arxiv_id"`
	PrimaryCategory string `json:"primary_category"`
}

// WordFrequency is one word-cloud term.
type WordFrequency struct {
	Word      string `json:"word"`
	Frequency int    `json:"frequency"`
	Cluster   int    `json:"cluster"`
}

// AIModelConfig is the active model configuration. APIKey is write-only.
type AIModelConfig struct {
	Provider  string `json:"provider"`
	ModelName string `json:"model_name"`
	APIBase   string `json:"api_base"`
	APIKey    string `json:"api_key,omitempty"`
}

// AIModel is a selectable model of a provider.
type AIModel struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// AIProvider groups the models of one provider.
type AIProvider struct {
	Name   string    `json:"name"`
	Logo   string    `json:"logo"`
	Models []AIModel `json:"models"`
}

// TranslateRequest is the body of the translate calls.
type TranslateRequest struct {
	Text       string `json:"text"`
	TargetLang string `json:"target_lang"`
	SessionID  int    `json:"session_id,omitempty"`
	PaperTitle string `json:"paper_title,omitempty"`
}

// TranslateResult is the non-streamed translation.
type TranslateResult struct {
	OriginalText   string `json:"original_text"`
	TranslatedText string `json:"translated_text"`
	TargetLang     string `json:"target_lang"`
	ModelUsed      string `json:"model_used"`
}

// Message is one chat turn.
type Message struct {
	Role    string `json:"role"` // "user", "assistant" or "system"
	Content string `json:"content"`
}

// ChatRequest is the body of the chat calls.
type ChatRequest struct {
	Messages    []Message `json:"messages"`
	ContextText string    `json:"context_text,omitempty"`
	SessionID   int       `json:"session_id,omitempty"`
	PaperTitle  string    `json:"paper_title,omitempty"`
}

// ChatResult is the non-streamed chat reply.
type ChatResult struct {
	Response  string `json:"response"`
	ModelUsed string `json:"model_used"`
}

// Stream event types.
const (
	EventStart = "start"
	EventChunk = "chunk"
	EventDone  = "done"
	EventError = "error"
)

// StreamEvent is one SSE "data:" payload of a streamed call.
type StreamEvent struct {
	Type      string `json:"type"`
	Model     string `json:"model,omitempty"`
	Content   string `json:"content,omitempty"`
	SessionID int    `json:"session_id,omitempty"`
	Error     string `json:"error,omitempty"`
}

// StreamResult summarizes a completed stream.
type StreamResult struct {
	Model     string
	Text      string
	SessionID int
}

// Session is a saved translation or chat session.
type Session struct {
	ID            int    `json:"id"`
	Title         string `json:"title"`
	PaperTitle    string `json:"paper_title"`
	SessionType   string `json:"session_type"`
	MessageCount  int    `json:"message_count"`
	LastMessageAt string `json:"last_message_at,omitempty"`
	CreatedAt     string `json:"created_at"`
	IsPinned      bool   `json:"is_pinned"`
}

// SessionMessage is a stored message of a session.
type SessionMessage struct {
	Role      string `json:"role"`
	Content   string `json:"content"`
	CreatedAt string `json:"created_at"`
}

// SessionDetail is a session with its messages.
type SessionDetail struct {
	Session  Session          `json:"session"`
	Messages []SessionMessage `json:"messages"`
}

// CreateSessionRequest is the body of CreateSession.
type CreateSessionRequest struct {
	Title       string `json:"title,omitempty"`
	PaperTitle  string `json:"paper_title,omitempty"`
	PaperURL    string `json:"paper_url,omitempty"`
	SessionType string `json:"session_type,omitempty"`
	ContextText string `json:"context_text,omitempty"`
}

// CreatedSession identifies a new session.
type CreatedSession struct {
	SessionID int    `json:"session_id"`
	Title     string `json:"title"`
}

// envelope is the {"success": ..., "error": ..., "data": ...} wrapper most
// endpoints respond with.
type envelope struct {
	Success *bool           `json:"success"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}
