package domain

import "time"

// Turn roles
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
)

// Settings bounds, matching the widget sliders
const (
	MinTemperature     = 0.0
	MaxTemperature     = 1.2
	DefaultTemperature = 0.7

	MinReplyTokens     = 60
	MaxReplyTokens     = 300
	DefaultReplyTokens = 180
)

// Turn represents one entry in a conversation transcript.
type Turn struct {
	Role      string    `json:"role"` // user, assistant
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Settings holds the per-session generation controls.
type Settings struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}

// DefaultSettings returns the settings a fresh session starts with.
func DefaultSettings() Settings {
	return Settings{
		Temperature: DefaultTemperature,
		MaxTokens:   DefaultReplyTokens,
	}
}

// Clamp forces the settings into the supported ranges.
func (s *Settings) Clamp() {
	if s.Temperature < MinTemperature {
		s.Temperature = MinTemperature
	}
	if s.Temperature > MaxTemperature {
		s.Temperature = MaxTemperature
	}
	if s.MaxTokens < MinReplyTokens {
		s.MaxTokens = MinReplyTokens
	}
	if s.MaxTokens > MaxReplyTokens {
		s.MaxTokens = MaxReplyTokens
	}
}

// Session represents one browser-scoped conversation.
type Session struct {
	ID        string    `json:"id"`
	Settings  Settings  `json:"settings"`
	Turns     []Turn    `json:"turns"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChatRequest is the request to send a chat message.
type ChatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Message   string `json:"message" binding:"required"`
}

// ChatResponse is the response from a chat message.
type ChatResponse struct {
	SessionID string `json:"session_id"`
	Answer    string `json:"answer"`
}

// UpdateSettingsRequest is the request to adjust session settings.
// Pointer fields so omitted controls keep their current value.
type UpdateSettingsRequest struct {
	Temperature *float64 `json:"temperature,omitempty"`
	MaxTokens   *int     `json:"max_tokens,omitempty"`
}

// Stats represents system statistics.
type Stats struct {
	TotalChunks   int `json:"total_chunks"`
	TotalSessions int `json:"total_sessions"`
	TotalUploads  int `json:"total_uploads"`
}
