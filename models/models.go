package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Role tags a message with the side of the conversation it is shown on.
// Only RoleUser is special; every other value renders as an assistant.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// TimestampLayout is the HH:MM:SS clock shown on every bubble.
const TimestampLayout = "15:04:05"

// Message represents a message in a chat session
type Message struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// Timestamp returns the creation time formatted for display
func (m Message) Timestamp() string {
	return m.CreatedAt.Format(TimestampLayout)
}

// Alignment is the horizontal placement of a bubble
type Alignment string

const (
	AlignStart Alignment = "start"
	AlignEnd   Alignment = "end"
)

// StyleTokens is the color pair and alignment a role maps to
type StyleTokens struct {
	Background string    `json:"background"`
	Foreground string    `json:"foreground"`
	Align      Alignment `json:"align"`
}

// Bubble is the visual description of one message
type Bubble struct {
	ID        uuid.UUID   `json:"id"`
	Text      string      `json:"text"`
	Role      Role        `json:"role"`
	Timestamp string      `json:"timestamp"`
	IsUser    bool        `json:"is_user"`
	Style     StyleTokens `json:"style"`
}

// SendMessageRequest is the request body for sending a message
type SendMessageRequest struct {
	Content string `json:"content" form:"content" binding:"max=4000"`
	Role    string `json:"role" form:"role" binding:"max=32"`
}

// SelectRoleRequest is the request body for changing the role selector
type SelectRoleRequest struct {
	Role string `json:"role" form:"role" binding:"max=32"`
}

// DraftRequest is the request body for saving the text field
type DraftRequest struct {
	Content string `json:"content" form:"content" binding:"max=4000"`
}

// ChatResponse is the JSON view of a session
type ChatResponse struct {
	Messages     []Bubble `json:"messages"`
	Count        int      `json:"count"`
	Footer       string   `json:"footer"`
	SelectedRole Role     `json:"selected_role"`
	PendingInput string   `json:"pending_input"`
}

// ParseRole normalizes a role selector value. Empty input means RoleUser;
// unknown values are kept as-is and render with the assistant style.
func ParseRole(raw string) Role {
	role := Role(strings.ToLower(strings.TrimSpace(raw)))
	if role == "" {
		return RoleUser
	}
	return role
}
