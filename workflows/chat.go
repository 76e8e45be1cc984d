package workflows

import (
	"errors"
	"log/slog"
	"strings"

	"chat-dashboard/models"
	"chat-dashboard/services"
)

// ErrEmptyMessage is the warning shown when the text field holds only
// whitespace
var ErrEmptyMessage = errors.New("message cannot be empty")

// ChatWorkflows contains the user interactions of the chat page. Every
// operation either fully applies to the session or leaves it untouched.
type ChatWorkflows struct {
	log *slog.Logger
}

// NewChatWorkflows creates a new ChatWorkflows instance
func NewChatWorkflows(log *slog.Logger) *ChatWorkflows {
	return &ChatWorkflows{log: log}
}

// SendMessageInput contains the raw form values of a send
type SendMessageInput struct {
	Content string
	Role    string
}

// Send validates the text field and appends the trimmed text to the
// session. Without a role the selector's current value is used; the role
// used becomes the selector default for the next render.
func (w *ChatWorkflows) Send(sess *services.Session, input SendMessageInput) (models.Message, error) {
	text := strings.TrimSpace(input.Content)
	if text == "" {
		w.log.Debug("rejected empty message", "session_id", sess.ID)
		return models.Message{}, ErrEmptyMessage
	}

	var msg models.Message
	sess.Interact(func(st *services.State) {
		role := st.SelectedRole()
		if strings.TrimSpace(input.Role) != "" {
			role = models.ParseRole(input.Role)
		}
		msg = st.Append(text, role)
		st.SetPendingInput("")
		st.SelectRole(role)
	})
	w.log.Debug("message appended", "session_id", sess.ID, "message_id", msg.ID, "role", msg.Role)
	return msg, nil
}

// Clear empties the conversation and the text field
func (w *ChatWorkflows) Clear(sess *services.Session) {
	sess.Interact(func(st *services.State) {
		st.Clear()
	})
	w.log.Debug("conversation cleared", "session_id", sess.ID)
}

// SelectRole stores the role selector value and returns it normalized
func (w *ChatWorkflows) SelectRole(sess *services.Session, raw string) models.Role {
	role := models.ParseRole(raw)
	sess.Interact(func(st *services.State) {
		st.SelectRole(role)
	})
	return role
}

// SaveDraft binds the text field to the session without sending it
func (w *ChatWorkflows) SaveDraft(sess *services.Session, text string) {
	sess.Interact(func(st *services.State) {
		st.SetPendingInput(text)
	})
}
