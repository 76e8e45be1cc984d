package services

import (
	"slices"
	"sync"
	"time"

	"chat-dashboard/models"

	"github.com/google/uuid"
)

// State is the chat state of one session: the append-only message log,
// the uncommitted text field and the role selector.
type State struct {
	messages     []models.Message
	pendingInput string
	selectedRole models.Role
	now          func() time.Time
}

// NewState creates an empty state that stamps messages with now
func NewState(now func() time.Time) *State {
	if now == nil {
		now = time.Now
	}
	return &State{
		messages:     []models.Message{},
		selectedRole: models.RoleUser,
		now:          now,
	}
}

// Append stores text unchanged at the end of the log. Validation is the
// caller's job. Timestamps never go backwards within a state.
func (s *State) Append(text string, role models.Role) models.Message {
	createdAt := s.now()
	if n := len(s.messages); n > 0 && createdAt.Before(s.messages[n-1].CreatedAt) {
		createdAt = s.messages[n-1].CreatedAt
	}
	msg := models.Message{
		ID:        uuid.New(),
		Text:      text,
		Role:      role,
		CreatedAt: createdAt,
	}
	s.messages = append(s.messages, msg)
	return msg
}

// Clear empties the log and the text field. The role selector is kept.
func (s *State) Clear() {
	s.messages = []models.Message{}
	s.pendingInput = ""
}

func (s *State) SetPendingInput(text string) {
	s.pendingInput = text
}

func (s *State) SelectRole(role models.Role) {
	s.selectedRole = role
}

// Messages returns a copy of the log in insertion order
func (s *State) Messages() []models.Message {
	return slices.Clone(s.messages)
}

func (s *State) Len() int {
	return len(s.messages)
}

func (s *State) PendingInput() string {
	return s.pendingInput
}

func (s *State) SelectedRole() models.Role {
	return s.selectedRole
}

// Snapshot is a read-only copy of a session's state taken for one render
type Snapshot struct {
	SessionID    uuid.UUID
	Messages     []models.Message
	PendingInput string
	SelectedRole models.Role
}

// Session owns the State of one browser session. Interactions on the same
// session run one at a time.
type Session struct {
	ID uuid.UUID

	mu       sync.Mutex
	state    *State
	lastSeen time.Time
	now      func() time.Time
}

func newSession(id uuid.UUID, now func() time.Time) *Session {
	return &Session{
		ID:       id,
		state:    NewState(now),
		lastSeen: now(),
		now:      now,
	}
}

// Interact runs fn with exclusive access to the session state
func (s *Session) Interact(fn func(st *State)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	fn(s.state)
}

// Snapshot copies the current state for rendering
func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
	return Snapshot{
		SessionID:    s.ID,
		Messages:     s.state.Messages(),
		PendingInput: s.state.pendingInput,
		SelectedRole: s.state.selectedRole,
	}
}

func (s *Session) touch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastSeen = s.now()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
