package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"chat-dashboard/logging"
	"chat-dashboard/models"
	"chat-dashboard/services"
	"chat-dashboard/views"
	"chat-dashboard/workflows"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const sessionContextKey = "chat_session"

// ChatHandler handles chat-related HTTP requests
type ChatHandler struct {
	log         *slog.Logger
	registry    *services.SessionRegistry
	workflows   *workflows.ChatWorkflows
	cookieName  string
	defaultStep views.Step
}

// NewChatHandler creates a new chat handler
func NewChatHandler(log *slog.Logger, registry *services.SessionRegistry, wf *workflows.ChatWorkflows, cookieName string, defaultStep views.Step) *ChatHandler {
	return &ChatHandler{
		log:         log,
		registry:    registry,
		workflows:   wf,
		cookieName:  cookieName,
		defaultStep: defaultStep,
	}
}

// SessionMiddleware attaches the caller's session, starting a new one when
// the cookie is missing or names a session that no longer exists
func (h *ChatHandler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := uuid.Parse(cookieValue(c, h.cookieName))
		if err == nil {
			if _, ok := h.registry.Get(id); !ok {
				err = errors.New("unknown session")
			}
		}
		if err != nil {
			id = uuid.New()
			c.SetSameSite(http.SameSiteLaxMode)
			c.SetCookie(h.cookieName, id.String(), 0, "/", "", false, true)
		}

		sess, created := h.registry.InitializeIfAbsent(id)
		if created {
			h.log.Info("session started", "session_id", id)
		}
		c.Set(sessionContextKey, sess)
		c.Set(logging.SessionKey, id.String())
		c.Next()
	}
}

func cookieValue(c *gin.Context, name string) string {
	value, err := c.Cookie(name)
	if err != nil {
		return ""
	}
	return value
}

func session(c *gin.Context) *services.Session {
	return c.MustGet(sessionContextKey).(*services.Session)
}

func (h *ChatHandler) step(c *gin.Context) views.Step {
	return views.ParseStep(c.Query("step"), h.defaultStep)
}

func (h *ChatHandler) redirectHome(c *gin.Context) {
	c.Redirect(http.StatusSeeOther, fmt.Sprintf("/?step=%d", h.step(c)))
}

func (h *ChatHandler) renderPage(c *gin.Context, status int, warning string) {
	c.HTML(status, views.PageTemplate, views.NewPage(session(c).Snapshot(), h.step(c), warning))
}

// Index renders the whole chat page from the session state
func (h *ChatHandler) Index(c *gin.Context) {
	h.renderPage(c, http.StatusOK, "")
}

// Send handles the send form. A rejected message re-renders the page with
// a warning and leaves the session untouched.
func (h *ChatHandler) Send(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderPage(c, http.StatusBadRequest, "Invalid message")
		return
	}

	_, err := h.workflows.Send(session(c), workflows.SendMessageInput{Content: req.Content, Role: req.Role})
	if errors.Is(err, workflows.ErrEmptyMessage) {
		h.renderPage(c, http.StatusUnprocessableEntity, views.EmptyWarning)
		return
	}
	h.redirectHome(c)
}

// Clear handles the clear button
func (h *ChatHandler) Clear(c *gin.Context) {
	h.workflows.Clear(session(c))
	h.redirectHome(c)
}

// SelectRole handles the "Set role" button. The text field travels with
// the same form and is kept as the draft.
func (h *ChatHandler) SelectRole(c *gin.Context) {
	var req models.SelectRoleRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderPage(c, http.StatusBadRequest, "Invalid role")
		return
	}
	sess := session(c)
	h.workflows.SelectRole(sess, req.Role)
	if content, ok := c.GetPostForm("content"); ok {
		h.workflows.SaveDraft(sess, content)
	}
	h.redirectHome(c)
}

func chatResponse(snap services.Snapshot) models.ChatResponse {
	return models.ChatResponse{
		Messages:     services.NewestFirst(snap.Messages),
		Count:        len(snap.Messages),
		Footer:       services.Footer(len(snap.Messages)),
		SelectedRole: snap.SelectedRole,
		PendingInput: snap.PendingInput,
	}
}

// GetMessages returns the newest-first view of the session
func (h *ChatHandler) GetMessages(c *gin.Context) {
	c.JSON(http.StatusOK, chatResponse(session(c).Snapshot()))
}

// PostMessage sends a message through the JSON API
func (h *ChatHandler) PostMessage(c *gin.Context) {
	var req models.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	msg, err := h.workflows.Send(session(c), workflows.SendMessageInput{Content: req.Content, Role: req.Role})
	if errors.Is(err, workflows.ErrEmptyMessage) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, services.Render(msg))
}

// DeleteMessages clears the session through the JSON API
func (h *ChatHandler) DeleteMessages(c *gin.Context) {
	h.workflows.Clear(session(c))
	c.JSON(http.StatusOK, chatResponse(session(c).Snapshot()))
}

// PutDraft saves the text field value
func (h *ChatHandler) PutDraft(c *gin.Context) {
	var req models.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	h.workflows.SaveDraft(session(c), req.Content)
	c.JSON(http.StatusOK, gin.H{"pending_input": req.Content})
}

// PutRole changes the role selector through the JSON API
func (h *ChatHandler) PutRole(c *gin.Context) {
	var req models.SelectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	role := h.workflows.SelectRole(session(c), req.Role)
	c.JSON(http.StatusOK, gin.H{"selected_role": role})
}

// Health reports liveness and the number of open sessions
func (h *ChatHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "sessions": h.registry.Len()})
}
