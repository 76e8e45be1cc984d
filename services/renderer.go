package services

import (
	"fmt"

	"chat-dashboard/models"

	"github.com/samber/lo"
)

// Color tokens for the two bubble styles
const (
	UserBubbleColor      = "#DCF8C6"
	UserTextColor        = "#000"
	AssistantBubbleColor = "#E8E8E8"
	AssistantTextColor   = "#222"
	TimestampColor       = "#999"
)

var (
	userStyle = models.StyleTokens{
		Background: UserBubbleColor,
		Foreground: UserTextColor,
		Align:      models.AlignEnd,
	}
	assistantStyle = models.StyleTokens{
		Background: AssistantBubbleColor,
		Foreground: AssistantTextColor,
		Align:      models.AlignStart,
	}
)

// StyleFor maps a role to its style tokens. Anything that is not exactly
// RoleUser gets the assistant style.
func StyleFor(role models.Role) models.StyleTokens {
	if role == models.RoleUser {
		return userStyle
	}
	return assistantStyle
}

// Render describes the bubble for one message
func Render(msg models.Message) models.Bubble {
	return models.Bubble{
		ID:        msg.ID,
		Text:      msg.Text,
		Role:      msg.Role,
		Timestamp: msg.Timestamp(),
		IsUser:    msg.Role == models.RoleUser,
		Style:     StyleFor(msg.Role),
	}
}

// NewestFirst renders messages in reverse insertion order without
// touching the slice it is given
func NewestFirst(messages []models.Message) []models.Bubble {
	last := len(messages) - 1
	return lo.Map(messages, func(_ models.Message, i int) models.Bubble {
		return Render(messages[last-i])
	})
}

// Footer is the live message count, e.g. "1 message in chat"
func Footer(count int) string {
	if count == 1 {
		return "1 message in chat"
	}
	return fmt.Sprintf("%d messages in chat", count)
}
