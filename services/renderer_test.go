package services

import (
	"testing"
	"time"

	"chat-dashboard/models"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_StyleFor_User_Is_Green_And_Right_Aligned(t *testing.T) {
	style := StyleFor(models.RoleUser)
	assert.Equal(t, UserBubbleColor, style.Background)
	assert.Equal(t, UserTextColor, style.Foreground)
	assert.Equal(t, models.AlignEnd, style.Align)
}

func Test_StyleFor_Anything_Else_Is_Gray_And_Left_Aligned(t *testing.T) {
	for _, role := range []models.Role{models.RoleAssistant, "system", "", "User"} {
		style := StyleFor(role)
		assert.Equal(t, AssistantBubbleColor, style.Background, "role %q", role)
		assert.Equal(t, AssistantTextColor, style.Foreground, "role %q", role)
		assert.Equal(t, models.AlignStart, style.Align, "role %q", role)
	}
}

func Test_Render_Formats_Timestamp(t *testing.T) {
	req := require.New(t)
	st := NewState(func() time.Time { return time.Date(2026, 3, 4, 7, 8, 9, 0, time.Local) })
	msg := st.Append("hello", models.RoleUser)

	bubble := Render(msg)
	req.Equal("07:08:09", bubble.Timestamp)
	req.Equal("hello", bubble.Text)
	req.True(bubble.IsUser)
	req.Equal(msg.ID, bubble.ID)
}

func Test_NewestFirst_Reverses_Without_Mutating(t *testing.T) {
	req := require.New(t)
	st := NewState(nil)
	st.Append("m1", models.RoleUser)
	st.Append("m2", models.RoleAssistant)
	st.Append("m3", models.RoleUser)
	messages := st.Messages()

	bubbles := NewestFirst(messages)
	req.Equal([]string{"m3", "m2", "m1"}, lo.Map(bubbles, func(b models.Bubble, _ int) string { return b.Text }))
	req.Equal("m1", messages[0].Text)
	req.Empty(NewestFirst(nil))
}

func Test_Footer_Pluralization(t *testing.T) {
	assert.Equal(t, "0 messages in chat", Footer(0))
	assert.Equal(t, "1 message in chat", Footer(1))
	assert.Equal(t, "2 messages in chat", Footer(2))
}
