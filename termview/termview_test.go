package termview

import (
	"strings"
	"testing"
	"time"

	"chat-dashboard/models"
	"chat-dashboard/services"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/require"
)

func fixedClock() time.Time {
	return time.Date(2026, 10, 16, 9, 5, 7, 0, time.UTC)
}

func Test_Bubble_Aligns_By_Role(t *testing.T) {
	req := require.New(t)
	st := services.NewState(fixedClock)
	user := services.Render(st.Append("hello", models.RoleUser))
	assistant := services.Render(st.Append("hi there", models.RoleAssistant))

	userLines := strings.Split(Bubble(user, 60), "\n")
	assistantLines := strings.Split(Bubble(assistant, 60), "\n")

	req.True(strings.HasPrefix(userLines[0], " "), "user bubble should be pushed right")
	req.True(strings.HasPrefix(assistantLines[0], "╭"), "assistant bubble should start at the left edge")
	req.Contains(Bubble(user, 60), "09:05:07")
	req.Contains(Bubble(assistant, 60), "hi there")
}

func Test_Transcript_Is_Newest_First(t *testing.T) {
	req := require.New(t)
	st := services.NewState(fixedClock)
	st.Append("first", models.RoleUser)
	st.Append("second", models.RoleAssistant)

	out := Transcript(st.Messages(), DefaultWidth)
	req.Less(strings.Index(out, "second"), strings.Index(out, "first"))
	req.True(strings.HasSuffix(out, "2 messages in chat\n"))
}

func Test_Transcript_Empty(t *testing.T) {
	out := Transcript(nil, DefaultWidth)
	require.Contains(t, out, "No messages yet")
	require.Contains(t, out, "0 messages in chat")
}

func Test_Bubble_Wraps_Long_Text(t *testing.T) {
	req := require.New(t)
	st := services.NewState(fixedClock)
	st.Append(strings.Repeat("word ", 30)+"TAILMARKER", models.RoleUser)

	out := Transcript(st.Messages(), DefaultWidth)
	req.Contains(out, "TAILMARKER")
	req.Equal(30, strings.Count(out, "word"))
	req.Contains(out, "╯")
	for _, line := range strings.Split(strings.TrimRight(out, "\n"), "\n") {
		req.LessOrEqual(lipgloss.Width(line), DefaultWidth)
	}
}
