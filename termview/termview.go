// Package termview draws chat bubbles for a terminal.
package termview

import (
	"strings"

	"chat-dashboard/models"
	"chat-dashboard/services"

	"github.com/charmbracelet/lipgloss"
)

// DefaultWidth is the line width bubbles are aligned within
const DefaultWidth = 72

var (
	bubbleStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(services.TimestampColor)).
			Faint(true)

	emptyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(services.TimestampColor)).
			Italic(true)
)

// Bubble renders one bubble aligned within width
func Bubble(b models.Bubble, width int) string {
	content := lipgloss.JoinVertical(lipgloss.Left,
		timestampStyle.Render(b.Timestamp),
		b.Text,
	)
	// Width includes the padding but not the border; long text wraps.
	inner := min(lipgloss.Width(content)+2, max(width*7/10-2, 4))

	style := bubbleStyle.
		BorderForeground(lipgloss.Color(b.Style.Background)).
		Background(lipgloss.Color(b.Style.Background)).
		Foreground(lipgloss.Color(b.Style.Foreground)).
		Width(inner).
		MaxWidth(width)

	box := style.Render(content)

	pos := lipgloss.Left
	if b.Style.Align == models.AlignEnd {
		pos = lipgloss.Right
	}
	return lipgloss.PlaceHorizontal(width, pos, box)
}

// Transcript renders the newest-first list followed by the footer
func Transcript(messages []models.Message, width int) string {
	var sb strings.Builder
	if len(messages) == 0 {
		sb.WriteString(emptyStyle.Render("No messages yet. Start the conversation!"))
		sb.WriteString("\n")
	}
	for _, b := range services.NewestFirst(messages) {
		sb.WriteString(Bubble(b, width))
		sb.WriteString("\n")
	}
	sb.WriteString(services.Footer(len(messages)))
	sb.WriteString("\n")
	return sb.String()
}
