// Package views holds the chat page template and the view model it is
// rendered from.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"strconv"

	"chat-dashboard/models"
	"chat-dashboard/services"

	"github.com/samber/lo"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// PageTemplate is the name gin renders the page with
const PageTemplate = "index.tmpl"

const (
	Title        = "Chat Dashboard"
	Placeholder  = "Say something..."
	EmptyWarning = "Message cannot be empty!"
)

// Step is one of the three tutorial snapshots of the page
type Step int

const (
	StepBasic Step = iota + 1
	StepTimestamps
	StepStyled
)

var subtitles = map[Step]string{
	StepBasic:      "A simple chat app",
	StepTimestamps: "With timestamps and newest-first ordering",
	StepStyled:     "With styled message bubbles",
}

// ParseStep reads a ?step= value, falling back to def when it is missing
// or out of range
func ParseStep(raw string, def Step) Step {
	n, err := strconv.Atoi(raw)
	if err != nil || n < int(StepBasic) || n > int(StepStyled) {
		return def
	}
	return Step(n)
}

// RoleOption is one choice of the role selector
type RoleOption struct {
	Value   models.Role
	Label   string
	Checked bool
}

var roleOptions = []RoleOption{
	{Value: models.RoleUser, Label: "User"},
	{Value: models.RoleAssistant, Label: "Assistant"},
}

// Entry is one line of the plain lists of steps 1 and 2
type Entry struct {
	Number    int
	Timestamp string
	Text      string
}

// Page is everything the template needs for one full render
type Page struct {
	Title       string
	Subtitle    string
	Step        Step
	Placeholder string
	Warning     string

	Bubbles      []models.Bubble
	Entries      []Entry
	Empty        bool
	EmptyNotice  string
	Roles        []RoleOption
	PendingInput string
	Footer       string
	ShowClear    bool

	TimestampColor string
}

// NewPage computes the view of a session snapshot for the given step
func NewPage(snap services.Snapshot, step Step, warning string) Page {
	count := len(snap.Messages)
	page := Page{
		Title:          Title,
		Subtitle:       subtitles[step],
		Step:           step,
		Placeholder:    Placeholder,
		Warning:        warning,
		Empty:          count == 0,
		EmptyNotice:    "💭 No messages yet. Start the conversation!",
		PendingInput:   snap.PendingInput,
		Footer:         fmt.Sprintf("Messages in chat: %d", count),
		ShowClear:      step != StepBasic,
		TimestampColor: services.TimestampColor,
	}

	switch step {
	case StepBasic:
		page.EmptyNotice = "No messages yet. Start the conversation!"
		page.Entries = lo.Map(snap.Messages, func(m models.Message, i int) Entry {
			return Entry{Number: i + 1, Text: m.Text}
		})
	case StepTimestamps:
		page.Entries = lo.Map(services.NewestFirst(snap.Messages), func(b models.Bubble, _ int) Entry {
			return Entry{Timestamp: b.Timestamp, Text: b.Text}
		})
	default:
		page.Bubbles = services.NewestFirst(snap.Messages)
		page.Footer = "📊 " + services.Footer(count)
		page.Roles = lo.Map(roleOptions, func(o RoleOption, _ int) RoleOption {
			o.Checked = o.Value == snap.SelectedRole
			return o
		})
		if !lo.ContainsBy(page.Roles, func(o RoleOption) bool { return o.Checked }) {
			page.Roles[1].Checked = true
		}
	}
	return page
}

// Templates parses the embedded page templates
func Templates() (*template.Template, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}
