package editor

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"text/template"

	"github.com/BurntSushi/toml"

	"github.com/amonks/neotodo/todo"
)

// TodoData represents the data used to render the TOML template.
type TodoData struct {
	// IsUpdate is true when editing an existing todo.
	IsUpdate bool
	// ID is the todo ID (only for updates).
	ID string
	Text     string
	Priority string
	// Completed is only offered for updates.
	Completed   bool
	DueDate     string
	Description string
}

// DefaultCreateData returns TodoData with default values for creating a new todo.
func DefaultCreateData() TodoData {
	return TodoData{Priority: string(todo.PriorityMedium)}
}

// DataFromTodo creates TodoData from an existing todo for editing.
func DataFromTodo(t todo.Todo) TodoData {
	return TodoData{
		IsUpdate:    true,
		ID:          t.ID.String(),
		Text:        t.Text,
		Priority:    string(t.Priority),
		Completed:   t.Completed,
		DueDate:     todo.FormatDueDate(t.DueDate),
		Description: t.Description,
	}
}

var todoTemplate = template.Must(template.New("todo").Parse(`{{- if .IsUpdate }}# editing {{ .ID }}
{{ end -}}
text = {{ printf "%q" .Text }}
priority = {{ printf "%q" .Priority }} # low, medium, high
due = {{ printf "%q" .DueDate }} # YYYY-MM-DD, or empty
{{- if .IsUpdate }}
completed = {{ .Completed }}
{{- end }}
---
{{ .Description }}
`))

// RenderTodoTOML renders the todo data as a TOML string for editing.
func RenderTodoTOML(data TodoData) (string, error) {
	var buf bytes.Buffer
	if err := todoTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

// ParsedTodo represents the parsed result from the TOML editor output.
type ParsedTodo struct {
	Text        string        `toml:"text"`
	Priority    todo.Priority `toml:"priority"`
	Due         string        `toml:"due"`
	Completed   *bool         `toml:"completed"`
	Description string        `toml:"-"`
}

// ParseTodoTOML parses the TOML content from the editor.
func ParseTodoTOML(content string) (*ParsedTodo, error) {
	frontmatter, body := splitFrontmatter(content)

	var parsed ParsedTodo
	if _, err := toml.Decode(frontmatter, &parsed); err != nil {
		return nil, fmt.Errorf("parse TOML: %w", err)
	}
	parsed.Text = strings.TrimSpace(parsed.Text)
	parsed.Description = strings.TrimSpace(body)

	if err := todo.ValidateText(parsed.Text); err != nil {
		return nil, err
	}
	priority, err := todo.ParsePriority(string(parsed.Priority))
	if err != nil {
		return nil, err
	}
	parsed.Priority = priority
	if _, err := todo.ParseDueDate(parsed.Due); err != nil {
		return nil, err
	}

	return &parsed, nil
}

func splitFrontmatter(content string) (string, string) {
	content = strings.TrimLeft(content, "\n")
	if content == "" {
		return "", ""
	}

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		if strings.TrimSpace(line) == "---" {
			return strings.Join(lines[:i], "\n"), strings.Join(lines[i+1:], "\n")
		}
	}
	return content, ""
}

// EditTodo opens the editor for a todo and returns the parsed result.
// Pass nil to describe a new todo.
func EditTodo(existing *todo.Todo) (*ParsedTodo, error) {
	data := DefaultCreateData()
	if existing != nil {
		data = DataFromTodo(*existing)
	}
	return EditTodoWithData(data)
}

// EditTodoWithData opens the editor with pre-populated data and returns the parsed result.
func EditTodoWithData(data TodoData) (*ParsedTodo, error) {
	content, err := RenderTodoTOML(data)
	if err != nil {
		return nil, err
	}

	tmpfile, err := os.CreateTemp("", "neotodo-*.md")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmpfile.Name()
	defer os.Remove(tmpPath)

	if _, err := tmpfile.WriteString(content); err != nil {
		tmpfile.Close()
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	if err := tmpfile.Close(); err != nil {
		return nil, fmt.Errorf("close temp file: %w", err)
	}

	if err := Edit(tmpPath); err != nil {
		return nil, err
	}

	edited, err := os.ReadFile(tmpPath)
	if err != nil {
		return nil, fmt.Errorf("read edited file: %w", err)
	}

	return ParseTodoTOML(string(edited))
}

// ToAddOptions converts a ParsedTodo to todo.AddOptions.
func (p *ParsedTodo) ToAddOptions() todo.AddOptions {
	due, _ := todo.ParseDueDate(p.Due)
	return todo.AddOptions{
		Description: p.Description,
		Priority:    todo.PriorityPtr(p.Priority),
		DueDate:     due,
	}
}

// ToPatch converts a ParsedTodo to a todo.Patch that sets every field it holds.
func (p *ParsedTodo) ToPatch() todo.Patch {
	patch := todo.Patch{
		Text:        &p.Text,
		Description: &p.Description,
		Priority:    &p.Priority,
		Completed:   p.Completed,
	}
	due, _ := todo.ParseDueDate(p.Due)
	if due == nil {
		patch.ClearDueDate = true
	} else {
		patch.DueDate = due
	}
	return patch
}
