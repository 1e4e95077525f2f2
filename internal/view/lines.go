package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/nibzard/tasklist-go/internal/todo"
)

// LineSurface prints one line per surface update. CLI commands use it.
//
//	[ ] 1735689600000  Buy milk
//	[x] 1735689600000
//	-   1735689600000
type LineSurface struct {
	w io.Writer
}

// NewLineSurface returns a LineSurface writing to w.
func NewLineSurface(w io.Writer) *LineSurface {
	return &LineSurface{w: w}
}

// AppendRow prints the task.
func (l *LineSurface) AppendRow(t todo.Task) {
	fmt.Fprintf(l.w, "%s %d  %s\n", checkbox(t.Completed), t.ID, DisplayText(t.Text))
}

// SetCompleted prints the new state.
func (l *LineSurface) SetCompleted(id int64, completed bool) {
	fmt.Fprintf(l.w, "%s %d\n", checkbox(completed), id)
}

// RemoveRow prints the removal.
func (l *LineSurface) RemoveRow(id int64) {
	fmt.Fprintf(l.w, "-   %d\n", id)
}

func checkbox(completed bool) string {
	if completed {
		return "[x]"
	}
	return "[ ]"
}

// DisplayText keeps a row on one line. Stored text can be empty when a
// hand-edited record lacks it.
func DisplayText(text string) string {
	text = strings.ReplaceAll(text, "\r", " ")
	text = strings.ReplaceAll(text, "\n", " ")
	if strings.TrimSpace(text) == "" {
		return "(untitled)"
	}
	return text
}
