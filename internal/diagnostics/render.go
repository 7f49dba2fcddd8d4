package diagnostics

import (
	"fmt"
	"strings"
)

const (
	colorRed   = "\033[31m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorReset = "\033[0m"
)

// Render formats the error for a terminal. When source is non-empty the
// offending line is echoed under the message with a caret at the column.
func Render(e *DiagnosticError, source string, color bool) string {
	var sb strings.Builder
	if color {
		sb.WriteString(colorBold + colorRed)
	}
	sb.WriteString(fmt.Sprintf("error[%s]", e.Code))
	if color {
		sb.WriteString(colorReset + colorBold)
	}
	sb.WriteString(": " + e.Message())
	if color {
		sb.WriteString(colorReset)
	}
	sb.WriteString("\n")

	if e.Token.Line <= 0 {
		return sb.String()
	}
	loc := fmt.Sprintf("%d:%d", e.Token.Line, e.Token.Column)
	if e.File != "" {
		loc = e.File + ":" + loc
	}
	if color {
		sb.WriteString(colorDim)
	}
	sb.WriteString("  --> " + loc + "\n")
	if color {
		sb.WriteString(colorReset)
	}

	lines := strings.Split(source, "\n")
	if e.Token.Line > len(lines) {
		return sb.String()
	}
	text := lines[e.Token.Line-1]
	sb.WriteString("   | " + text + "\n")
	col := e.Token.Column
	if col < 1 {
		col = 1
	}
	sb.WriteString("   | " + strings.Repeat(" ", col-1) + "^\n")
	return sb.String()
}
