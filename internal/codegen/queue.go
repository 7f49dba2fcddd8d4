package codegen

import "strings"

// Strategy is the indentation unit of one render pass.
type Strategy struct {
	Unit string
}

var (
	TwoSpaces  = Strategy{Unit: "  "}
	FourSpaces = Strategy{Unit: "    "}
)

// Spaces returns a strategy indenting by n spaces.
func Spaces(n int) Strategy {
	return Strategy{Unit: strings.Repeat(" ", n)}
}

type line struct {
	depth int
	text  string
}

// IndentationQueue accumulates lines under nested indentation scopes.
// The zero value is not usable; create one with NewQueue.
type IndentationQueue struct {
	strategy Strategy
	depth    int
	lines    []line
}

func NewQueue(strategy Strategy) *IndentationQueue {
	return &IndentationQueue{strategy: strategy}
}

// Strategy returns the indentation unit of the queue.
func (q *IndentationQueue) Strategy() Strategy {
	return q.strategy
}

// AddLine appends text at the current depth. Multi-line text is split and
// every line keeps its relative indentation.
func (q *IndentationQueue) AddLine(text string) {
	for _, l := range strings.Split(text, "\n") {
		q.lines = append(q.lines, line{depth: q.depth, text: l})
	}
}

func (q *IndentationQueue) AddEmptyLine() {
	q.lines = append(q.lines, line{depth: q.depth})
}

// Indented runs block one level deeper. The depth is restored on every
// exit path of block, including panics.
func (q *IndentationQueue) Indented(block func()) {
	q.depth++
	defer func() { q.depth-- }()
	block()
}

// Depth is the current indentation depth.
func (q *IndentationQueue) Depth() int {
	return q.depth
}

// Append adds all lines of other, nested under the current depth.
func (q *IndentationQueue) Append(other *IndentationQueue) {
	for _, l := range other.lines {
		q.lines = append(q.lines, line{depth: q.depth + l.depth, text: l.text})
	}
}

// IsSingleLine reports whether the queue holds at most one line.
func (q *IndentationQueue) IsSingleLine() bool {
	return len(q.lines) <= 1
}

// Render joins the lines, each prefixed with its indentation. Empty lines
// carry no indentation.
func (q *IndentationQueue) Render() string {
	var sb strings.Builder
	for i, l := range q.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if l.text == "" {
			continue
		}
		sb.WriteString(strings.Repeat(q.strategy.Unit, l.depth))
		sb.WriteString(l.text)
	}
	return sb.String()
}

// RenderSingleLine collapses the queue to one line: lines are trimmed and
// joined with single spaces, empty lines are dropped.
func (q *IndentationQueue) RenderSingleLine() string {
	parts := make([]string, 0, len(q.lines))
	for _, l := range q.lines {
		if t := strings.TrimSpace(l.text); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}
