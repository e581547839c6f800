package diag

import (
	"fmt"
	"strings"
)

// Context pins a range of source text, identified by the source's name. Parse
// and evaluation errors carry one so that they can be shown with the
// offending text excerpted.
type Context struct {
	Name   string
	Source string
	Ranging

	excerptCache *excerpt
}

// NewContext creates a Context for the given range of the named source.
func NewContext(name, source string, r Ranger) *Context {
	return &Context{Name: name, Source: source, Ranging: r.Range()}
}

// excerpt is the source text around the range, cut at line boundaries.
type excerpt struct {
	// Text on the same line before the range, possibly empty.
	head string
	// The ranged text itself, with a single trailing newline stripped.
	body string
	// Text on the same line after the range; empty when the range ended the
	// line itself.
	tail string

	// 1-based line numbers of the first and last line of body.
	firstLine, lastLine int
}

// Escape codes wrapping the excerpt body, and the marker shown when the
// range is empty.
var (
	bodyStart   = "\033[1;4m"
	bodyEnd     = "\033[m"
	emptyMarker = "^"
)

func (c *Context) excerpt() *excerpt {
	if c.excerptCache != nil {
		return c.excerptCache
	}

	before := c.Source[:c.From]
	body := c.Source[c.From:c.To]
	after := c.Source[c.To:]

	first := strings.Count(before, "\n") + 1
	head := before[strings.LastIndexByte(before, '\n')+1:]

	var tail string
	if strings.HasSuffix(body, "\n") {
		body = body[:len(body)-1]
	} else if i := strings.IndexByte(after, '\n'); i >= 0 {
		tail = after[:i]
	} else {
		tail = after
	}

	c.excerptCache = &excerpt{
		head: head, body: body, tail: tail,
		firstLine: first, lastLine: first + strings.Count(body, "\n"),
	}
	return c.excerptCache
}

// Show renders the context with the ranged text underlined, putting the
// excerpt on its own line.
func (c *Context) Show(indent string) string {
	if err := c.validRange(); err != nil {
		return err.Error()
	}
	return c.Name + ", " + c.lineDesc() + "\n" + indent + c.showExcerpt(indent)
}

// ShowCompact is like Show but keeps the position description and the
// excerpt on one line.
func (c *Context) ShowCompact(indent string) string {
	if err := c.validRange(); err != nil {
		return err.Error()
	}
	desc := c.Name + ", " + c.lineDesc() + " "
	// Continuation lines align under the start of the excerpt.
	return desc + c.showExcerpt(indent+strings.Repeat(" ", len(desc)))
}

func (c *Context) validRange() error {
	if c.From == -1 {
		return fmt.Errorf("%s, unknown position", c.Name)
	}
	if c.From < 0 || c.To > len(c.Source) || c.From > c.To {
		return fmt.Errorf("%s, invalid position %d-%d", c.Name, c.From, c.To)
	}
	return nil
}

func (c *Context) lineDesc() string {
	e := c.excerpt()
	if e.firstLine == e.lastLine {
		return fmt.Sprintf("line %d:", e.firstLine)
	}
	return fmt.Sprintf("line %d-%d:", e.firstLine, e.lastLine)
}

func (c *Context) showExcerpt(indent string) string {
	e := c.excerpt()

	body := e.body
	if body == "" {
		body = emptyMarker
	}

	var sb strings.Builder
	sb.WriteString(e.head)
	for i, line := range strings.Split(body, "\n") {
		if i > 0 {
			sb.WriteByte('\n')
			sb.WriteString(indent)
		}
		sb.WriteString(bodyStart)
		sb.WriteString(line)
		sb.WriteString(bodyEnd)
	}
	sb.WriteString(e.tail)
	return sb.String()
}
