package pipeline

import "fmt"

// ChapterContext tracks the current chapter and its image counter.
// Diagrams and images share the counter; it only moves on success.
type ChapterContext struct {
	id       string
	counter  int
	chapters int
	started  bool
}

// Enter switches to chapter id. On a change, including the first call,
// the counter restarts at 1 and Enter reports true.
func (c *ChapterContext) Enter(id string) bool {
	if c.started && c.id == id {
		return false
	}
	c.started = true
	c.id = id
	c.counter = 1
	c.chapters++
	return true
}

// ID returns the current chapter id.
func (c *ChapterContext) ID() string { return c.id }

// Counter returns the sequence number the next artifact will use.
func (c *ChapterContext) Counter() int { return c.counter }

// Chapters returns how many chapter changes have been seen.
func (c *ChapterContext) Chapters() int { return c.chapters }

// ImageName returns the artifact file name for the current counter, e.g. "01-2.png".
func (c *ChapterContext) ImageName() string {
	return fmt.Sprintf("%s-%d.png", c.id, c.counter)
}

// Advance confirms the current artifact and moves to the next sequence number.
func (c *ChapterContext) Advance() {
	c.counter++
}

// Placeholder returns the token that stands in for an artifact in the merged text.
func Placeholder(name string) string {
	return "{" + name + "}"
}
