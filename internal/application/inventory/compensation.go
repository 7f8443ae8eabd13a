package inventory

// Compensator collects undo steps for a multi-entity orchestration. When a
// later step fails, Run applies the recorded steps in reverse order so
// in-memory aggregates return to their pre-orchestration state before the
// surrounding transaction rolls back.
type Compensator struct {
	steps []func()
}

// NewCompensator creates an empty compensator
func NewCompensator() *Compensator {
	return &Compensator{steps: make([]func(), 0, 4)}
}

// Add records an undo step
func (c *Compensator) Add(undo func()) {
	c.steps = append(c.steps, undo)
}

// Run executes all undo steps in reverse order and clears the stack
func (c *Compensator) Run() {
	for i := len(c.steps) - 1; i >= 0; i-- {
		c.steps[i]()
	}
	c.steps = c.steps[:0]
}

// Discard drops the recorded steps after a successful commit
func (c *Compensator) Discard() {
	c.steps = c.steps[:0]
}
