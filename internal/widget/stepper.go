// Package widget holds the view state behind the two interactive page widgets:
// the workflow stepper and the process visual switch.
package widget

import (
	"errors"
	"fmt"
	"time"
)

// ErrStepOutOfRange is returned when a click targets a node outside the list.
var ErrStepOutOfRange = errors.New("step out of range")

// DefaultRevertDelay is how long a non-final node stays highlighted.
const DefaultRevertDelay = time.Second

// Node is one step of the workflow demo.
type Node struct {
	ID          int
	Label       string
	Title       string
	Description string
	Icon        string
	Tone        string
}

// WorkflowNodes is the fixed five-node automation pipeline shown on the site.
var WorkflowNodes = []Node{
	{ID: 0, Label: "Trigger", Title: "Webhook Received", Description: "HTTP POST request", Icon: "bolt", Tone: "accent"},
	{ID: 1, Label: "Process", Title: "Parse & Filter Data", Description: "Extract fields", Icon: "cog", Tone: "stone"},
	{ID: 2, Label: "API Call", Title: "Slack API", Description: "POST /chat.postMessage", Icon: "external", Tone: "stone"},
	{ID: 3, Label: "Transform", Title: "Format Response", Description: "Map to schema", Icon: "arrows", Tone: "stone"},
	{ID: 4, Label: "Complete", Title: "Workflow Success", Description: "Notification sent", Icon: "check", Tone: "ink"},
}

// Stepper tracks the active node and the completed prefix of a fixed node list.
// Clicking node i activates it and completes 0..i; unless i is the last node,
// the active highlight lapses after the revert delay. The zero value is not usable.
type Stepper struct {
	steps    int
	delay    time.Duration
	active   int
	through  int
	revertAt time.Time
}

// NewStepper creates a stepper over steps nodes with nothing active or completed.
func NewStepper(steps int, delay time.Duration) *Stepper {
	if delay <= 0 {
		delay = DefaultRevertDelay
	}
	return &Stepper{steps: steps, delay: delay, active: -1, through: -1}
}

// Steps returns the number of nodes.
func (s *Stepper) Steps() int {
	return s.steps
}

// Delay returns the revert delay.
func (s *Stepper) Delay() time.Duration {
	return s.delay
}

// Click activates node i at time now. Clicking the node that is already active is a no-op.
func (s *Stepper) Click(i int, now time.Time) error {
	if i < 0 || i >= s.steps {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, i)
	}
	if current, ok := s.Active(now); ok && current == i {
		return nil
	}

	s.active = i
	s.through = i
	if i < s.steps-1 {
		s.revertAt = now.Add(s.delay)
	} else {
		s.revertAt = time.Time{}
	}
	return nil
}

// Restore puts the stepper in the settled state reached after a revert:
// nodes 0..through completed and nothing active. through = -1 clears everything.
func (s *Stepper) Restore(through int) error {
	if through < -1 || through >= s.steps {
		return fmt.Errorf("%w: %d", ErrStepOutOfRange, through)
	}
	s.active = -1
	s.through = through
	s.revertAt = time.Time{}
	return nil
}

// Active returns the highlighted node at time now, if any.
func (s *Stepper) Active(now time.Time) (int, bool) {
	if s.active < 0 {
		return -1, false
	}
	if !s.revertAt.IsZero() && !now.Before(s.revertAt) {
		return -1, false
	}
	return s.active, true
}

// Completed reports whether node i is in the completed prefix.
func (s *Stepper) Completed(i int) bool {
	return i >= 0 && i <= s.through
}

// CompletedThrough returns the last completed index, or -1.
func (s *Stepper) CompletedThrough() int {
	return s.through
}

// RevertAt returns when the current highlight lapses. ok is false when no
// revert is pending, which includes the last node being active.
func (s *Stepper) RevertAt() (time.Time, bool) {
	if s.active < 0 || s.revertAt.IsZero() {
		return time.Time{}, false
	}
	return s.revertAt, true
}

// StepView is the render state of one node.
type StepView struct {
	Node      Node
	Active    bool
	Completed bool
	Last      bool
}

// View pairs nodes with their state at time now. len(nodes) should equal Steps().
func (s *Stepper) View(nodes []Node, now time.Time) []StepView {
	active, hasActive := s.Active(now)
	views := make([]StepView, len(nodes))
	for i, node := range nodes {
		views[i] = StepView{
			Node:      node,
			Active:    hasActive && active == i,
			Completed: s.Completed(i),
			Last:      i == len(nodes)-1,
		}
	}
	return views
}
