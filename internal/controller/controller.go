// Package controller owns the selection and launch state machine. It knows
// nothing about terminals or rendering; the UI layer translates key and
// mouse input into the events below and renders whatever the controller
// holds.
package controller

import (
	"errors"

	"github.com/fling-dev/fling/internal/filter"
	"github.com/fling-dev/fling/internal/launch"
	"github.com/fling-dev/fling/internal/log"
	"github.com/fling-dev/fling/internal/registry"
)

// ErrNoSelection is returned by Confirm when nothing is selected.
var ErrNoSelection = errors.New("no entry selected")

// State is the controller's lifecycle phase.
type State int

const (
	// StateIdle: no entries loaded yet (background load in flight).
	StateIdle State = iota
	// StateFiltering: entries loaded, accepting input.
	StateFiltering
	// StateLaunching: a spawn is in progress.
	StateLaunching
	// StateDone: session over, either launched or cancelled.
	StateDone
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateFiltering:
		return "filtering"
	case StateLaunching:
		return "launching"
	case StateDone:
		return "done"
	default:
		return "unknown"
	}
}

// Options tune navigation behavior.
type Options struct {
	// WrapNavigation makes Move wrap around at list ends instead of
	// saturating.
	WrapNavigation bool
	// PageSize is the row count Page jumps by. Zero means 10.
	PageSize int
}

// Controller drives one launcher session.
type Controller struct {
	launcher launch.Func
	opts     Options

	state    State
	items    []registry.Item
	results  []registry.Item
	query    string
	selected int // index into results, -1 when none
	lastErr  error
}

// New returns a controller in StateIdle. The launcher func is invoked by
// Confirm; tests inject a recorder.
func New(launcher launch.Func, opts Options) *Controller {
	if opts.PageSize <= 0 {
		opts.PageSize = 10
	}
	return &Controller{
		launcher: launcher,
		opts:     opts,
		state:    StateIdle,
		selected: -1,
	}
}

// SetItems replaces the full entry set, moving out of StateIdle. The current
// query is re-applied and the selection follows the previously selected
// entry ID when it survives the swap.
func (c *Controller) SetItems(items []registry.Item) {
	c.items = items
	if c.state == StateIdle {
		c.state = StateFiltering
	}
	c.refilter()
}

// SetQuery updates the filter query and recomputes results. A stale launch
// error is cleared by new input.
func (c *Controller) SetQuery(query string) {
	if query == c.query {
		return
	}
	c.query = query
	c.lastErr = nil
	c.refilter()
	log.Debug(log.CatFilter, "query applied", "query", query, "results", len(c.results))
}

// refilter recomputes results for the current query, keeping the selection
// on the same entry when possible and clamping otherwise.
func (c *Controller) refilter() {
	var keepID string
	if c.selected >= 0 && c.selected < len(c.results) {
		keepID = c.results[c.selected].ID
	}

	c.results = filter.Apply(c.items, c.query)

	c.selected = -1
	if keepID != "" {
		for i, item := range c.results {
			if item.ID == keepID {
				c.selected = i
				break
			}
		}
	}
	if c.selected < 0 && len(c.results) > 0 {
		c.selected = 0
	}
}

// Move shifts the selection by delta rows, saturating at the ends unless
// wraparound is configured.
func (c *Controller) Move(delta int) {
	n := len(c.results)
	if n == 0 || c.selected < 0 {
		return
	}
	next := c.selected + delta
	if c.opts.WrapNavigation {
		next = ((next % n) + n) % n
	} else if next < 0 {
		next = 0
	} else if next >= n {
		next = n - 1
	}
	c.selected = next
}

// Page moves the selection by a full page in the given direction (negative
// is up).
func (c *Controller) Page(direction int) {
	if direction < 0 {
		c.Move(-c.opts.PageSize)
	} else if direction > 0 {
		c.Move(c.opts.PageSize)
	}
}

// Select sets the selection to an absolute result index (mouse clicks).
// Out-of-range indices are ignored.
func (c *Controller) Select(index int) {
	if index >= 0 && index < len(c.results) {
		c.selected = index
	}
}

// Confirm launches the selected entry. On success the controller is Done and
// the caller should exit. On failure the error is retained, the state
// returns to Filtering, and results and selection are untouched.
func (c *Controller) Confirm() error {
	item, ok := c.Selected()
	if !ok {
		return ErrNoSelection
	}

	c.state = StateLaunching
	if err := c.launcher(item.Entry); err != nil {
		log.ErrorErr(log.CatLaunch, "launch failed", err, "id", item.ID)
		c.lastErr = err
		c.state = StateFiltering
		return err
	}

	c.state = StateDone
	return nil
}

// Cancel ends the session without launching.
func (c *Controller) Cancel() {
	c.state = StateDone
}

// State returns the current lifecycle phase.
func (c *Controller) State() State { return c.state }

// Query returns the active filter query.
func (c *Controller) Query() string { return c.query }

// Results returns the current filtered entries. The slice is owned by the
// controller; callers must not mutate it.
func (c *Controller) Results() []registry.Item { return c.results }

// Selected returns the currently selected entry, if any.
func (c *Controller) Selected() (registry.Item, bool) {
	if c.selected < 0 || c.selected >= len(c.results) {
		return registry.Item{}, false
	}
	return c.results[c.selected], true
}

// SelectedIndex returns the selection's index into Results, or -1.
func (c *Controller) SelectedIndex() int { return c.selected }

// LaunchErr returns the most recent spawn failure, cleared by the next query
// change.
func (c *Controller) LaunchErr() error { return c.lastErr }
