package debounce

import "time"

// Debouncer wraps a single callback so repeated Trigger calls within the
// delay collapse into one trailing call.
type Debouncer struct {
	group *Group[struct{}]
	fn    func()
}

// New returns a Debouncer for fn.
func New(delay time.Duration, fn func(), options ...Option) *Debouncer {
	return &Debouncer{
		group: NewGroup[struct{}](delay, options...),
		fn:    fn,
	}
}

// Trigger restarts the delay window.
func (d *Debouncer) Trigger() {
	if d == nil || d.fn == nil {
		return
	}
	d.group.Schedule(struct{}{}, d.fn)
}

// Cancel drops the pending call, if any.
func (d *Debouncer) Cancel() bool {
	return d.group.Cancel(struct{}{})
}

// Flush runs the pending call now.
func (d *Debouncer) Flush() bool {
	return d.group.Flush(struct{}{})
}

// Pending reports whether a trailing call is scheduled.
func (d *Debouncer) Pending() bool {
	return d.group.Pending(struct{}{})
}
