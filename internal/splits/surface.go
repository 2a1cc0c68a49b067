package splits

// SurfaceState is the open/closed state of the split-assignment surface
// (the menu or popover the dashboard shell renders the tri-state list in).
type SurfaceState int

const (
	SurfaceClosed SurfaceState = iota
	SurfaceOpen
	SurfaceOpenPendingReopen
)

// String returns the lowercase name of the state.
func (s SurfaceState) String() string {
	switch s {
	case SurfaceOpen:
		return "open"
	case SurfaceOpenPendingReopen:
		return "open_pending_reopen"
	default:
		return "closed"
	}
}

// SurfaceStateMachine keeps the assignment surface open across a sequence of
// toggles. The underlying selection primitive auto-closes after any single
// action; a toggle is a repeatable multi-action, so the toggle handler calls
// MarkToggle before the primitive's auto-close fires, and AutoClose then
// consumes the pending flag instead of closing.
//
// Not safe for concurrent use; one machine belongs to one interaction
// session on the event loop that drives it.
type SurfaceStateMachine struct {
	state SurfaceState
}

// State returns the current state.
func (m *SurfaceStateMachine) State() SurfaceState {
	return m.state
}

// IsOpen reports whether the surface should currently be rendered open.
func (m *SurfaceStateMachine) IsOpen() bool {
	return m.state == SurfaceOpen || m.state == SurfaceOpenPendingReopen
}

// Open transitions Closed -> Open. Opening an already-open surface is a no-op.
func (m *SurfaceStateMachine) Open() {
	if m.state == SurfaceClosed {
		m.state = SurfaceOpen
	}
}

// MarkToggle records that a toggle action occurred, so the next auto-close
// event is swallowed. Only meaningful while the surface is open.
func (m *SurfaceStateMachine) MarkToggle() {
	if m.state == SurfaceOpen {
		m.state = SurfaceOpenPendingReopen
	}
}

// AutoClose handles the primitive's implicit close-after-action event. If a
// toggle marked the surface to stay open, the pending flag is consumed and
// the surface re-asserts Open; otherwise the surface closes. It returns true
// when the surface remains open.
func (m *SurfaceStateMachine) AutoClose() bool {
	if m.state == SurfaceOpenPendingReopen {
		m.state = SurfaceOpen
		return true
	}
	m.state = SurfaceClosed
	return false
}

// Dismiss closes the surface unconditionally (explicit user dismissal, e.g.
// focus loss with no pending toggle, or selecting nothing).
func (m *SurfaceStateMachine) Dismiss() {
	m.state = SurfaceClosed
}
