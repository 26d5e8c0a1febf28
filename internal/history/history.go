// Package history tracks which photos were viewed this session so the
// viewer can step back to them. Nothing is persisted across sessions.
package history

// Manager manages the in-memory trail of viewed photo indices.
type Manager struct {
	stack   []int
	current int
	cap     int
}

// NewManager creates a Manager. A capacity of 0 disables history;
// negative capacity is treated as 0.
func NewManager(capacity int) *Manager {
	if capacity < 0 {
		capacity = 0
	}
	return &Manager{
		stack:   make([]int, 0, capacity),
		current: -1,
		cap:     capacity,
	}
}

// Record appends a viewed photo index. Recording after going back
// discards the forward part of the trail, and recording the index
// already at the cursor is a no-op.
func (m *Manager) Record(index int) {
	if m.cap == 0 {
		return
	}
	if m.current != -1 && m.current < len(m.stack)-1 {
		m.stack = m.stack[:m.current+1]
	}
	if m.current >= 0 && m.stack[m.current] == index {
		return
	}
	m.stack = append(m.stack, index)
	if len(m.stack) > m.cap {
		m.stack = m.stack[len(m.stack)-m.cap:]
	}
	m.current = len(m.stack) - 1
}

// Back moves the cursor to the previously viewed index. ok is false at
// the start of the trail.
func (m *Manager) Back() (index int, ok bool) {
	if m.cap == 0 || m.current <= 0 {
		return 0, false
	}
	m.current--
	return m.stack[m.current], true
}

// Forward moves the cursor forward again after Back. ok is false at the
// end of the trail.
func (m *Manager) Forward() (index int, ok bool) {
	if m.cap == 0 || m.current == -1 || m.current >= len(m.stack)-1 {
		return 0, false
	}
	m.current++
	return m.stack[m.current], true
}

// Clear resets the trail. Used when a fresh catalog replaces the one
// the recorded indices referred to.
func (m *Manager) Clear() {
	if m.cap == 0 {
		return
	}
	m.stack = make([]int, 0, m.cap)
	m.current = -1
}
