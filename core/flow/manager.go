package flow

import "sync"

// Manager keeps sessions in memory, keyed by chat id. Sessions are created on
// first contact and live until the process exits.
type Manager struct {
	mu       sync.RWMutex
	sessions map[int64]*Session
}

// NewManager constructs an empty in-memory manager.
func NewManager() *Manager {
	return &Manager{sessions: make(map[int64]*Session)}
}

// Get returns a copy of the chat's session, creating an idle one on first contact.
func (m *Manager) Get(chatID int64) Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return *m.session(chatID)
}

// State returns the FSM state of the chat, or StateIdle if it was never seen.
func (m *Manager) State(chatID int64) State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if sess, ok := m.sessions[chatID]; ok {
		return sess.State
	}
	return StateIdle
}

// SetState moves the chat to st.
func (m *Manager) SetState(chatID int64, st State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(chatID).State = st
}

// SetPendingText stores the drafted task text.
func (m *Manager) SetPendingText(chatID int64, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(chatID).PendingText = text
}

// SetIntent records the outstanding number prompt.
func (m *Manager) SetIntent(chatID int64, in Intent) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.session(chatID).Intent = in
}

// Reset returns the chat to idle and clears the draft. The session itself is kept.
func (m *Manager) Reset(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	sess := m.session(chatID)
	sess.State = StateIdle
	sess.PendingText = ""
}

// Len returns the number of known chats.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// session returns the live session for chatID. Caller holds mu for writing.
func (m *Manager) session(chatID int64) *Session {
	sess, ok := m.sessions[chatID]
	if !ok {
		sess = &Session{State: StateIdle}
		m.sessions[chatID] = sess
	}
	return sess
}
