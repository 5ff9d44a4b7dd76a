package preview

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
)

// Hub tracks the live sessions and groups them into rooms by the diagram
// they are viewing, so viewers of a diagram learn how many others watch it.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]*Session            // sessionID -> session
	rooms    map[string]map[string]*Session // diagram -> sessionID -> session
	watching map[string]string              // sessionID -> diagram

	diagrams   func() []string
	register   chan registration
	unregister chan *Session
	done       chan struct{}
}

// NewHub creates a hub; diagrams lists the names announced in welcomes.
func NewHub(diagrams func() []string) *Hub {
	return &Hub{
		sessions:   make(map[string]*Session),
		rooms:      make(map[string]map[string]*Session),
		watching:   make(map[string]string),
		diagrams:   diagrams,
		register:   make(chan registration),
		unregister: make(chan *Session),
		done:       make(chan struct{}),
	}
}

// Run processes registrations until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case reg := <-h.register:
			h.addSession(reg.session)
			close(reg.added)
		case s := <-h.unregister:
			h.removeSession(s)
		case <-ctx.Done():
			return
		}
	}
}

type registration struct {
	session *Session
	added   chan struct{}
}

// Register adds s and queues its welcome. It returns once s is tracked,
// so messages s handles afterwards see it as a live session.
func (h *Hub) Register(s *Session) {
	reg := registration{session: s, added: make(chan struct{})}
	select {
	case h.register <- reg:
	case <-h.done:
		return
	}
	select {
	case <-reg.added:
	case <-h.done:
	}
}

func (h *Hub) Unregister(s *Session) {
	select {
	case h.unregister <- s:
	case <-h.done:
	}
}

// Count returns the number of live sessions.
func (h *Hub) Count() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}

// Viewers returns the number of sessions viewing diagram.
func (h *Hub) Viewers(diagram string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[diagram])
}

func (h *Hub) addSession(s *Session) {
	h.mu.Lock()
	h.sessions[s.ID] = s
	h.mu.Unlock()

	var names []string
	if h.diagrams != nil {
		names = h.diagrams()
	}
	payload, _ := json.Marshal(WelcomePayload{SessionID: s.ID, Diagrams: names})
	s.Send(&Message{Type: TypeWelcome, SessionID: s.ID, Payload: payload})

	slog.Info("session joined", "session", s.ID)
}

func (h *Hub) removeSession(s *Session) {
	h.mu.Lock()
	if _, ok := h.sessions[s.ID]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.sessions, s.ID)
	left := h.leaveLocked(s)
	close(s.send)
	h.broadcastViewersLocked(left)
	h.mu.Unlock()

	slog.Info("session left", "session", s.ID)
}

// watch moves s into the room of diagram and tells the room's viewers
// the new count.
func (h *Hub) watch(s *Session, diagram string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.sessions[s.ID]; !ok {
		return
	}
	left := h.leaveLocked(s)
	room, ok := h.rooms[diagram]
	if !ok {
		room = make(map[string]*Session)
		h.rooms[diagram] = room
	}
	room[s.ID] = s
	h.watching[s.ID] = diagram

	if left != diagram {
		h.broadcastViewersLocked(left)
	}
	h.broadcastViewersLocked(diagram)
}

// leaveLocked removes s from its room and returns the room's diagram.
func (h *Hub) leaveLocked(s *Session) string {
	diagram, ok := h.watching[s.ID]
	if !ok {
		return ""
	}
	delete(h.watching, s.ID)
	room := h.rooms[diagram]
	delete(room, s.ID)
	if len(room) == 0 {
		delete(h.rooms, diagram)
	}
	return diagram
}

// broadcastViewersLocked must run with h.mu held so no session's send
// channel is closed underneath it.
func (h *Hub) broadcastViewersLocked(diagram string) {
	room := h.rooms[diagram]
	if diagram == "" || len(room) == 0 {
		return
	}
	payload, _ := json.Marshal(ViewersPayload{Diagram: diagram, Count: len(room)})
	for _, s := range room {
		s.Send(&Message{Type: TypeViewers, SessionID: s.ID, Payload: payload})
	}
}
