package preview

import (
	"encoding/json"

	"github.com/chalkgo/chalk/internal/engine"
)

// Message is the envelope of every frame in both directions. Replies carry
// the Seq of the request they answer.
type Message struct {
	Type      string          `json:"type"`
	SessionID string          `json:"sessionId,omitempty"`
	Seq       int64           `json:"seq,omitempty"`
	Payload   json.RawMessage `json:"payload,omitempty"`
}

const (
	// Client → server
	TypeLoad    = "load"
	TypeHitTest = "hitTest"
	TypeBounds  = "bounds"
	TypeSelect  = "select"

	// Server → client
	TypeWelcome   = "welcome"
	TypeCommands  = "commands"
	TypeHit       = "hit"
	TypeBoundsRes = "bounds"
	TypeSelection = "selection"
	TypeViewers   = "viewers"
	TypeError     = "error"
)

type LoadPayload struct {
	Diagram string `json:"diagram"`
}

type HitTestPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type BoundsPayload struct {
	Name string `json:"name"`
}

type SelectPayload struct {
	Items []string `json:"items"`
}

type WelcomePayload struct {
	SessionID string   `json:"sessionId"`
	Diagrams  []string `json:"diagrams"`
}

type CommandsPayload struct {
	Diagram  string               `json:"diagram"`
	Bounds   engine.Rect          `json:"bounds"`
	Commands []engine.DrawCommand `json:"commands"`
}

type BoundsResultPayload struct {
	Name   string      `json:"name"`
	Found  bool        `json:"found"`
	Bounds engine.Rect `json:"bounds"`
}

type SelectionPayload struct {
	Items  []string    `json:"items"`
	Bounds engine.Rect `json:"bounds"`
}

type ViewersPayload struct {
	Diagram string `json:"diagram"`
	Count   int    `json:"count"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
