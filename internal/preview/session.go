package preview

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/coder/websocket"

	"github.com/chalkgo/chalk/internal/engine"
)

const (
	writeWait  = 10 * time.Second
	pingPeriod = 30 * time.Second
	maxMsgSize = 64 * 1024
)

// Session is one websocket connection. It owns an engine, which only the
// read loop touches.
type Session struct {
	hub    *Hub
	conn   *websocket.Conn
	send   chan []byte
	engine *engine.Engine
	ID     string
}

func NewSession(hub *Hub, conn *websocket.Conn, eng *engine.Engine, id string) *Session {
	return &Session{
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, 256),
		engine: eng,
		ID:     id,
	}
}

func (s *Session) ReadPump(ctx context.Context) {
	defer func() {
		s.hub.Unregister(s)
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	s.conn.SetReadLimit(maxMsgSize)

	for {
		_, data, err := s.conn.Read(ctx)
		if err != nil {
			if websocket.CloseStatus(err) == websocket.StatusNormalClosure ||
				websocket.CloseStatus(err) == websocket.StatusGoingAway {
				return
			}
			slog.Debug("read error", "error", err, "session", s.ID)
			return
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			slog.Warn("invalid message", "error", err, "session", s.ID)
			s.sendError(0, "invalid message")
			continue
		}

		s.handle(&msg)
	}
}

func (s *Session) WritePump(ctx context.Context) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close(websocket.StatusNormalClosure, "")
	}()

	for {
		select {
		case message, ok := <-s.send:
			if !ok {
				return
			}

			writeCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Write(writeCtx, websocket.MessageText, message)
			cancel()
			if err != nil {
				slog.Debug("write error", "error", err, "session", s.ID)
				return
			}

		case <-ticker.C:
			pingCtx, cancel := context.WithTimeout(ctx, writeWait)
			err := s.conn.Ping(pingCtx)
			cancel()
			if err != nil {
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

func (s *Session) handle(msg *Message) {
	var err error
	switch msg.Type {
	case TypeLoad:
		err = s.handleLoad(msg)
	case TypeHitTest:
		err = s.handleHitTest(msg)
	case TypeBounds:
		err = s.handleBounds(msg)
	case TypeSelect:
		err = s.handleSelect(msg)
	default:
		err = fmt.Errorf("unknown message type %q", msg.Type)
	}
	if err != nil {
		slog.Warn("preview request failed", "type", msg.Type, "error", err, "session", s.ID)
		s.sendError(msg.Seq, err.Error())
	}
}

func (s *Session) handleLoad(msg *Message) error {
	var p LoadPayload
	if err := decode(msg, &p); err != nil {
		return err
	}
	if err := s.engine.Load(p.Diagram); err != nil {
		return err
	}

	cmds := s.engine.Commands()
	if cmds == nil {
		cmds = []engine.DrawCommand{}
	}
	s.reply(TypeCommands, msg.Seq, CommandsPayload{
		Diagram:  p.Diagram,
		Bounds:   s.engine.Bounds(),
		Commands: cmds,
	})
	s.hub.watch(s, p.Diagram)
	return nil
}

func (s *Session) handleHitTest(msg *Message) error {
	var p HitTestPayload
	if err := decode(msg, &p); err != nil {
		return err
	}
	if s.engine.Name() == "" {
		return errNothingLoaded
	}
	s.reply(TypeHit, msg.Seq, engine.HitTestResult{
		ObjectID: s.engine.HitTest(p.X, p.Y),
		X:        p.X,
		Y:        p.Y,
	})
	return nil
}

func (s *Session) handleBounds(msg *Message) error {
	var p BoundsPayload
	if err := decode(msg, &p); err != nil {
		return err
	}
	if s.engine.Name() == "" {
		return errNothingLoaded
	}
	rect, ok := s.engine.SubBounds(p.Name)
	s.reply(TypeBoundsRes, msg.Seq, BoundsResultPayload{Name: p.Name, Found: ok, Bounds: rect})
	return nil
}

func (s *Session) handleSelect(msg *Message) error {
	var p SelectPayload
	if err := decode(msg, &p); err != nil {
		return err
	}
	if s.engine.Name() == "" {
		return errNothingLoaded
	}
	s.engine.SetSelection(p.Items)

	var bounds engine.Rect
	if err := json.Unmarshal([]byte(s.engine.GetSelectionBounds()), &bounds); err != nil {
		return err
	}
	s.reply(TypeSelection, msg.Seq, SelectionPayload{Items: p.Items, Bounds: bounds})
	return nil
}

var errNothingLoaded = errors.New("no diagram loaded")

func decode(msg *Message, v any) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%s: missing payload", msg.Type)
	}
	if err := json.Unmarshal(msg.Payload, v); err != nil {
		return fmt.Errorf("%s: invalid payload: %w", msg.Type, err)
	}
	return nil
}

func (s *Session) reply(typ string, seq int64, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		slog.Error("marshal payload", "error", err, "type", typ)
		return
	}
	s.Send(&Message{Type: typ, SessionID: s.ID, Seq: seq, Payload: data})
}

func (s *Session) sendError(seq int64, message string) {
	s.reply(TypeError, seq, ErrorPayload{Message: message})
}

func (s *Session) Send(msg *Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		slog.Error("marshal message", "error", err)
		return
	}

	select {
	case s.send <- data:
	default:
		slog.Warn("session send buffer full, dropping message", "session", s.ID)
	}
}
