package canvas

import (
	"context"
	"fmt"
	"reflect"
	"sync"

	"github.com/gorilla/websocket"
)

// previewLimit caps the rendered preview shipped with each registration.
const previewLimit = 160

// envelope is the wire form of one registration. The display side renders
// from the preview; the object itself never crosses the connection.
type envelope struct {
	Path    []string `json:"path"`
	Type    string   `json:"type"`
	Preview string   `json:"preview"`
}

// StreamTarget forwards registrations to a display panel over a WebSocket
// connection. Writes are serialized; the zero value is not usable.
type StreamTarget struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

// DialStreamTarget connects to a display panel endpoint (ws:// or wss://).
func DialStreamTarget(ctx context.Context, url string) (*StreamTarget, error) {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("canvas: dial stream target: %w", err)
	}
	return NewStreamTarget(conn), nil
}

// NewStreamTarget wraps an established connection.
func NewStreamTarget(conn *websocket.Conn) *StreamTarget {
	return &StreamTarget{conn: conn}
}

// AddVariable ships a (path, type, preview) envelope for obj.
func (t *StreamTarget) AddVariable(path []string, obj any) error {
	if err := validPath(path); err != nil {
		return err
	}
	env := envelope{Path: path, Type: typeName(obj), Preview: preview(obj)}
	t.mu.Lock()
	defer t.mu.Unlock()
	if err := t.conn.WriteJSON(env); err != nil {
		return fmt.Errorf("canvas: stream variable: %w", err)
	}
	return nil
}

// Close closes the underlying connection.
func (t *StreamTarget) Close() error {
	return t.conn.Close()
}

func typeName(obj any) string {
	if obj == nil {
		return "nil"
	}
	return reflect.TypeOf(obj).String()
}

func preview(obj any) string {
	s := fmt.Sprintf("%v", obj)
	if len(s) <= previewLimit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= previewLimit {
		return s
	}
	return string(runes[:previewLimit]) + "..."
}
