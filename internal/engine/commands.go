package engine

import (
	"encoding/json"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/chalkgo/chalk/internal/geom"
	"github.com/chalkgo/chalk/internal/render"
	"github.com/chalkgo/chalk/internal/shape"
)

// DrawCommand represents a single drawing operation for a frontend to execute.
// Paths are in the primitive's own frame; Transform maps them to diagram space.
type DrawCommand struct {
	Op          string        `json:"op" msgpack:"op"`                                       // "path" or "text"
	ObjectID    string        `json:"objectId,omitempty" msgpack:"objectId,omitempty"`       // For hit correlation
	Transform   []float64     `json:"transform,omitempty" msgpack:"transform,omitempty"`     // [a, b, c, d, e, f] affine matrix
	Path        []PathCommand `json:"path,omitempty" msgpack:"path,omitempty"`               // Path data for "path" ops
	Fill        string        `json:"fill,omitempty" msgpack:"fill,omitempty"`               // Fill color, absent when unfilled
	FillOpacity float64       `json:"fillOpacity,omitempty" msgpack:"fillOpacity,omitempty"` // Fill alpha
	Stroke      string        `json:"stroke,omitempty" msgpack:"stroke,omitempty"`           // Stroke color, absent when unstroked
	StrokeWidth float64       `json:"strokeWidth,omitempty" msgpack:"strokeWidth,omitempty"` // Stroke width
	Dash        []float64     `json:"dash,omitempty" msgpack:"dash,omitempty"`               // Dash pattern
	DashOffset  float64       `json:"dashOffset,omitempty" msgpack:"dashOffset,omitempty"`   // Dash offset
	Text        string        `json:"text,omitempty" msgpack:"text,omitempty"`               // Content for "text" ops
	FontSize    float64       `json:"fontSize,omitempty" msgpack:"fontSize,omitempty"`       // Font size in diagram units
	X           float64       `json:"x,omitempty" msgpack:"x,omitempty"`                     // Text anchor (left edge)
	Y           float64       `json:"y,omitempty" msgpack:"y,omitempty"`                     // Text anchor (baseline)
}

// PathCommand represents a single path segment for rendering.
// Format matches Canvas2D: ["M", x, y], ["L", x, y], ["C", x1, y1, x2, y2, x, y], ["Z"].
type PathCommand []interface{}

// CompileDrawCommands generates a draw command buffer from a scene.
// Commands are in painter's order (back to front). Spacers emit nothing.
func CompileDrawCommands(sc *Scene) []DrawCommand {
	if sc == nil {
		return nil
	}

	commands := make([]DrawCommand, 0, len(sc.Nodes))
	for i := range sc.Nodes {
		if cmd, ok := compileNode(&sc.Nodes[i]); ok {
			commands = append(commands, cmd)
		}
	}
	return commands
}

func compileNode(node *SceneNode) (DrawCommand, bool) {
	p := node.Primitive

	if t, ok := p.Shape.(shape.Text); ok {
		return DrawCommand{
			Op:        "text",
			ObjectID:  node.ID,
			Transform: p.Transform.ToSlice(),
			Fill:      hex(render.TextColor(p.Style)),
			Text:      t.Content,
			FontSize:  t.FontSize,
			X:         -t.Width / 2,
			Y:         t.Baseline(),
		}, true
	}

	segs := render.Outline(p.Shape)
	if len(segs) == 0 {
		return DrawCommand{}, false
	}

	paint := render.Resolve(p.Style, p.Shape)
	cmd := DrawCommand{
		Op:        "path",
		ObjectID:  node.ID,
		Transform: p.Transform.ToSlice(),
		Path:      pathCommands(segs),
	}
	if paint.Filled {
		cmd.Fill = hex(paint.Fill)
		cmd.FillOpacity = paint.FillOpacity
	}
	if paint.Stroked() {
		cmd.Stroke = hex(paint.Stroke)
		cmd.StrokeWidth = paint.LineWidth
		cmd.Dash = paint.Dash
		cmd.DashOffset = paint.DashOffset
	}
	return cmd, true
}

func pathCommands(segs []render.Segment) []PathCommand {
	out := make([]PathCommand, 0, len(segs))
	for _, s := range segs {
		cmd := PathCommand{string(rune(s.Verb))}
		for _, pt := range s.Points {
			cmd = append(cmd, pt.X, pt.Y)
		}
		out = append(out, cmd)
	}
	return out
}

func hex(c colorful.Color) string {
	return c.Clamped().Hex()
}

// DrawCommandsToJSON serializes draw commands to JSON.
func DrawCommandsToJSON(commands []DrawCommand) (string, error) {
	if commands == nil {
		commands = []DrawCommand{}
	}
	data, err := json.Marshal(commands)
	if err != nil {
		return "[]", err
	}
	return string(data), nil
}

// DrawCommandsToMsgpack serializes draw commands to MessagePack using the
// same field names as the JSON form.
func DrawCommandsToMsgpack(commands []DrawCommand) ([]byte, error) {
	return msgpack.Marshal(commands)
}

// HitTestResult contains information about a hit test.
type HitTestResult struct {
	ObjectID string  `json:"objectId"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// HitTest returns the ID of the topmost primitive containing the point, or
// the empty string. Coordinates are in diagram space.
func HitTest(sc *Scene, x, y float64) string {
	if sc == nil {
		return ""
	}

	// Front to back: later primitives are painted over earlier ones.
	pt := geom.Pt(x, y)
	for i := len(sc.Nodes) - 1; i >= 0; i-- {
		if sc.Nodes[i].Contains(pt) {
			return sc.Nodes[i].ID
		}
	}
	return ""
}

// GetSelectionBounds returns the combined box of the selected items. An
// item is either a primitive ID or the name of a subdiagram; unknown items
// are ignored.
func GetSelectionBounds(sc *Scene, items []string) geom.BoundingBox {
	result := geom.EmptyBox()
	if sc == nil {
		return result
	}

	for _, item := range items {
		if node, ok := sc.ByID[item]; ok {
			result = result.Union(node.Bounds)
			continue
		}
		if box, ok := subdiagramBounds(sc, item); ok {
			result = result.Union(box)
		}
	}
	return result
}

// Rect is the wire form of a bounding box.
type Rect struct {
	X      float64 `json:"x" msgpack:"x"`
	Y      float64 `json:"y" msgpack:"y"`
	Width  float64 `json:"width" msgpack:"width"`
	Height float64 `json:"height" msgpack:"height"`
	Empty  bool    `json:"empty,omitempty" msgpack:"empty,omitempty"`
}

// RectFromBox converts a box to its wire form. The empty box becomes a
// zero rect flagged Empty.
func RectFromBox(b geom.BoundingBox) Rect {
	if b.IsEmpty() {
		return Rect{Empty: true}
	}
	return Rect{X: b.Min.X, Y: b.Min.Y, Width: b.Width(), Height: b.Height()}
}

// RectToJSON serializes a Rect to JSON.
func RectToJSON(r Rect) string {
	data, _ := json.Marshal(r)
	return string(data)
}
