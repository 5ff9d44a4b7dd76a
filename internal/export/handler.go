package export

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/blake2b"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/engine"
	"github.com/chalkgo/chalk/internal/render"
	"github.com/chalkgo/chalk/internal/render/raster"
	"github.com/chalkgo/chalk/internal/render/svg"
	"github.com/chalkgo/chalk/internal/style"
	"github.com/chalkgo/chalk/internal/typeid"
)

// MaxSize bounds the requested canvas height and width in pixels.
const MaxSize = render.MaxCanvas

// ExportIDHeader carries the ID assigned to each export.
const ExportIDHeader = "X-Export-ID"

// ErrUnknownFormat is returned by Encode for formats other than svg, png
// and json.
var ErrUnknownFormat = errors.New("export: unknown format")

var contentTypes = map[string]string{
	"svg":  "image/svg+xml",
	"png":  "image/png",
	"json": "application/json",
}

type Handler struct {
	catalog  engine.Catalog
	defaults []render.Option
}

// NewHandler serves diagrams from catalog. defaults apply before the
// per-request query options.
func NewHandler(catalog engine.Catalog, defaults ...render.Option) *Handler {
	return &Handler{catalog: catalog, defaults: defaults}
}

type jsonExport struct {
	Diagram  string               `json:"diagram"`
	Bounds   engine.Rect          `json:"bounds"`
	Commands []engine.DrawCommand `json:"commands"`
}

// Export serves /export/{file} where file is NAME.svg, NAME.png or
// NAME.json. Query parameters height, width, padding and background
// override the canvas defaults; download=1 asks for an attachment.
func (h *Handler) Export(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	format := strings.TrimPrefix(path.Ext(file), ".")
	name := strings.TrimSuffix(file, path.Ext(file))

	contentType, ok := contentTypes[format]
	if !ok {
		http.Error(w, "invalid format: must be svg, png, or json", http.StatusBadRequest)
		return
	}

	d, ok := h.catalog.Lookup(name)
	if !ok {
		http.Error(w, "diagram not found", http.StatusNotFound)
		return
	}

	opts, err := h.options(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	exportID := typeid.NewExportID()
	body, err := Encode(format, name, d, opts...)
	if err != nil {
		if errors.Is(err, render.ErrEmptyDiagram) {
			http.Error(w, "diagram has no extent", http.StatusUnprocessableEntity)
			return
		}
		slog.Error("export failed", "diagram", name, "format", format, "export_id", exportID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	etag := etagOf(body)
	w.Header().Set("ETag", etag)
	if match := r.Header.Get("If-None-Match"); match != "" && match == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set(ExportIDHeader, exportID)
	if r.URL.Query().Get("download") == "1" {
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s.%s"`, sanitize(name), format))
	}
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.Write(body)

	slog.Info("export complete", "diagram", name, "format", format, "size", len(body), "export_id", exportID)
}

func (h *Handler) options(r *http.Request) ([]render.Option, error) {
	opts := append([]render.Option(nil), h.defaults...)
	q := r.URL.Query()

	for _, p := range []struct {
		key  string
		with func(int) render.Option
	}{
		{"height", render.WithHeight},
		{"width", render.WithWidth},
	} {
		v := q.Get(p.key)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 || n > MaxSize {
			return nil, fmt.Errorf("invalid %s: must be an integer in 1..%d", p.key, MaxSize)
		}
		opts = append(opts, p.with(n))
	}

	if v := q.Get("padding"); v != "" {
		pad, err := strconv.ParseFloat(v, 64)
		if err != nil || pad < 0 || pad > 10 {
			return nil, errors.New("invalid padding: must be a number in 0..10")
		}
		opts = append(opts, render.WithPadding(pad))
	}

	if v := q.Get("background"); v != "" {
		c, err := style.Color(v)
		if err != nil {
			return nil, fmt.Errorf("invalid background: %w", err)
		}
		opts = append(opts, render.WithBackground(c))
	}
	return opts, nil
}

// Encode renders d in the given format. The json form carries name, the
// diagram bounds and its draw commands.
func Encode(format, name string, d diagram.Diagram, opts ...render.Option) ([]byte, error) {
	switch format {
	case "svg":
		return svg.Render(d, opts...)
	case "png":
		var buf bytes.Buffer
		if err := raster.EncodePNG(&buf, d, opts...); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case "json":
		sc := engine.BuildScene(d)
		if sc.Bounds.IsEmpty() {
			return nil, render.ErrEmptyDiagram
		}
		cmds := engine.CompileDrawCommands(sc)
		if cmds == nil {
			cmds = []engine.DrawCommand{}
		}
		return json.Marshal(jsonExport{
			Diagram:  name,
			Bounds:   engine.RectFromBox(sc.Bounds),
			Commands: cmds,
		})
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

func etagOf(body []byte) string {
	sum := blake2b.Sum256(body)
	return `"` + hex.EncodeToString(sum[:16]) + `"`
}

func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			return r
		}
		return '-'
	}, name)
}
