package catalog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/engine"
)

type fixture struct{}

func (fixture) Names() []string { return []string{"pair"} }

func (fixture) Lookup(name string) (diagram.Diagram, bool) {
	if name != "pair" {
		return nil, false
	}
	return diagram.Beside(diagram.Named(diagram.Square(2), "left"), diagram.Spacer(1, 1)), true
}

func (fixture) Describe(string) string { return "a square and a gap" }

func newRouter() *mux.Router {
	h := NewHandler(NewService(fixture{}))
	r := mux.NewRouter()
	r.HandleFunc("/diagrams", h.List).Methods("GET")
	r.HandleFunc("/diagrams/{name}", h.Get).Methods("GET")
	r.HandleFunc("/diagrams/{name}/commands", h.Commands).Methods("GET")
	r.HandleFunc("/diagrams/{name}/bounds/{sub}", h.Bounds).Methods("GET")
	return r
}

func get(t *testing.T, path string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func TestList(t *testing.T) {
	rec := get(t, "/diagrams")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"pair","description":"a square and a gap"}]`, rec.Body.String())
}

func TestGet(t *testing.T) {
	rec := get(t, "/diagrams/pair")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{
		"name": "pair",
		"description": "a square and a gap",
		"bounds": {"x": -1, "y": -1, "width": 3, "height": 2},
		"primitives": 2,
		"names": ["left"]
	}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, "/diagrams/nope").Code)
}

func TestCommands(t *testing.T) {
	rec := get(t, "/diagrams/pair/commands")
	require.Equal(t, http.StatusOK, rec.Code)
	var cmds []engine.DrawCommand
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &cmds))
	require.Len(t, cmds, 1, "the spacer draws nothing")
	assert.Equal(t, "path", cmds[0].Op)

	rec = get(t, "/diagrams/pair/commands?format=msgpack")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/msgpack", rec.Header().Get("Content-Type"))
	require.NoError(t, msgpack.Unmarshal(rec.Body.Bytes(), &cmds))
	assert.Len(t, cmds, 1)

	assert.Equal(t, http.StatusBadRequest, get(t, "/diagrams/pair/commands?format=xml").Code)
	assert.Equal(t, http.StatusNotFound, get(t, "/diagrams/nope/commands").Code)
}

func TestBounds(t *testing.T) {
	rec := get(t, "/diagrams/pair/bounds/left")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"x":-1,"y":-1,"width":2,"height":2}`, rec.Body.String())

	rec = get(t, "/diagrams/pair/bounds/right")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"name not found"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, get(t, "/diagrams/nope/bounds/left").Code)
}

func TestServiceErrors(t *testing.T) {
	s := NewService(fixture{})
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.Bounds("pair", "nope")
	assert.ErrorIs(t, err, ErrNameNotFound)
}
