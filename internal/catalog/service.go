package catalog

import (
	"errors"
	"fmt"

	"github.com/chalkgo/chalk/internal/diagram"
	"github.com/chalkgo/chalk/internal/engine"
)

var (
	ErrNotFound     = errors.New("diagram not found")
	ErrNameNotFound = errors.New("subdiagram name not found")
)

// Describer is implemented by catalogs that carry entry descriptions.
type Describer interface {
	Describe(name string) string
}

type Service struct {
	catalog engine.Catalog
}

func NewService(catalog engine.Catalog) *Service {
	return &Service{catalog: catalog}
}

type Summary struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

type Detail struct {
	Summary
	Bounds     engine.Rect `json:"bounds"`
	Primitives int         `json:"primitives"`
	Names      []string    `json:"names"`
}

func (s *Service) List() []Summary {
	names := s.catalog.Names()
	out := make([]Summary, 0, len(names))
	for _, n := range names {
		out = append(out, s.summary(n))
	}
	return out
}

func (s *Service) Get(name string) (*Detail, error) {
	sc, err := s.scene(name)
	if err != nil {
		return nil, err
	}
	names := diagram.Names(sc.Diagram)
	if names == nil {
		names = []string{}
	}
	return &Detail{
		Summary:    s.summary(name),
		Bounds:     engine.RectFromBox(sc.Bounds),
		Primitives: len(sc.Nodes),
		Names:      names,
	}, nil
}

func (s *Service) Commands(name string) ([]engine.DrawCommand, error) {
	sc, err := s.scene(name)
	if err != nil {
		return nil, err
	}
	cmds := engine.CompileDrawCommands(sc)
	if cmds == nil {
		cmds = []engine.DrawCommand{}
	}
	return cmds, nil
}

// Bounds returns the box of the subdiagram sub within the named diagram.
func (s *Service) Bounds(name, sub string) (engine.Rect, error) {
	d, ok := s.catalog.Lookup(name)
	if !ok {
		return engine.Rect{}, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	box, ok := diagram.SubdiagramBoundingBox(d, sub)
	if !ok {
		return engine.Rect{}, fmt.Errorf("%w: %q in %q", ErrNameNotFound, sub, name)
	}
	return engine.RectFromBox(box), nil
}

func (s *Service) scene(name string) (*engine.Scene, error) {
	d, ok := s.catalog.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return engine.BuildScene(d), nil
}

func (s *Service) summary(name string) Summary {
	sum := Summary{Name: name}
	if d, ok := s.catalog.(Describer); ok {
		sum.Description = d.Describe(name)
	}
	return sum
}
