package game

import (
	"github.com/matzehuels/blockfall/pkg/errors"
)

// Kind is a catalog entry: a named shape in its spawn orientation and the
// color the renderer should draw it with.
type Kind struct {
	Name  string `json:"name"`
	Shape Shape  `json:"shape"`
	Color string `json:"color"`
}

// Catalog is the ordered set of kinds the engine draws from. Selection is a
// uniform draw over indices, so order only matters for reproducibility.
type Catalog []Kind

// StandardCatalog returns the seven classic tetrominoes.
func StandardCatalog() Catalog {
	return Catalog{
		{Name: "I", Color: "#00f0f0", Shape: MustParseShape(
			"....",
			"####",
			"....",
			"....",
		)},
		{Name: "O", Color: "#f0f000", Shape: MustParseShape(
			"##",
			"##",
		)},
		{Name: "T", Color: "#a000f0", Shape: MustParseShape(
			".#.",
			"###",
			"...",
		)},
		{Name: "S", Color: "#00f000", Shape: MustParseShape(
			".##",
			"##.",
			"...",
		)},
		{Name: "Z", Color: "#f00000", Shape: MustParseShape(
			"##.",
			".##",
			"...",
		)},
		{Name: "J", Color: "#0000f0", Shape: MustParseShape(
			"#..",
			"###",
			"...",
		)},
		{Name: "L", Color: "#f0a000", Shape: MustParseShape(
			"..#",
			"###",
			"...",
		)},
	}
}

// Validate checks every entry and rejects duplicate names.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return errors.New(errors.ErrCodeInvalidCatalog, "catalog is empty")
	}
	seen := make(map[string]bool, len(c))
	for _, k := range c {
		if k.Name == "" {
			return errors.New(errors.ErrCodeInvalidCatalog, "piece name must not be empty")
		}
		if seen[k.Name] {
			return errors.New(errors.ErrCodeInvalidCatalog, "duplicate piece %q", k.Name)
		}
		seen[k.Name] = true
		if err := errors.ValidateShape(k.Name, k.Shape); err != nil {
			return err
		}
		if err := errors.ValidateColor(k.Name, k.Color); err != nil {
			return err
		}
	}
	return nil
}

// Lookup returns the kind with the given name.
func (c Catalog) Lookup(name string) (Kind, bool) {
	for _, k := range c {
		if k.Name == name {
			return k, true
		}
	}
	return Kind{}, false
}

// Names lists kind names in catalog order.
func (c Catalog) Names() []string {
	names := make([]string, len(c))
	for i, k := range c {
		names[i] = k.Name
	}
	return names
}

// clone deep-copies the catalog so callers cannot mutate shapes the engine
// spawns from.
func (c Catalog) clone() Catalog {
	out := make(Catalog, len(c))
	for i, k := range c {
		out[i] = Kind{Name: k.Name, Shape: k.Shape.Clone(), Color: k.Color}
	}
	return out
}
