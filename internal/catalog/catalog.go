// Package catalog loads the tool blueprints offered in the palette.
//
// The built-in catalog is embedded from tools.toml. A user catalog in the same
// format can replace it (see config.Config.Catalog). The editor treats the
// catalog as read-only input.
package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"pegboard/internal/board"
	"pegboard/internal/errors"
	"pegboard/internal/geometry"
)

//go:embed tools.toml
var builtin []byte

// DefaultColor is used for blueprints that do not set one.
const DefaultColor = "#808080"

type catalogFile struct {
	Tools []toolEntry `toml:"tool"`
}

type toolEntry struct {
	Type     string  `toml:"type"`
	Name     string  `toml:"name"`
	Color    string  `toml:"color"`
	Rotation int     `toml:"rotation"`
	Shape    [][]int `toml:"shape"`
}

// Catalog is an ordered, immutable list of blueprints.
type Catalog struct {
	blueprints []board.Blueprint
}

// Group is the blueprints of one tool type.
type Group struct {
	Type       string
	Blueprints []board.Blueprint
}

// Default returns the built-in catalog.
func Default() *Catalog {
	c, err := Load(bytes.NewReader(builtin))
	if err != nil {
		panic(fmt.Sprintf("catalog: built-in tools.toml: %v", err))
	}
	return c
}

// LoadFile reads a catalog from a TOML file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "open %s", path)
	}
	defer f.Close()

	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load reads a catalog from TOML. Unknown keys, invalid shapes, duplicate
// names and malformed colors are rejected.
func Load(r io.Reader) (*Catalog, error) {
	var f catalogFile
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "decode catalog")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "unknown key %q", undecoded[0].String())
	}
	if len(f.Tools) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidCatalog, "catalog has no tools")
	}

	c := &Catalog{blueprints: make([]board.Blueprint, 0, len(f.Tools))}
	seen := make(map[string]bool, len(f.Tools))
	for i, e := range f.Tools {
		bp, err := e.blueprint()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidCatalog, err, "tool %d (%q)", i+1, e.Name)
		}
		key := strings.ToLower(bp.Name)
		if seen[key] {
			return nil, errors.New(errors.ErrCodeInvalidCatalog, "duplicate tool name %q", bp.Name)
		}
		seen[key] = true
		c.blueprints = append(c.blueprints, bp)
	}
	return c, nil
}

func (e toolEntry) blueprint() (board.Blueprint, error) {
	name := strings.TrimSpace(e.Name)
	typ := strings.TrimSpace(e.Type)
	if name == "" {
		return board.Blueprint{}, fmt.Errorf("name is required")
	}
	if typ == "" {
		return board.Blueprint{}, fmt.Errorf("type is required")
	}
	rot := board.Rotation(e.Rotation)
	if !rot.Valid() {
		return board.Blueprint{}, fmt.Errorf("rotation %d is not a right angle", e.Rotation)
	}
	color := e.Color
	if color == "" {
		color = DefaultColor
	}
	if !validHex(color) {
		return board.Blueprint{}, fmt.Errorf("color %q is not #RRGGBB", color)
	}
	shape, err := geometry.NewShape(e.Shape)
	if err != nil {
		return board.Blueprint{}, err
	}
	return board.Blueprint{
		Type:     typ,
		Name:     name,
		Shape:    shape,
		Rotation: rot,
		Color:    strings.ToUpper(color),
	}, nil
}

func validHex(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	for _, r := range s[1:] {
		switch {
		case r >= '0' && r <= '9', r >= 'a' && r <= 'f', r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// All returns every blueprint in catalog order.
func (c *Catalog) All() []board.Blueprint {
	out := make([]board.Blueprint, len(c.blueprints))
	copy(out, c.blueprints)
	return out
}

// Len returns the number of blueprints.
func (c *Catalog) Len() int { return len(c.blueprints) }

// Find returns the blueprint with the given name, ignoring case.
func (c *Catalog) Find(name string) (board.Blueprint, bool) {
	for _, bp := range c.blueprints {
		if strings.EqualFold(bp.Name, name) {
			return bp, true
		}
	}
	return board.Blueprint{}, false
}

// Filter returns the blueprints whose name or type contains term, ignoring
// case. An empty term matches everything.
func (c *Catalog) Filter(term string) []board.Blueprint {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return c.All()
	}
	var out []board.Blueprint
	for _, bp := range c.blueprints {
		if strings.Contains(strings.ToLower(bp.Name), term) ||
			strings.Contains(strings.ToLower(bp.Type), term) {
			out = append(out, bp)
		}
	}
	return out
}

// GroupByType buckets blueprints by type, keeping the order in which each
// type first appears.
func GroupByType(bps []board.Blueprint) []Group {
	var groups []Group
	index := map[string]int{}
	for _, bp := range bps {
		i, ok := index[bp.Type]
		if !ok {
			i = len(groups)
			index[bp.Type] = i
			groups = append(groups, Group{Type: bp.Type})
		}
		groups[i].Blueprints = append(groups[i].Blueprints, bp)
	}
	return groups
}

// Groups returns the whole catalog grouped by type.
func (c *Catalog) Groups() []Group {
	return GroupByType(c.blueprints)
}
