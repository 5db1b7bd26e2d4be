package layer

import (
	_ "embed"
	"fmt"
	"sync"

	"golang.org/x/text/unicode/norm"
)

//go:embed catalog.cue
var defaultCatalogSrc []byte

// Def declares one catalog entry before indices are assigned.
type Def struct {
	Name      string
	Transform Transform
}

// Catalog is an ordered, read-only set of layer kinds.
type Catalog struct {
	kinds  []Kind
	byName map[string]int
	invert int
}

// NewCatalog assigns indices to defs in order and returns the catalog.
// Names are NFC-normalized. A def named "invert" is required.
func NewCatalog(defs ...Def) (*Catalog, error) {
	c := &Catalog{
		kinds:  make([]Kind, 0, len(defs)),
		byName: make(map[string]int, len(defs)),
		invert: -1,
	}
	for i, d := range defs {
		name := norm.NFC.String(d.Name)
		if name == "" {
			return nil, fmt.Errorf("layer %d: name is required", i)
		}
		if d.Transform == nil {
			return nil, fmt.Errorf("layer %q: transform is required", name)
		}
		c.kinds = append(c.kinds, Kind{Index: uint(i), Name: name, transform: d.Transform})
		// First definition wins name lookups.
		if _, dup := c.byName[name]; !dup {
			c.byName[name] = i
		}
		if name == InvertName && c.invert < 0 {
			c.invert = i
		}
	}
	if c.invert < 0 {
		return nil, fmt.Errorf("catalog must define %q", InvertName)
	}
	return c, nil
}

// Len returns the number of kinds.
func (c *Catalog) Len() int {
	return len(c.kinds)
}

// All returns the kinds in index order.
func (c *Catalog) All() []Kind {
	out := make([]Kind, len(c.kinds))
	copy(out, c.kinds)
	return out
}

// ByIndex returns the kind with the given index.
func (c *Catalog) ByIndex(i uint) (Kind, bool) {
	if int(i) >= len(c.kinds) {
		return Kind{}, false
	}
	return c.kinds[i], true
}

// ByName returns the first kind with the given (NFC-normalized) name.
func (c *Catalog) ByName(name string) (Kind, bool) {
	i, ok := c.byName[norm.NFC.String(name)]
	if !ok {
		return Kind{}, false
	}
	return c.kinds[i], true
}

// Invert returns the distinguished invert kind.
func (c *Catalog) Invert() Kind {
	return c.kinds[c.invert]
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the process-wide catalog compiled from the embedded
// table. It panics if the embedded table is invalid.
func Default() *Catalog {
	defaultOnce.Do(func() {
		cat, err := LoadCatalog("catalog.cue", defaultCatalogSrc)
		if err != nil {
			panic(fmt.Sprintf("layer: embedded catalog: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}
