package layer

// Transform maps a colour at (x, y) and time tick to a new colour.
// Transforms must be pure.
type Transform func(c RGB, tick int64, x, y int) RGB

// Kind is one layer type from a Catalog.
//
// Kinds hold a function and are therefore not comparable with ==; compare
// Index values instead.
type Kind struct {
	Index uint
	Name  string

	transform Transform
}

// Apply runs the kind's transform. The zero Kind returns c unchanged.
func (k Kind) Apply(c RGB, tick int64, x, y int) RGB {
	if k.transform == nil {
		return c
	}
	return k.transform(c, tick, x, y)
}

// Valid reports whether k came from a Catalog.
func (k Kind) Valid() bool {
	return k.transform != nil
}

// Same reports whether k and other are the same catalog entry.
func (k Kind) Same(other Kind) bool {
	return k.Index == other.Index && k.Name == other.Name
}

func (k Kind) String() string {
	return k.Name
}
