package layer

import (
	"fmt"
	"os"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

// schemaSrc constrains catalog tables before they are turned into kinds.
const schemaSrc = `
#Layer: {
	transform: "solid" | "shift" | "invert" | "rainbow" | "sparkle"
	colour?:   [int, int, int]
	amount?:   int & >=-255 & <=255
}

#Catalog: {
	layers: [string]: #Layer
}
`

// LoadError reports a problem in a catalog table.
type LoadError struct {
	Field   string
	Message string
	Pos     token.Pos
}

func (e *LoadError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("%s:%d:%d: %s: %s",
			e.Pos.Filename(), e.Pos.Line(), e.Pos.Column(),
			e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// LoadCatalogFile reads a CUE catalog table from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return LoadCatalog(path, src)
}

// LoadCatalog compiles a CUE catalog table. filename is used only for
// error positions.
func LoadCatalog(filename string, src []byte) (*Catalog, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaSrc, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	data := ctx.CompileBytes(src, cue.Filename(filename))
	if err := data.Err(); err != nil {
		return nil, formatCUEError(err)
	}

	v := schema.LookupPath(cue.ParsePath("#Catalog")).Unify(data)
	if err := v.Validate(cue.Concrete(true)); err != nil {
		return nil, formatCUEError(err)
	}

	layersVal := v.LookupPath(cue.ParsePath("layers"))
	if !layersVal.Exists() {
		return nil, &LoadError{Field: "layers", Message: "layers is required", Pos: data.Pos()}
	}

	iter, err := layersVal.Fields()
	if err != nil {
		return nil, formatCUEError(err)
	}

	var defs []Def
	for iter.Next() {
		name := iter.Label()
		t, err := parseTransform(name, iter.Value())
		if err != nil {
			return nil, err
		}
		defs = append(defs, Def{Name: name, Transform: t})
	}

	cat, err := NewCatalog(defs...)
	if err != nil {
		return nil, &LoadError{Field: "layers", Message: err.Error(), Pos: layersVal.Pos()}
	}
	return cat, nil
}

// parseTransform builds the transform declared by one layer entry.
func parseTransform(name string, v cue.Value) (Transform, error) {
	kind, err := v.LookupPath(cue.ParsePath("transform")).String()
	if err != nil {
		return nil, formatCUEError(err)
	}

	switch kind {
	case TransformSolid:
		colour, err := parseColour(v.LookupPath(cue.ParsePath("colour")))
		if err != nil {
			return nil, err
		}
		return Solid(colour), nil
	case TransformShift:
		amount, err := v.LookupPath(cue.ParsePath("amount")).Int64()
		if err != nil {
			return nil, formatCUEError(err)
		}
		return Shift(int(amount)), nil
	case TransformInvert:
		return Invert(), nil
	case TransformRainbow:
		return Rainbow(), nil
	case TransformSparkle:
		return Sparkle(), nil
	default:
		return nil, &LoadError{
			Field:   name,
			Message: fmt.Sprintf("unknown transform %q", kind),
			Pos:     v.Pos(),
		}
	}
}

func parseColour(v cue.Value) (RGB, error) {
	iter, err := v.List()
	if err != nil {
		return RGB{}, formatCUEError(err)
	}
	var ch []int
	for iter.Next() {
		n, err := iter.Value().Int64()
		if err != nil {
			return RGB{}, formatCUEError(err)
		}
		ch = append(ch, int(n))
	}
	if len(ch) != 3 {
		return RGB{}, &LoadError{Field: "colour", Message: "expected 3 channels", Pos: v.Pos()}
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	if err == nil {
		return nil
	}

	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	positions := errors.Positions(first)
	if len(positions) > 0 {
		return &LoadError{
			Field:   "cue",
			Message: first.Error(),
			Pos:     positions[0],
		}
	}
	return err
}
