package layer

// Built-in transform constructors, referenced by name from catalog tables.
const (
	TransformSolid   = "solid"
	TransformShift   = "shift"
	TransformInvert  = "invert"
	TransformRainbow = "rainbow"
	TransformSparkle = "sparkle"
)

// InvertName is the name of the kind every catalog must provide.
const InvertName = "invert"

// Solid replaces the colour outright.
func Solid(colour RGB) Transform {
	colour = colour.Clamp()
	return func(RGB, int64, int, int) RGB {
		return colour
	}
}

// Shift adds amount to every channel, clamped.
func Shift(amount int) Transform {
	return func(c RGB, _ int64, _, _ int) RGB {
		return RGB{R: c.R + amount, G: c.G + amount, B: c.B + amount}.Clamp()
	}
}

// Invert complements each channel.
func Invert() Transform {
	return func(c RGB, _ int64, _, _ int) RGB {
		return RGB{R: 255 - c.R, G: 255 - c.G, B: 255 - c.B}
	}
}

// Rainbow averages the input with a hue that travels diagonally across the
// surface as tick advances.
func Rainbow() Transform {
	return func(c RGB, tick int64, x, y int) RGB {
		h := hue(int64(x+y)*12 + tick*6)
		return RGB{R: (c.R + h.R) / 2, G: (c.G + h.G) / 2, B: (c.B + h.B) / 2}
	}
}

// Sparkle lightens a scattered subset of squares; the subset moves with
// tick.
func Sparkle() Transform {
	return func(c RGB, tick int64, x, y int) RGB {
		if (int64(x*7+y*13)+tick)%5 != 0 {
			return c
		}
		return RGB{R: c.R + 100, G: c.G + 100, B: c.B + 100}.Clamp()
	}
}

// hue returns a fully saturated colour for an angle in degrees.
func hue(deg int64) RGB {
	d := int(((deg % 360) + 360) % 360)
	sector, f := d/60, (d%60)*255/60
	switch sector {
	case 0:
		return RGB{R: 255, G: f, B: 0}
	case 1:
		return RGB{R: 255 - f, G: 255, B: 0}
	case 2:
		return RGB{R: 0, G: 255, B: f}
	case 3:
		return RGB{R: 0, G: 255 - f, B: 255}
	case 4:
		return RGB{R: f, G: 0, B: 255}
	default:
		return RGB{R: 255, G: 0, B: 255 - f}
	}
}
