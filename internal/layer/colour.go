package layer

import "fmt"

// RGB is a 3-channel integer colour.
type RGB struct {
	R int `json:"r" yaml:"r"`
	G int `json:"g" yaml:"g"`
	B int `json:"b" yaml:"b"`
}

// Black and White are the channel extremes.
var (
	Black = RGB{}
	White = RGB{R: 255, G: 255, B: 255}
)

// String formats c as #rrggbb (channels clamped for display).
func (c RGB) String() string {
	return fmt.Sprintf("#%02x%02x%02x", clampChannel(c.R), clampChannel(c.G), clampChannel(c.B))
}

// Clamp returns c with every channel limited to [0, 255].
func (c RGB) Clamp() RGB {
	return RGB{R: clampChannel(c.R), G: clampChannel(c.G), B: clampChannel(c.B)}
}

func clampChannel(v int) int {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
