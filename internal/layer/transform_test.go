package layer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShift_Clamps(t *testing.T) {
	assert.Equal(t, RGB{R: 255, G: 255, B: 50}, Shift(40)(RGB{R: 250, G: 215, B: 10}, 0, 0, 0))
	assert.Equal(t, RGB{R: 0, G: 0, B: 10}, Shift(-40)(RGB{R: 30, G: 40, B: 50}, 0, 0, 0))
}

func TestSolid_IgnoresInput(t *testing.T) {
	s := Solid(RGB{R: 300, G: -5, B: 7})
	assert.Equal(t, RGB{R: 255, G: 0, B: 7}, s(White, 9, 1, 1))
	assert.Equal(t, RGB{R: 255, G: 0, B: 7}, s(Black, 0, 0, 0))
}

func TestInvert_IsInvolution(t *testing.T) {
	inv := Invert()
	c := RGB{R: 12, G: 200, B: 99}
	assert.Equal(t, c, inv(inv(c, 0, 0, 0), 0, 0, 0))
}

func TestRainbow_Animated(t *testing.T) {
	r := Rainbow()
	// Same square, different ticks, different hue.
	assert.NotEqual(t, r(Black, 0, 2, 2), r(Black, 10, 2, 2))
	// Pure: same inputs, same output.
	assert.Equal(t, r(Black, 7, 1, 3), r(Black, 7, 1, 3))
	// Hue travels along diagonals.
	assert.Equal(t, r(Black, 3, 0, 4), r(Black, 3, 4, 0))
}

func TestSparkle_Subset(t *testing.T) {
	s := Sparkle()
	assert.Equal(t, RGB{R: 110, G: 110, B: 110}, s(RGB{R: 10, G: 10, B: 10}, 0, 0, 0))
	assert.Equal(t, RGB{R: 10, G: 10, B: 10}, s(RGB{R: 10, G: 10, B: 10}, 1, 0, 0))
}

func TestHue_Sectors(t *testing.T) {
	assert.Equal(t, RGB{R: 255}, hue(0))
	assert.Equal(t, RGB{G: 255}, hue(120))
	assert.Equal(t, RGB{B: 255}, hue(240))
	assert.Equal(t, hue(30), hue(390))
	assert.Equal(t, hue(330), hue(-30))
}

func TestRGB_String(t *testing.T) {
	assert.Equal(t, "#ff0080", RGB{R: 255, G: 0, B: 128}.String())
	assert.Equal(t, "#ff0000", RGB{R: 999, G: -1}.String())
}
