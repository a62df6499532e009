package colour

import (
	"fmt"
	"math"

	"github.com/jmylchreest/domaintint/internal/security"
)

// HSL is an integer hue/saturation/lightness colour.
// H is in degrees (0-359), S and L are percentages (0-100).
type HSL struct {
	H int `json:"h" toml:"h"`
	S int `json:"s" toml:"s"`
	L int `json:"l" toml:"l"`
}

// String returns the CSS display form, e.g. "hsl(210, 65%, 55%)".
func (c HSL) String() string {
	return fmt.Sprintf("hsl(%d, %d%%, %d%%)", c.H, c.S, c.L)
}

// RGB converts the colour to 8-bit sRGB, rounding each channel.
func (c HSL) RGB() RGB {
	r, g, b := c.channels()
	return RGB{R: toByte(r), G: toByte(g), B: toByte(b)}
}

// Hex returns the colour as "#rrggbb".
func (c HSL) Hex() string {
	return c.RGB().Hex()
}

// HSLToHex converts an HSL colour to "#rrggbb".
func HSLToHex(c HSL) string {
	return c.Hex()
}

// HexToHSL parses a 6-digit hex colour ("#a1b2c3" or "A1B2C3").
// Invalid input yields HostnameToHSL("").
func HexToHSL(hex string) HSL {
	rgb, err := ParseHex(hex)
	if err != nil {
		return HostnameToHSL("")
	}
	return rgb.HSL()
}

// channels converts to sRGB in the 0-1 range using the CSS Color 4 form:
// f(n) = l - a*max(-1, min(k-3, 9-k, 1)), k = (n + h/30) mod 12.
func (c HSL) channels() (r, g, b float64) {
	s := float64(c.S) / 100.0
	l := float64(c.L) / 100.0
	a := s * math.Min(l, 1-l)

	f := func(n float64) float64 {
		k := math.Mod(n+float64(c.H)/30.0, 12)
		if k < 0 {
			k += 12
		}
		return l - a*math.Max(math.Min(math.Min(k-3, 9-k), 1), -1)
	}

	return f(0), f(8), f(4)
}

// toByte scales a 0-1 channel to 0-255, rounding half up and clamping.
func toByte(v float64) uint8 {
	return security.SafeUint8(roundHalfUp(v * 255))
}

// roundHalfUp rounds x to the nearest integer with ties toward +Inf.
func roundHalfUp(x float64) int {
	return int(math.Floor(x + 0.5))
}

