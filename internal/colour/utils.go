// Package colour derives deterministic colours from hostnames and converts
// between the HSL, RGB and hex forms used in stored settings.
package colour

import "math"

// Text colours placed on top of a banner background.
const (
	TextDark  = "#0f172a"
	TextLight = "#f8fafc"
)

// backgrounds brighter than this get dark text.
const contrastThreshold = 0.45

// ContrastingTextColor returns TextDark for bright backgrounds and
// TextLight for dark ones.
func ContrastingTextColor(c HSL) string {
	r, g, b := c.channels()
	if relativeLuminance(r, g, b) > contrastThreshold {
		return TextDark
	}
	return TextLight
}

// Luminance calculates the relative luminance of a colour according to WCAG 2.0.
// Returns a value between 0 (darkest) and 1 (lightest).
// https://www.w3.org/TR/WCAG20/#relativeluminancedef.
func Luminance(rgb RGB) float64 {
	return relativeLuminance(
		float64(rgb.R)/255.0,
		float64(rgb.G)/255.0,
		float64(rgb.B)/255.0,
	)
}

func relativeLuminance(r, g, b float64) float64 {
	return 0.2126*gammaCorrect(r) + 0.7152*gammaCorrect(g) + 0.0722*gammaCorrect(b)
}

// gammaCorrect applies gamma correction to a colour component.
func gammaCorrect(v float64) float64 {
	if v <= 0.03928 {
		return v / 12.92
	}
	return math.Pow((v+0.055)/1.055, 2.4)
}

// ContrastRatio calculates the contrast ratio between two colours according to WCAG 2.0.
// Returns a value between 1 and 21, where 21 is maximum contrast (black vs white).
// https://www.w3.org/TR/WCAG20/#contrast-ratiodef.
func ContrastRatio(c1, c2 RGB) float64 {
	l1 := Luminance(c1)
	l2 := Luminance(c2)

	// Ensure l1 is the lighter colour.
	if l1 < l2 {
		l1, l2 = l2, l1
	}

	return (l1 + 0.05) / (l2 + 0.05)
}
