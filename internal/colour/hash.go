package colour

// Fixed saturation and lightness for generated colours. Only the hue varies
// between hostnames so every generated colour stays equally readable.
const (
	DefaultSaturation = 65
	DefaultLightness  = 55
)

// Hash returns a deterministic, non-negative hash of s.
//
// The accumulator is a signed 32-bit integer updated as acc*31 + codepoint
// with two's-complement wraparound, and the result is its absolute value.
// math.MinInt32 maps to 2^31. Invalid UTF-8 bytes contribute U+FFFD.
func Hash(s string) uint32 {
	var acc int32
	for _, r := range s {
		acc = acc*31 + r
	}
	if acc < 0 {
		return uint32(-int64(acc))
	}
	return uint32(acc)
}

// HostnameToHSL derives the default colour for a hostname.
func HostnameToHSL(hostname string) HSL {
	return HSL{
		H: int(Hash(hostname) % 360),
		S: DefaultSaturation,
		L: DefaultLightness,
	}
}
