package colour

import (
	"errors"
	"testing"
)

func TestHSLString(t *testing.T) {
	tests := []struct {
		hsl  HSL
		want string
	}{
		{hsl: HSL{H: 0, S: 65, L: 55}, want: "hsl(0, 65%, 55%)"},
		{hsl: HSL{H: 359, S: 100, L: 0}, want: "hsl(359, 100%, 0%)"},
		{hsl: HSL{H: 210, S: 50, L: 40}, want: "hsl(210, 50%, 40%)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.hsl.String(); got != tt.want {
				t.Errorf("String() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestHSLToHex(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want string
	}{
		{name: "red", hsl: HSL{H: 0, S: 100, L: 50}, want: "#ff0000"},
		{name: "green", hsl: HSL{H: 120, S: 100, L: 50}, want: "#00ff00"},
		{name: "blue", hsl: HSL{H: 240, S: 100, L: 50}, want: "#0000ff"},
		{name: "white", hsl: HSL{H: 0, S: 0, L: 100}, want: "#ffffff"},
		{name: "black", hsl: HSL{H: 0, S: 0, L: 0}, want: "#000000"},
		{name: "grey", hsl: HSL{H: 0, S: 0, L: 50}, want: "#808080"},
		{name: "empty hostname default", hsl: HSL{H: 0, S: 65, L: 55}, want: "#d74242"},
		{name: "override sample", hsl: HSL{H: 10, S: 50, L: 50}, want: "#bf5540"},
		{name: "pattern sample", hsl: HSL{H: 200, S: 50, L: 50}, want: "#4095bf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HSLToHex(tt.hsl); got != tt.want {
				t.Errorf("HSLToHex(%+v) = %s, want %s", tt.hsl, got, tt.want)
			}
		})
	}
}

func TestHexToHSL(t *testing.T) {
	tests := []struct {
		name string
		hex  string
		want HSL
	}{
		{name: "red", hex: "#ff0000", want: HSL{H: 0, S: 100, L: 50}},
		{name: "upper case", hex: "#FF0000", want: HSL{H: 0, S: 100, L: 50}},
		{name: "no hash", hex: "00ff00", want: HSL{H: 120, S: 100, L: 50}},
		{name: "blue", hex: "#0000ff", want: HSL{H: 240, S: 100, L: 50}},
		{name: "white", hex: "#ffffff", want: HSL{H: 0, S: 0, L: 100}},
		{name: "black", hex: "#000000", want: HSL{H: 0, S: 0, L: 0}},
		{name: "steel", hex: "#336699", want: HSL{H: 210, S: 50, L: 40}},
		{name: "orange", hex: "#FFA500", want: HSL{H: 39, S: 100, L: 50}},
		{name: "too short", hex: "#fff", want: HostnameToHSL("")},
		{name: "not hex", hex: "#gggggg", want: HostnameToHSL("")},
		{name: "empty", hex: "", want: HostnameToHSL("")},
		{name: "double hash", hex: "##ffffff", want: HostnameToHSL("")},
		{name: "signed", hex: "+fffff", want: HostnameToHSL("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := HexToHSL(tt.hex); got != tt.want {
				t.Errorf("HexToHSL(%q) = %+v, want %+v", tt.hex, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	inputs := []string{
		"#ff0000", "#00ff00", "#0000ff", "#ffffff", "#000000", "#808080",
		"#336699", "#1e90ff", "#ffa500", "#d74242", "#0f172a", "#f8fafc",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			want, err := ParseHex(in)
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", in, err)
			}
			out := HSLToHex(HexToHSL(in))
			got, err := ParseHex(out)
			if err != nil {
				t.Fatalf("ParseHex(%q) error: %v", out, err)
			}
			if absDiff(got.R, want.R) > 1 || absDiff(got.G, want.G) > 1 || absDiff(got.B, want.B) > 1 {
				t.Errorf("round trip %s -> %s drifted more than 1 per channel", in, out)
			}
		})
	}
}

// Integer hue costs up to about 4 units per channel at full saturation, so
// the coarse grid stays within 3 and the full cube within 5 (#02e4e6).
func TestHexRoundTripGrid(t *testing.T) {
	const maxDrift = 3
	for r := 0; r <= 0xff; r += 0x11 {
		for g := 0; g <= 0xff; g += 0x11 {
			for b := 0; b <= 0xff; b += 0x11 {
				want := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got := want.HSL().RGB()
				if absDiff(got.R, want.R) > maxDrift || absDiff(got.G, want.G) > maxDrift || absDiff(got.B, want.B) > maxDrift {
					t.Errorf("round trip %s -> %s drifted more than %d per channel", want.Hex(), got.Hex(), maxDrift)
				}
			}
		}
	}

	worst := RGB{R: 0x02, G: 0xe4, B: 0xe6}
	got := worst.HSL().RGB()
	if absDiff(got.G, worst.G) != 5 {
		t.Errorf("round trip %s -> %s, want green to drift by 5", worst.Hex(), got.Hex())
	}
}

func TestParseHexError(t *testing.T) {
	for _, in := range []string{"", "#12345", "#1234567", "xyzxyz", "#-12345"} {
		if _, err := ParseHex(in); !errors.Is(err, ErrInvalidHex) {
			t.Errorf("ParseHex(%q) error = %v, want ErrInvalidHex", in, err)
		}
	}
}

func TestContrastingTextColor(t *testing.T) {
	tests := []struct {
		name string
		hsl  HSL
		want string
	}{
		{name: "bright grey", hsl: HSL{H: 0, S: 0, L: 95}, want: TextDark},
		{name: "dark grey", hsl: HSL{H: 0, S: 0, L: 5}, want: TextLight},
		{name: "white", hsl: HSL{H: 0, S: 0, L: 100}, want: TextDark},
		{name: "black", hsl: HSL{H: 0, S: 0, L: 0}, want: TextLight},
		{name: "generated green", hsl: HostnameToHSL("example.com"), want: TextDark},
		{name: "generated purple", hsl: HostnameToHSL("google.com"), want: TextLight},
		{name: "generated red", hsl: HostnameToHSL(""), want: TextLight},
		{name: "yellow", hsl: HSL{H: 60, S: 100, L: 50}, want: TextDark},
		{name: "blue", hsl: HSL{H: 240, S: 100, L: 50}, want: TextLight},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContrastingTextColor(tt.hsl); got != tt.want {
				t.Errorf("ContrastingTextColor(%+v) = %s, want %s", tt.hsl, got, tt.want)
			}
		})
	}
}

func TestContrastRatio(t *testing.T) {
	black := RGB{R: 0, G: 0, B: 0}
	white := RGB{R: 255, G: 255, B: 255}

	if got := ContrastRatio(black, white); got < 20.99 || got > 21.01 {
		t.Errorf("ContrastRatio(black, white) = %f, want 21", got)
	}
	if got := ContrastRatio(white, black); got < 20.99 || got > 21.01 {
		t.Errorf("ContrastRatio(white, black) = %f, want 21", got)
	}
	if got := ContrastRatio(white, white); got != 1 {
		t.Errorf("ContrastRatio(white, white) = %f, want 1", got)
	}
}

func absDiff(a, b uint8) uint8 {
	if a > b {
		return a - b
	}
	return b - a
}
