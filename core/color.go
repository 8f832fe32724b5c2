package core

// RGB is a 24-bit color shared by presentation primitives and renderers
type RGB struct {
	R, G, B uint8
}

// White is the base sprite color before luminance scaling
var White = RGB{255, 255, 255}

// WithLuminance scales the color so its relative luminance approaches l (0..1)
// Channels keep their ratio; l outside [0,1] is clamped
func (c RGB) WithLuminance(l float32) RGB {
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	cur := (0.2126*float32(c.R) + 0.7152*float32(c.G) + 0.0722*float32(c.B)) / 255
	if cur == 0 {
		v := uint8(l * 255)
		return RGB{v, v, v}
	}
	k := l / cur
	return RGB{scaleChannel(c.R, k), scaleChannel(c.G, k), scaleChannel(c.B, k)}
}

func scaleChannel(v uint8, k float32) uint8 {
	f := float32(v) * k
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}
