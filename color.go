package bc1ep

// RGB565 is a packed 16-bit color: 5 bits red, 6 bits green, 5 bits blue,
// red in the most significant bits.
type RGB565 uint16

// RGB8 is an 8-bit-per-channel color.
type RGB8 struct {
	R, G, B uint8
}

// Channels splits the packed color into its raw 5/6/5-bit channels.
func (c RGB565) Channels() (r5, g6, b5 uint16) {
	return (uint16(c) >> 11) & 0x1f, (uint16(c) >> 5) & 0x3f, uint16(c) & 0x1f
}

// RGB8 expands each channel to 8 bits with round(v*255/max), computed as
// (v*255 + max/2) / max.
func (c RGB565) RGB8() RGB8 {
	r5, g6, b5 := c.Channels()
	return RGB8{
		R: uint8((r5*255 + 15) / 31),
		G: uint8((g6*255 + 31) / 63),
		B: uint8((b5*255 + 15) / 31),
	}
}

// Unit returns the channels divided by their maximum, each in [0,1].
func (c RGB565) Unit() [3]float64 {
	r5, g6, b5 := c.Channels()
	return [3]float64{
		float64(r5) / 31.0,
		float64(g6) / 63.0,
		float64(b5) / 31.0,
	}
}

// Array returns the color as an [r,g,b] triplet.
func (c RGB8) Array() [3]uint8 {
	return [3]uint8{c.R, c.G, c.B}
}
