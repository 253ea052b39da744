package bc1ep

const (
	// BlockOrderRowMajor is the block order tag written to the metadata.
	BlockOrderRowMajor = "row_major"
	// FormatBC1 is the format tag written to the metadata.
	FormatBC1 = "BC1"
)

// Options controls dataset assembly.
type Options struct {
	// KeepOnlyOrdered drops every block whose c0 <= c1.
	KeepOnlyOrdered bool
	// IncludeMeta attaches the summary block.
	IncludeMeta bool
	// IncludeRGB888 adds the 8-bit expansion of both endpoints to targets.
	IncludeRGB888 bool
	// Source is recorded as meta.source_image.
	Source string
	// Container selects how block data is located after the headers.
	Container Container
}

// DefaultOptions returns the options used when none are given: metadata on,
// no filtering.
func DefaultOptions() Options {
	return Options{IncludeMeta: true}
}

// Record is the feature set of one block.
type Record struct {
	BX, BY int
	S, T   float64
	Block
}

// Flag is 1 when c0 > c1, else 0.
func (r Record) Flag() int {
	if r.Ordered() {
		return 1
	}
	return 0
}

// Q01 is the unit triplet of c0 followed by the unit triplet of c1.
func (r Record) Q01() [6]float64 {
	lo, hi := r.Low.Unit(), r.High.Unit()
	return [6]float64{lo[0], lo[1], lo[2], hi[0], hi[1], hi[2]}
}

// Inputs holds the per-block coordinates.
type Inputs struct {
	ST   FloatPairs `json:"st"`
	BXBY [][2]int   `json:"bxby"`
}

// Targets holds the per-block endpoint values. EpRGB888 is nil unless
// requested.
type Targets struct {
	EpRGB565 [][2]uint16  `json:"ep_rgb565"`
	EpQ01    FloatSextets `json:"ep_q01"`
	EpRGB888 *[][2][3]int `json:"ep_rgb888,omitempty"`
}

// RGB888 returns the 8-bit endpoint pairs, or nil when they were not requested.
func (t Targets) RGB888() [][2][3]int {
	if t.EpRGB888 == nil {
		return nil
	}
	return *t.EpRGB888
}

// Flags holds the per-block ordering flag.
type Flags struct {
	C0GtC1 []int `json:"c0_gt_c1"`
}

// Meta summarizes the source texture and the filter that was applied.
type Meta struct {
	Width          int    `json:"width"`
	Height         int    `json:"height"`
	BlocksX        int    `json:"blocks_x"`
	BlocksY        int    `json:"blocks_y"`
	BlockOrder     string `json:"block_order"`
	Format         string `json:"format"`
	NumBlocksTotal int    `json:"num_blocks_total"`
	NumBlocksKept  int    `json:"num_blocks_kept"`
	Filtered       bool   `json:"filtered_c0_gt_c1"`
	SourceImage    string `json:"source_image"`
}

// Dataset is the assembled output. All per-block arrays are parallel.
type Dataset struct {
	Inputs  Inputs  `json:"inputs"`
	Targets Targets `json:"targets"`
	Flags   Flags   `json:"flags"`
	Meta    *Meta   `json:"meta,omitempty"`
}

// Len returns the number of retained blocks.
func (d *Dataset) Len() int {
	return len(d.Flags.C0GtC1)
}

// Records derives the per-block records of a decoded grid in row-major order.
func Records(grid Grid, blocks []Block) []Record {
	out := make([]Record, len(blocks))
	for i, b := range blocks {
		bx, by := grid.Coords(i)
		s, t := grid.Normalized(bx, by)
		out[i] = Record{BX: bx, BY: by, S: s, T: t, Block: b}
	}
	return out
}

// Build assembles the dataset for a parsed header and its decoded blocks.
func Build(hdr *Header, grid Grid, blocks []Block, opts Options) *Dataset {
	records := Records(grid, blocks)

	kept := 0
	for _, rec := range records {
		if !opts.KeepOnlyOrdered || rec.Ordered() {
			kept++
		}
	}

	ds := &Dataset{
		Inputs: Inputs{
			ST:   make([][2]float64, 0, kept),
			BXBY: make([][2]int, 0, kept),
		},
		Targets: Targets{
			EpRGB565: make([][2]uint16, 0, kept),
			EpQ01:    make([][6]float64, 0, kept),
		},
		Flags: Flags{C0GtC1: make([]int, 0, kept)},
	}
	var rgb888 [][2][3]int
	if opts.IncludeRGB888 {
		rgb888 = make([][2][3]int, 0, kept)
		ds.Targets.EpRGB888 = &rgb888
	}

	for _, rec := range records {
		if opts.KeepOnlyOrdered && !rec.Ordered() {
			continue
		}
		ds.Inputs.ST = append(ds.Inputs.ST, [2]float64{rec.S, rec.T})
		ds.Inputs.BXBY = append(ds.Inputs.BXBY, [2]int{rec.BX, rec.BY})
		ds.Targets.EpRGB565 = append(ds.Targets.EpRGB565, [2]uint16{uint16(rec.Low), uint16(rec.High)})
		ds.Targets.EpQ01 = append(ds.Targets.EpQ01, rec.Q01())
		if opts.IncludeRGB888 {
			rgb888 = append(rgb888, [2][3]int{rgbInts(rec.Low.RGB8()), rgbInts(rec.High.RGB8())})
		}
		ds.Flags.C0GtC1 = append(ds.Flags.C0GtC1, rec.Flag())
	}

	if opts.IncludeMeta {
		ds.Meta = &Meta{
			Width:          int(hdr.Width),
			Height:         int(hdr.Height),
			BlocksX:        grid.BlocksX,
			BlocksY:        grid.BlocksY,
			BlockOrder:     BlockOrderRowMajor,
			Format:         FormatBC1,
			NumBlocksTotal: len(records),
			NumBlocksKept:  ds.Len(),
			Filtered:       opts.KeepOnlyOrdered,
			SourceImage:    opts.Source,
		}
	}

	return ds
}

func rgbInts(c RGB8) [3]int {
	return [3]int{int(c.R), int(c.G), int(c.B)}
}
