package frame

import (
	"github.com/arloliu/gwf/format"
	"github.com/arloliu/gwf/gps"
)

// TOCFrame is the table of contents entry of one frame.
type TOCFrame struct {
	GTime  gps.Time
	Dt     float64
	Run    int32
	Number uint32
	// Position is the file offset of the frame header record.
	Position int64
}

// TOC is the table of contents of a frame file: the frames it holds and, per
// channel type, the channel names with the file offset of their record in
// each frame.
type TOC struct {
	Frames []TOCFrame

	names     [format.ChannelSim + 1][]string
	positions [format.ChannelSim + 1]map[string][]int64
}

// NewTOC creates an empty table of contents.
func NewTOC() *TOC {
	t := &TOC{}
	for _, ct := range format.ChannelTypes {
		t.positions[ct] = make(map[string][]int64)
	}

	return t
}

// AddFrame appends a frame entry.
func (t *TOC) AddFrame(f TOCFrame) {
	t.Frames = append(t.Frames, f)
	for _, ct := range format.ChannelTypes {
		for _, name := range t.names[ct] {
			t.positions[ct][name] = append(t.positions[ct][name], 0)
		}
	}
}

// SetPosition records the offset of channel name of type ct in frame i, which
// must already have been added. A name seen for the first time is appended to
// the name list of ct.
func (t *TOC) SetPosition(ct format.ChannelType, name string, i int, pos int64) {
	if !ct.Valid() || i < 0 || i >= len(t.Frames) {
		return
	}

	p, ok := t.positions[ct][name]
	if !ok {
		t.names[ct] = append(t.names[ct], name)
		p = make([]int64, len(t.Frames))
		t.positions[ct][name] = p
	}
	p[i] = pos
}

// Names returns the channel names of type ct in first-seen order.
func (t *TOC) Names(ct format.ChannelType) []string {
	if !ct.Valid() {
		return nil
	}

	return t.names[ct]
}

// Contains reports whether channel name of type ct appears in any frame.
func (t *TOC) Contains(ct format.ChannelType, name string) bool {
	if !ct.Valid() {
		return false
	}
	_, ok := t.positions[ct][name]

	return ok
}

// Position returns the offset of the record of channel name of type ct in
// frame i. It reports false when the frame does not hold the channel.
func (t *TOC) Position(ct format.ChannelType, name string, i int) (int64, bool) {
	if !ct.Valid() {
		return 0, false
	}
	p, ok := t.positions[ct][name]
	if !ok || i < 0 || i >= len(p) || p[i] == 0 {
		return 0, false
	}

	return p[i], true
}
