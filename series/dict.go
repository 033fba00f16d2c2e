package series

import "iter"

// Dict is an insertion-ordered map of channel name to Series.
//
// The zero value is not usable; create one with NewDict.
type Dict struct {
	keys []string
	m    map[string]*Series
}

// NewDict creates an empty Dict.
func NewDict() *Dict {
	return &Dict{m: make(map[string]*Series)}
}

// Set stores s under name. A new name is added after all existing names; an
// existing name keeps its position.
func (d *Dict) Set(name string, s *Series) {
	if _, ok := d.m[name]; !ok {
		d.keys = append(d.keys, name)
	}
	d.m[name] = s
}

// Get returns the series stored under name.
func (d *Dict) Get(name string) (*Series, bool) {
	s, ok := d.m[name]
	return s, ok
}

// Keys returns the names in insertion order.
func (d *Dict) Keys() []string {
	out := make([]string, len(d.keys))
	copy(out, d.keys)

	return out
}

// Len returns the number of series.
func (d *Dict) Len() int {
	return len(d.keys)
}

// All iterates over names and series in insertion order.
func (d *Dict) All() iter.Seq2[string, *Series] {
	return func(yield func(string, *Series) bool) {
		for _, k := range d.keys {
			if !yield(k, d.m[k]) {
				return
			}
		}
	}
}

// Append appends every series of other to the series of the same name in d,
// and adds the series whose names d does not hold yet. Series added this way
// are shared with other, not copied.
func (d *Dict) Append(other *Dict) error {
	for name, s := range other.All() {
		cur, ok := d.m[name]
		if !ok {
			d.Set(name, s)
			continue
		}
		if err := cur.Append(s); err != nil {
			return err
		}
	}

	return nil
}

// Own returns a copy of d in which every series owns its buffer. Appending to
// the copy never changes a series of d or the memory a series of d views.
func (d *Dict) Own() *Dict {
	out := &Dict{
		keys: make([]string, len(d.keys)),
		m:    make(map[string]*Series, len(d.m)),
	}
	copy(out.keys, d.keys)
	for k, s := range d.m {
		out.m[k] = s.Clone()
	}

	return out
}
