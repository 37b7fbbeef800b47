package geom

// PointArray is the single storage primitive underlying every geometry
// kind: an ordered sequence of Coord4 projected to the dimensionality
// indicated by Flags, with O(1) indexed access and amortized O(1) append
// (spec.md §3.2). Grounded in shape on the teacher's spatialRecord
// (internal/parser/spatial.go), which likewise carried a flat
// []float64-keyed coordinate sequence plus dimensionality metadata derived
// from the dataset's COMF/SOMF parameters; the content here is rewritten
// entirely around the spec's PointArray invariants and original_source's
// ptarray.c.
type PointArray struct {
	flags     Flags
	points    []Coord4
	readonly  bool
}

// NewPointArray returns an empty array with the given dimensionality and a
// capacity hint.
func NewPointArray(hasZ, hasM bool, capacityHint int) *PointArray {
	if capacityHint < 0 {
		capacityHint = 0
	}
	return &PointArray{
		flags:  Flags{HasZ: hasZ, HasM: hasM},
		points: make([]Coord4, 0, capacityHint),
	}
}

// NewPointArrayFrom copies pts into a new owned array.
func NewPointArrayFrom(hasZ, hasM bool, pts []Coord4) *PointArray {
	pa := NewPointArray(hasZ, hasM, len(pts))
	pa.points = append(pa.points, pts...)
	return pa
}

// NewPointArrayBorrowed wraps pts without copying, marking the array
// read-only per spec.md §3.2: "If is_readonly, the buffer is borrowed from
// another owner and must never be freed or grown by this array." The
// caller (original owner) must outlive every borrower.
func NewPointArrayBorrowed(hasZ, hasM bool, pts []Coord4) *PointArray {
	return &PointArray{
		flags:    Flags{HasZ: hasZ, HasM: hasM},
		points:   pts,
		readonly: true,
	}
}

// Flags returns the array's dimensionality flags (IsReadonly mirrored).
func (pa *PointArray) Flags() Flags {
	f := pa.flags
	f.IsReadonly = pa.readonly
	return f
}

// NPoints returns the number of coordinates currently stored.
func (pa *PointArray) NPoints() int { return len(pa.points) }

// IsReadonly reports whether this array borrows its buffer.
func (pa *PointArray) IsReadonly() bool { return pa.readonly }

// HasZ/HasM report dimensionality.
func (pa *PointArray) HasZ() bool { return pa.flags.HasZ }
func (pa *PointArray) HasM() bool { return pa.flags.HasM }

// At returns the point at idx. Panics on out-of-range idx, matching the
// source's "invalid index" being a programmer error at this layer; public
// entry points validate idx before calling in and return ErrInvalidInput
// instead.
func (pa *PointArray) At(idx int) Coord4 {
	return pa.points[idx]
}

// Points exposes the underlying slice for read-only iteration by other
// files in this package. Callers outside the package should go through the
// accessor methods.
func (pa *PointArray) Points() []Coord4 { return pa.points }

// CloneShallow returns a new PointArray sharing this array's backing
// buffer, marked read-only. The original must outlive the clone (spec.md
// §3.3/§5).
func (pa *PointArray) CloneShallow() *PointArray {
	return &PointArray{flags: pa.flags, points: pa.points, readonly: true}
}

// CloneDeep returns a new PointArray with its own copy of the buffer,
// mutable regardless of the source's read-only state.
func (pa *PointArray) CloneDeep() *PointArray {
	cp := make([]Coord4, len(pa.points))
	copy(cp, pa.points)
	return &PointArray{flags: pa.flags, points: cp}
}

// checkMutable returns ErrInvariantViolation if pa is read-only.
func (pa *PointArray) checkMutable() error {
	if pa.readonly {
		return newErr(ErrInvariantViolation, "cannot mutate a read-only (borrowed) PointArray")
	}
	return nil
}

// project converts c, assumed fully populated, down to this
// array's own dimensionality, dropping ordinates the array does not carry.
func (pa *PointArray) project(c Coord4) Coord4 {
	out := Coord4{X: c.X, Y: c.Y}
	if pa.flags.HasZ {
		out.Z = c.Z
	}
	if pa.flags.HasM {
		out.M = c.M
	}
	return out
}
