package geom

import "math"

// Length2D returns the cumulative planar length of the polyline the array
// describes.
func (pa *PointArray) Length2D() float64 {
	var sum float64
	for i := 1; i < len(pa.points); i++ {
		sum += pa.points[i-1].Dist2D(pa.points[i])
	}
	return sum
}

// Length returns the 3D length when the array carries Z, else Length2D.
func (pa *PointArray) Length() float64 {
	if !pa.flags.HasZ {
		return pa.Length2D()
	}
	var sum float64
	for i := 1; i < len(pa.points); i++ {
		sum += math.Sqrt(pa.points[i-1].Dist3DSq(pa.points[i]))
	}
	return sum
}

// ArcLength2D sums ArcLength over each consecutive (p1,p2,p3) triple of an
// odd-count arc array (CircularString storage), per spec.md §4.1.
func (pa *PointArray) ArcLength2D() (float64, error) {
	n := len(pa.points)
	if n%2 == 0 || n < 3 {
		return 0, newErr(ErrInvalidInput, "arc_length_2d requires an odd point count >= 3, got %d", n)
	}
	var sum float64
	for i := 0; i+2 < n; i += 2 {
		l, err := ArcLength(pa.points[i], pa.points[i+1], pa.points[i+2])
		if err != nil {
			return 0, err
		}
		sum += l
	}
	return sum, nil
}

// SignedArea computes the shoelace signed area of the ring the array
// describes; positive means counter-clockwise.
func (pa *PointArray) SignedArea() float64 {
	n := len(pa.points)
	if n < 3 {
		return 0
	}
	var sum float64
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pa.points[i].X*pa.points[j].Y - pa.points[j].X*pa.points[i].Y
	}
	return sum / 2
}

// IsClosed2D reports whether the first and last points are bit-exactly
// equal in 2D.
func (pa *PointArray) IsClosed2D() bool {
	n := len(pa.points)
	if n == 0 {
		return false
	}
	return pa.points[0].Equal2D(pa.points[n-1])
}

// IsClosed3D reports whether the first and last points are bit-exactly
// equal including z, when the array carries z.
func (pa *PointArray) IsClosed3D() bool {
	n := len(pa.points)
	if n == 0 {
		return false
	}
	if !pa.flags.HasZ {
		return pa.IsClosed2D()
	}
	return pa.points[0].Equal(pa.points[n-1], pa.flags)
}

// NPointsInRect counts how many points fall within box (inclusive) in 2D.
func (pa *PointArray) NPointsInRect(box GBox) int {
	n := 0
	for _, p := range pa.points {
		if p.X >= box.XMin && p.X <= box.XMax && p.Y >= box.YMin && p.Y <= box.YMax {
			n++
		}
	}
	return n
}

// StartPoint returns the first point. Caller must ensure NPoints() > 0.
func (pa *PointArray) StartPoint() Coord4 { return pa.points[0] }

// EndPoint returns the last point. Caller must ensure NPoints() > 0.
func (pa *PointArray) EndPoint() Coord4 { return pa.points[len(pa.points)-1] }

// ComputeBBox recomputes a GBox over every point in the array.
func (pa *PointArray) ComputeBBox() GBox {
	box := EmptyGBox(pa.flags)
	for _, p := range pa.points {
		box.ExpandPoint(p)
	}
	return box
}
