package geom

// rectClipLineString clips pa against box using Liang-Barsky per-segment
// clipping, emitting one output PointArray per maximal surviving run (a
// line clipped by a rectangle may produce several disjoint pieces). This
// is the "external rectangular-clip primitive" spec.md §4.6 calls out for
// subdivide-by-vertex-count; implemented locally as an analytic kernel
// (C6-style) rather than a GEOS round-trip, since GEOS-backed operations
// are explicitly out of scope (spec.md Non-goals).
func rectClipLineString(pa *PointArray, box GBox) []*PointArray {
	n := pa.NPoints()
	if n == 0 {
		return nil
	}
	if n == 1 {
		if box.Contains2D(GBox{Flags: box.Flags, XMin: pa.At(0).X, XMax: pa.At(0).X, YMin: pa.At(0).Y, YMax: pa.At(0).Y}) {
			return []*PointArray{pa.CloneDeep()}
		}
		return nil
	}

	var pieces []*PointArray
	var current *PointArray
	flush := func() {
		if current != nil && current.NPoints() >= 2 {
			pieces = append(pieces, current)
		}
		current = nil
	}
	for i := 1; i < n; i++ {
		a, b := pa.At(i-1), pa.At(i)
		ca, cb, ok := liangBarsky(a, b, box)
		if !ok {
			flush()
			continue
		}
		if current == nil {
			current = NewPointArray(pa.HasZ(), pa.HasM(), 4)
			current.points = append(current.points, ca)
		} else if !current.EndPoint().Equal2D(ca) {
			flush()
			current = NewPointArray(pa.HasZ(), pa.HasM(), 4)
			current.points = append(current.points, ca)
		}
		current.points = append(current.points, cb)
	}
	flush()
	return pieces
}

// liangBarsky clips segment a-b against box, returning the clipped
// endpoints and ok=false if the segment misses the box entirely.
func liangBarsky(a, b Coord4, box GBox) (Coord4, Coord4, bool) {
	dx, dy := b.X-a.X, b.Y-a.Y
	tMin, tMax := 0.0, 1.0

	clip := func(p, q float64) bool {
		if p == 0 {
			return q >= 0
		}
		r := q / p
		if p < 0 {
			if r > tMax {
				return false
			}
			if r > tMin {
				tMin = r
			}
		} else {
			if r < tMin {
				return false
			}
			if r < tMax {
				tMax = r
			}
		}
		return true
	}

	if !clip(-dx, a.X-box.XMin) || !clip(dx, box.XMax-a.X) ||
		!clip(-dy, a.Y-box.YMin) || !clip(dy, box.YMax-a.Y) {
		return Coord4{}, Coord4{}, false
	}

	ca := lerp(a, b, tMin)
	cb := lerp(a, b, tMax)
	return ca, cb, true
}

// rectClipPolygonRing clips a closed ring against box using the
// Sutherland-Hodgman algorithm, one clip edge at a time.
func rectClipPolygonRing(ring *PointArray, box GBox) *PointArray {
	pts := make([]Coord4, ring.NPoints())
	copy(pts, ring.Points())

	clipEdge := func(pts []Coord4, inside func(Coord4) bool, intersect func(a, b Coord4) Coord4) []Coord4 {
		if len(pts) == 0 {
			return nil
		}
		var out []Coord4
		prev := pts[len(pts)-1]
		prevIn := inside(prev)
		for _, cur := range pts {
			curIn := inside(cur)
			if curIn {
				if !prevIn {
					out = append(out, intersect(prev, cur))
				}
				out = append(out, cur)
			} else if prevIn {
				out = append(out, intersect(prev, cur))
			}
			prev, prevIn = cur, curIn
		}
		return out
	}

	xAt := func(a, b Coord4, x float64) Coord4 {
		t := (x - a.X) / (b.X - a.X)
		return lerp(a, b, t)
	}
	yAt := func(a, b Coord4, y float64) Coord4 {
		t := (y - a.Y) / (b.Y - a.Y)
		return lerp(a, b, t)
	}

	pts = clipEdge(pts, func(p Coord4) bool { return p.X >= box.XMin }, func(a, b Coord4) Coord4 { return xAt(a, b, box.XMin) })
	pts = clipEdge(pts, func(p Coord4) bool { return p.X <= box.XMax }, func(a, b Coord4) Coord4 { return xAt(a, b, box.XMax) })
	pts = clipEdge(pts, func(p Coord4) bool { return p.Y >= box.YMin }, func(a, b Coord4) Coord4 { return yAt(a, b, box.YMin) })
	pts = clipEdge(pts, func(p Coord4) bool { return p.Y <= box.YMax }, func(a, b Coord4) Coord4 { return yAt(a, b, box.YMax) })

	if len(pts) == 0 {
		return NewPointArray(ring.HasZ(), ring.HasM(), 0)
	}
	if !pts[0].Equal2D(pts[len(pts)-1]) {
		pts = append(pts, pts[0])
	}
	return NewPointArrayFrom(ring.HasZ(), ring.HasM(), pts)
}
