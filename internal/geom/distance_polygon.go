package geom

// polygonRingContainment classifies pt against a stroked ring set (rings[0]
// outer, rest holes): Inside means inside the outer ring and outside every
// hole; Boundary if pt lies exactly on any ring; else Outside.
func polygonRingContainment(pt Coord4, rings []*PointArray) Containment {
	if len(rings) == 0 {
		return Outside
	}
	outer := rings[0].ContainsPoint(pt)
	if outer == Boundary {
		return Boundary
	}
	if outer == Outside {
		return Outside
	}
	for _, hole := range rings[1:] {
		switch hole.ContainsPoint(pt) {
		case Boundary:
			return Boundary
		case Inside:
			return Outside
		}
	}
	return Inside
}

// considerPointVsSurface implements the point-in-polygon short circuit of
// spec.md §4.4: if p lies inside the outer ring and outside every hole,
// MIN distance is 0 at p itself; otherwise (or in MAX mode) falls back to
// comparing against the ring edges.
func considerPointVsSurface(d *DistState, p Coord4, surface *Geometry) error {
	flat, err := surface.Stroke(DefaultArcSegments)
	if err != nil {
		return err
	}
	if d.Mode == DistMin {
		switch polygonRingContainment(p, flat.Rings) {
		case Inside, Boundary:
			d.considerExact(p, 0)
			return nil
		}
	}
	rings, err := ringEdges(surface)
	if err != nil {
		return err
	}
	for _, ring := range rings {
		if err := considerPointVsEdges(d, p, ring); err != nil {
			return err
		}
		if d.shouldStop() {
			return nil
		}
	}
	return nil
}

// surfaceVsSurface implements the polygon-vs-polygon ordering of spec.md
// §4.4: MAX mode compares outer rings only; MIN mode looks for an early
// full-containment or hole-containment answer before falling back to
// ring-vs-ring brute force, grounded on
// original_source/measures.c:rt_dist2d_poly_poly.
func surfaceVsSurface(d *DistState, a, b *Geometry) error {
	flatA, err := a.Stroke(DefaultArcSegments)
	if err != nil {
		return err
	}
	flatB, err := b.Stroke(DefaultArcSegments)
	if err != nil {
		return err
	}
	ringsA, err := ringEdges(a)
	if err != nil {
		return err
	}
	ringsB, err := ringEdges(b)
	if err != nil {
		return err
	}
	if len(ringsA) == 0 || len(ringsB) == 0 {
		return nil
	}

	if d.Mode == DistMax {
		for _, e1 := range ringsA[0] {
			for _, e2 := range ringsB[0] {
				considerEdgePair(d, e1, e2)
			}
		}
		return nil
	}

	aFirst := flatA.Rings[0].At(0)
	bFirst := flatB.Rings[0].At(0)

	switch {
	case polygonRingContainment(bFirst, flatA.Rings[:1]) != Outside:
		// b's first vertex is inside a's outer ring: check a's holes too.
		for _, hole := range flatA.Rings[1:] {
			if hole.ContainsPoint(bFirst) != Outside {
				for _, e1 := range segEdgesOf(hole) {
					for _, e2 := range ringsB[0] {
						considerEdgePair(d, e1, e2)
						if d.shouldStop() {
							return nil
						}
					}
				}
				return nil
			}
		}
		d.considerExact(bFirst, 0)
		return nil

	case polygonRingContainment(aFirst, flatB.Rings[:1]) != Outside:
		for _, hole := range flatB.Rings[1:] {
			if hole.ContainsPoint(aFirst) != Outside {
				for _, e1 := range ringsA[0] {
					for _, e2 := range segEdgesOf(hole) {
						considerEdgePair(d, e1, e2)
						if d.shouldStop() {
							return nil
						}
					}
				}
				return nil
			}
		}
		d.considerExact(aFirst, 0)
		return nil

	default:
		for _, e1 := range ringsA[0] {
			for _, e2 := range ringsB[0] {
				considerEdgePair(d, e1, e2)
				if d.shouldStop() {
					return nil
				}
			}
		}
		return nil
	}
}
