package geom

// compatibleChild reports whether child may be added to a collection of
// kind parent, the "add_geom compatibility matrix" of spec.md §3.3.
func compatibleChild(parent, child GeomKind) bool {
	switch parent {
	case KindMultiPoint:
		return child == KindPoint
	case KindMultiLineString:
		return child == KindLineString
	case KindMultiPolygon:
		return child == KindPolygon
	case KindMultiCurve:
		return child == KindLineString || child == KindCircularString || child == KindCompoundCurve
	case KindMultiSurface:
		return child == KindPolygon || child == KindCurvePolygon
	case KindCompoundCurve:
		return child == KindLineString || child == KindCircularString
	case KindCurvePolygon:
		return child == KindLineString || child == KindCircularString || child == KindCompoundCurve
	case KindPolyhedralSurface, KindTin:
		return child == KindPolygon
	case KindGeometryCollection:
		return true
	default:
		return false
	}
}

// AddGeom appends child to a collection-kind geometry, rejecting
// incompatible kinds per compatibleChild (spec.md §3.3, §6.1).
func (g *Geometry) AddGeom(child *Geometry) error {
	switch g.Kind {
	case KindPolygon, KindTriangle:
		return newErr(ErrInvariantViolation, "%s stores rings, not child geometries", g.Kind).withGeom(g.Kind)
	}
	if !g.Kind.IsCollection() {
		return newErr(ErrInvariantViolation, "%s cannot hold child geometries", g.Kind).withGeom(g.Kind)
	}
	if !compatibleChild(g.Kind, child.Kind) {
		return newErr(ErrInvariantViolation, "%s cannot contain a %s", g.Kind, child.Kind).withGeom(g.Kind)
	}
	if g.Kind == KindCompoundCurve && child.IsEmpty() {
		return newErr(ErrInvariantViolation, "CompoundCurve cannot join an empty component").withGeom(g.Kind)
	}
	if !DimCompatible(g.Flags, child.Flags) {
		return newErr(ErrInvariantViolation, "%s and child %s have incompatible dimensionality", g.Kind, child.Kind).withGeom(g.Kind)
	}
	if g.Kind == KindCompoundCurve && len(g.Children) > 0 {
		prevEnd, err := g.Children[len(g.Children)-1].EndPoint()
		if err != nil {
			return err
		}
		childStart, err := child.StartPoint()
		if err != nil {
			return err
		}
		if !prevEnd.Equal2D(childStart) {
			return newErr(ErrInvariantViolation, "CompoundCurve component does not start where the previous one ends").withGeom(g.Kind)
		}
	}
	g.Children = append(g.Children, child)
	g.hasBBox = false
	g.bbox = nil
	return nil
}

// collectionTypeFor returns the minimal homogeneous collection kind whose
// compatibleChild accepts singleton, or KindGeometryCollection if none of
// the specific multi-kinds fit (e.g. Triangle, PolyhedralSurface members).
func collectionTypeFor(singleton GeomKind) GeomKind {
	switch singleton {
	case KindPoint:
		return KindMultiPoint
	case KindLineString:
		return KindMultiLineString
	case KindPolygon:
		return KindMultiPolygon
	case KindCircularString, KindCompoundCurve:
		return KindMultiCurve
	case KindCurvePolygon:
		return KindMultiSurface
	default:
		return KindGeometryCollection
	}
}

// Homogenize returns the "simplest" equivalent form of a GeometryCollection:
// if every leaf shares one kind, that leaf itself when there is only one,
// else a properly-typed Multi*/GeometryCollection of just that kind;
// otherwise a GeometryCollection with one child per kind, either the bare
// member (when the kind has one member) or a typed sub-collection of its
// members. Non-GeometryCollection
// geometries are returned unchanged. Grounded on
// original_source/rthomogenize.c's buffer-by-type-then-reassemble algorithm.
func (g *Geometry) Homogenize() *Geometry {
	if g.Kind != KindGeometryCollection {
		return g.CloneDeep()
	}
	if g.IsEmpty() {
		return ConstructEmpty(KindGeometryCollection, g.SRID, g.Flags.HasZ, g.Flags.HasM)
	}

	buckets := map[GeomKind][]*Geometry{}
	order := []GeomKind{}
	var collectBuf func(col *Geometry)
	collectBuf = func(col *Geometry) {
		for _, child := range col.Children {
			switch child.Kind {
			case KindPoint, KindLineString, KindCircularString, KindCompoundCurve,
				KindTriangle, KindCurvePolygon, KindPolygon:
				if _, ok := buckets[child.Kind]; !ok {
					order = append(order, child.Kind)
				}
				buckets[child.Kind] = append(buckets[child.Kind], child.CloneDeep())
			case KindGeometryCollection:
				collectBuf(child)
			default:
				// Already-typed multi-collections: unwrap their members too,
				// matching the source treating any sub-collection generically.
				for _, m := range child.Children {
					if _, ok := buckets[m.Kind]; !ok {
						order = append(order, m.Kind)
					}
					buckets[m.Kind] = append(buckets[m.Kind], m.CloneDeep())
				}
			}
		}
	}
	collectBuf(g)

	if len(order) == 0 {
		return ConstructEmpty(KindGeometryCollection, g.SRID, g.Flags.HasZ, g.Flags.HasM)
	}
	if len(order) == 1 {
		members := buckets[order[0]]
		if len(members) == 1 {
			out := members[0]
			out.SRID = g.SRID
			return out
		}
		out := &Geometry{Kind: collectionTypeFor(order[0]), Flags: g.Flags, SRID: g.SRID}
		out.Children = members
		return out
	}

	out := &Geometry{Kind: KindGeometryCollection, Flags: g.Flags, SRID: g.SRID}
	for _, k := range order {
		members := buckets[k]
		if len(members) == 1 {
			out.Children = append(out.Children, members[0])
			continue
		}
		sub := &Geometry{Kind: collectionTypeFor(k), Flags: g.Flags, SRID: g.SRID}
		sub.Children = members
		out.Children = append(out.Children, sub)
	}
	return out
}
