package wkt

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/rtgeom/rtgeom/internal/geom"
)

// token kinds for the hand-written tokenizer: WKT has a tiny alphabet, so a
// full lexer generator would be overkill (spec.md §4.8).
type tokenKind int

const (
	tokWord tokenKind = iota
	tokNumber
	tokLParen
	tokRParen
	tokComma
	tokEOF
)

type token struct {
	kind tokenKind
	text string
	col  int
}

type lexer struct {
	s   string
	pos int
}

func newLexer(s string) *lexer { return &lexer{s: s} }

func (l *lexer) skipSpace() {
	for l.pos < len(l.s) && unicode.IsSpace(rune(l.s[l.pos])) {
		l.pos++
	}
}

func (l *lexer) next() (token, error) {
	l.skipSpace()
	if l.pos >= len(l.s) {
		return token{kind: tokEOF, col: l.pos}, nil
	}
	start := l.pos
	c := l.s[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokLParen, text: "(", col: start}, nil
	case c == ')':
		l.pos++
		return token{kind: tokRParen, text: ")", col: start}, nil
	case c == ',':
		l.pos++
		return token{kind: tokComma, text: ",", col: start}, nil
	case c == '-' || c == '+' || c == '.' || (c >= '0' && c <= '9'):
		l.pos++
		for l.pos < len(l.s) && isNumberByte(l.s[l.pos]) {
			l.pos++
		}
		return token{kind: tokNumber, text: l.s[start:l.pos], col: start}, nil
	case isWordStart(c):
		l.pos++
		for l.pos < len(l.s) && isWordByte(l.s[l.pos]) {
			l.pos++
		}
		return token{kind: tokWord, text: l.s[start:l.pos], col: start}, nil
	default:
		return token{}, parseErrAt(start, "unexpected character %q", c)
	}
}

func isNumberByte(b byte) bool {
	return (b >= '0' && b <= '9') || b == '.' || b == 'e' || b == 'E' || b == '+' || b == '-'
}

func isWordStart(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || b == '_'
}

func isWordByte(b byte) bool {
	return isWordStart(b) || (b >= '0' && b <= '9')
}

// parser walks the token stream produced by lexer, building geometries
// directly rather than an intermediate AST (the teacher's
// internal/parser/parser.go reads ISO 8211 fields straight into domain
// structs the same way).
type parser struct {
	lex  *lexer
	tok  token
	srid int32
}

func (p *parser) advance() error {
	t, err := p.lex.next()
	if err != nil {
		return err
	}
	p.tok = t
	return nil
}

func (p *parser) expect(k tokenKind) (token, error) {
	if p.tok.kind != k {
		return token{}, parseErrAt(p.tok.col, "unexpected token %q", p.tok.text)
	}
	t := p.tok
	return t, p.advance()
}

// Read parses a single WKT geometry, with an optional "SRID=n;" prefix
// (spec.md §4.8). All three dialects are accepted regardless of any Options
// passed to Write; the reader has no separate Options of its own.
func Read(s string) (*geom.Geometry, error) {
	srid := geom.UnknownSRID
	rest := s
	if strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		semi := strings.IndexByte(s, ';')
		if semi < 0 {
			return nil, parseErr("SRID prefix missing terminating ';'")
		}
		n, err := strconv.Atoi(strings.TrimSpace(s[len("SRID="):semi]))
		if err != nil {
			return nil, parseErr("invalid SRID value: %s", err)
		}
		srid = int32(n)
		rest = s[semi+1:]
	}

	p := &parser{lex: newLexer(rest), srid: srid}
	if err := p.advance(); err != nil {
		return nil, err
	}
	g, err := p.parseTagged()
	if err != nil {
		return nil, err
	}
	if p.tok.kind != tokEOF {
		return nil, parseErrAt(p.tok.col, "unexpected trailing input %q", p.tok.text)
	}
	return g, nil
}

// parseTagged consumes "TAG [Z|M|ZM] (...)" or "TAG [Z|M|ZM] EMPTY".
func (p *parser) parseTagged() (*geom.Geometry, error) {
	tagTok, err := p.expect(tokWord)
	if err != nil {
		return nil, err
	}
	upper := strings.ToUpper(tagTok.text)

	hasZ, hasM := false, false
	tagName := upper
	// Extended "POINTM"/"MULTIPOINTM" fused M suffix: only valid when the
	// base tag (without the trailing M) is a known tag.
	if strings.HasSuffix(upper, "M") {
		if base, ok := tagKinds[strings.TrimSuffix(upper, "M")]; ok {
			tagName = tagNames[base]
			hasM = true
		}
	}
	kind, ok := tagKinds[tagName]
	if !ok {
		return nil, parseErrAt(tagTok.col, "unknown geometry tag %q", tagTok.text)
	}

	// ISO-style dimension qualifier word(s): "Z", "M", or "ZM", optionally
	// split as "Z" "M".
	for p.tok.kind == tokWord {
		switch strings.ToUpper(p.tok.text) {
		case "Z":
			hasZ = true
		case "M":
			hasM = true
		case "ZM":
			hasZ, hasM = true, true
		case "EMPTY":
			if err := p.advance(); err != nil {
				return nil, err
			}
			return geom.ConstructEmpty(kind, p.srid, hasZ, hasM), nil
		default:
			return nil, parseErrAt(p.tok.col, "unexpected qualifier %q after %s", p.tok.text, tagTok.text)
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}

	if !hasZ && !hasM && p.tok.kind == tokLParen {
		// Extended WKT writes Z/ZM coordinates with no qualifier
		// ("POINT(1 2 3)"): take the dimension from the first tuple's width.
		tuple := strings.TrimLeft(p.lex.s[p.tok.col:], "( \t\r\n")
		if end := strings.IndexAny(tuple, ",()"); end >= 0 {
			tuple = tuple[:end]
		}
		switch len(strings.Fields(tuple)) {
		case 3:
			hasZ = true
		case 4:
			hasZ, hasM = true, true
		}
	}

	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	g, err := p.parseBody(kind, hasZ, hasM)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *parser) parseBody(kind geom.GeomKind, hasZ, hasM bool) (*geom.Geometry, error) {
	switch kind {
	case geom.KindPoint:
		c, err := p.parseCoord(hasZ, hasM)
		if err != nil {
			return nil, err
		}
		pa := geom.NewPointArrayFrom(hasZ, hasM, []geom.Coord4{c})
		return geom.NewPoint(p.srid, pa)

	case geom.KindLineString:
		pa, err := p.parseCoordList(hasZ, hasM)
		if err != nil {
			return nil, err
		}
		return geom.NewLineString(p.srid, pa)

	case geom.KindCircularString:
		pa, err := p.parseCoordList(hasZ, hasM)
		if err != nil {
			return nil, err
		}
		return geom.NewCircularString(p.srid, pa)

	case geom.KindPolygon:
		rings, err := p.parseRingList(hasZ, hasM)
		if err != nil {
			return nil, err
		}
		return geom.NewPolygon(p.srid, hasZ, hasM, rings)

	case geom.KindTriangle:
		rings, err := p.parseRingList(hasZ, hasM)
		if err != nil {
			return nil, err
		}
		if len(rings) != 1 {
			return nil, parseErr("TRIANGLE must have exactly one ring, got %d", len(rings))
		}
		return geom.NewTriangle(p.srid, rings[0])

	case geom.KindMultiPoint:
		return p.parseMembers(kind, hasZ, hasM, func() (*geom.Geometry, error) {
			return p.parseMultiPointMember(hasZ, hasM)
		})

	case geom.KindMultiLineString:
		return p.parseMembers(kind, hasZ, hasM, func() (*geom.Geometry, error) {
			return p.parseParenWrapped(geom.KindLineString, hasZ, hasM)
		})

	case geom.KindMultiPolygon:
		return p.parseMembers(kind, hasZ, hasM, func() (*geom.Geometry, error) {
			return p.parseParenWrapped(geom.KindPolygon, hasZ, hasM)
		})

	case geom.KindPolyhedralSurface, geom.KindTin:
		return p.parseMembers(kind, hasZ, hasM, func() (*geom.Geometry, error) {
			return p.parseParenWrapped(geom.KindPolygon, hasZ, hasM)
		})

	case geom.KindCompoundCurve:
		return p.parseMembers(kind, hasZ, hasM, func() (*geom.Geometry, error) {
			return p.parseCurveMember(hasZ, hasM)
		})

	case geom.KindMultiCurve:
		return p.parseMembers(kind, hasZ, hasM, func() (*geom.Geometry, error) {
			return p.parseCurveMember(hasZ, hasM)
		})

	case geom.KindCurvePolygon:
		return p.parseMembers(kind, hasZ, hasM, func() (*geom.Geometry, error) {
			return p.parseCurveRingMember(hasZ, hasM)
		})

	case geom.KindMultiSurface:
		return p.parseMembers(kind, hasZ, hasM, func() (*geom.Geometry, error) {
			return p.parseSurfaceMember(hasZ, hasM)
		})

	case geom.KindGeometryCollection:
		return p.parseMembers(kind, hasZ, hasM, p.parseTagged)

	default:
		return nil, parseErr("unsupported geometry tag for %s", kind)
	}
}

// parseParenWrapped consumes "(coordlist-or-ringlist)" for a bare member
// with kind's shape but without its own tag (LineString/Polygon members of
// the flat Multi* forms).
func (p *parser) parseParenWrapped(kind geom.GeomKind, hasZ, hasM bool) (*geom.Geometry, error) {
	if _, err := p.expect(tokLParen); err != nil {
		return nil, err
	}
	g, err := p.parseBody(kind, hasZ, hasM)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(tokRParen); err != nil {
		return nil, err
	}
	return g, nil
}

// parseMultiPointMember accepts both "(x y)" and the bare-tuple legacy form
// "x y" that most WKT emitters still produce for MULTIPOINT members.
func (p *parser) parseMultiPointMember(hasZ, hasM bool) (*geom.Geometry, error) {
	if p.tok.kind == tokLParen {
		if err := p.advance(); err != nil {
			return nil, err
		}
		if p.tok.kind == tokWord && strings.EqualFold(p.tok.text, "EMPTY") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			if _, err := p.expect(tokRParen); err != nil {
				return nil, err
			}
			return geom.ConstructEmpty(geom.KindPoint, p.srid, hasZ, hasM), nil
		}
		c, err := p.parseCoord(hasZ, hasM)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		pa := geom.NewPointArrayFrom(hasZ, hasM, []geom.Coord4{c})
		return geom.NewPoint(p.srid, pa)
	}
	c, err := p.parseCoord(hasZ, hasM)
	if err != nil {
		return nil, err
	}
	pa := geom.NewPointArrayFrom(hasZ, hasM, []geom.Coord4{c})
	return geom.NewPoint(p.srid, pa)
}

// parseCurveMember accepts a bare coordinate-list parenthesized LineString,
// or a fully tagged CIRCULARSTRING/COMPOUNDCURVE member (spec.md §4.8).
func (p *parser) parseCurveMember(hasZ, hasM bool) (*geom.Geometry, error) {
	if p.tok.kind == tokLParen {
		return p.parseParenWrapped(geom.KindLineString, hasZ, hasM)
	}
	return p.parseTagged()
}

// parseCurveRingMember accepts a bare Polygon-style ring "(...)", or a
// fully tagged CIRCULARSTRING/COMPOUNDCURVE ring member of a CURVEPOLYGON.
func (p *parser) parseCurveRingMember(hasZ, hasM bool) (*geom.Geometry, error) {
	if p.tok.kind == tokLParen {
		return p.parseParenWrapped(geom.KindLineString, hasZ, hasM)
	}
	return p.parseTagged()
}

// parseSurfaceMember accepts a bare Polygon ring-list "((...), (...))", or
// a fully tagged CURVEPOLYGON member of a MULTISURFACE.
func (p *parser) parseSurfaceMember(hasZ, hasM bool) (*geom.Geometry, error) {
	if p.tok.kind == tokLParen {
		return p.parseParenWrapped(geom.KindPolygon, hasZ, hasM)
	}
	return p.parseTagged()
}

func (p *parser) parseMembers(kind geom.GeomKind, hasZ, hasM bool, one func() (*geom.Geometry, error)) (*geom.Geometry, error) {
	g := &geom.Geometry{Kind: kind, Flags: geom.Flags{HasZ: hasZ, HasM: hasM}, SRID: p.srid}
	for {
		child, err := one()
		if err != nil {
			return nil, err
		}
		g.Children = append(g.Children, child)
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func (p *parser) parseRingList(hasZ, hasM bool) ([]*geom.PointArray, error) {
	var rings []*geom.PointArray
	for {
		if _, err := p.expect(tokLParen); err != nil {
			return nil, err
		}
		pa, err := p.parseCoordList(hasZ, hasM)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(tokRParen); err != nil {
			return nil, err
		}
		rings = append(rings, pa)
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return rings, nil
}

func (p *parser) parseCoordList(hasZ, hasM bool) (*geom.PointArray, error) {
	var pts []geom.Coord4
	for {
		c, err := p.parseCoord(hasZ, hasM)
		if err != nil {
			return nil, err
		}
		pts = append(pts, c)
		if p.tok.kind != tokComma {
			break
		}
		if err := p.advance(); err != nil {
			return nil, err
		}
	}
	return geom.NewPointArrayFrom(hasZ, hasM, pts), nil
}

func (p *parser) parseCoord(hasZ, hasM bool) (geom.Coord4, error) {
	x, err := p.parseNumber()
	if err != nil {
		return geom.Coord4{}, err
	}
	y, err := p.parseNumber()
	if err != nil {
		return geom.Coord4{}, err
	}
	c := geom.Coord4{X: x, Y: y}
	if hasZ {
		z, err := p.parseNumber()
		if err != nil {
			return geom.Coord4{}, err
		}
		c.Z = z
	}
	if hasM {
		m, err := p.parseNumber()
		if err != nil {
			return geom.Coord4{}, err
		}
		c.M = m
	}
	return c, nil
}

func (p *parser) parseNumber() (float64, error) {
	if p.tok.kind != tokNumber {
		return 0, parseErrAt(p.tok.col, "expected a number, got %q", p.tok.text)
	}
	v, err := strconv.ParseFloat(p.tok.text, 64)
	if err != nil {
		return 0, parseErrAt(p.tok.col, "invalid number %q: %s", p.tok.text, err)
	}
	return v, p.advance()
}
