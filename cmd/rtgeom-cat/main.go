// Command rtgeom-cat reads a single WKT geometry (as its one argument or
// from stdin) and prints its WKT (ISO variant), hex WKB, and summary
// measurements. It exists to exercise pkg/rtgeom's public surface end to
// end, the way the teacher's docs/examples walked through pkg/s57.
package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/rtgeom/rtgeom/pkg/rtgeom"
)

func main() {
	input, err := readInput()
	if err != nil {
		log.Fatalf("rtgeom-cat: %v", err)
	}

	g, err := rtgeom.FromWKT(input)
	if err != nil {
		log.Fatalf("rtgeom-cat: parse: %v", err)
	}

	wkt, err := rtgeom.ToWKT(g, rtgeom.WKTVariantISO, 0)
	if err != nil {
		log.Fatalf("rtgeom-cat: to_wkt: %v", err)
	}
	fmt.Printf("kind:     %s\n", g.Kind())
	fmt.Printf("srid:     %d\n", g.SRID())
	fmt.Printf("vertices: %d\n", g.CountVertices())
	fmt.Printf("wkt:      %s\n", wkt)

	wkb, err := rtgeom.ToWKB(g, rtgeom.WKBOptions{Variant: rtgeom.WKBVariantExtended, Hex: true})
	if err != nil {
		log.Fatalf("rtgeom-cat: to_wkb: %v", err)
	}
	fmt.Printf("wkb_hex:  %s\n", wkb)

	box := g.BoundingBox()
	fmt.Printf("bbox:     [%.6f,%.6f] to [%.6f,%.6f]\n", box.XMin, box.YMin, box.XMax, box.YMax)
}

func readInput() (string, error) {
	if len(os.Args) > 1 {
		return strings.TrimSpace(strings.Join(os.Args[1:], " ")), nil
	}
	data, err := io.ReadAll(bufio.NewReader(os.Stdin))
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
