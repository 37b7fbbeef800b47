// Command rtgeom-simplify reads a WKT LineString and a tolerance, and
// prints the Douglas-Peucker-simplified result alongside the vertex counts
// before and after.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/rtgeom/rtgeom/pkg/rtgeom"
)

func main() {
	tolerance := flag.Float64("tolerance", 0.01, "Douglas-Peucker tolerance")
	preserveCollapsed := flag.Bool("preserve-collapsed", true, "keep a 2-point result instead of discarding it")
	flag.Parse()

	if flag.NArg() != 1 {
		log.Fatalf("usage: rtgeom-simplify [-tolerance N] [-preserve-collapsed] <WKT>")
	}

	g, err := rtgeom.FromWKT(flag.Arg(0))
	if err != nil {
		log.Fatalf("rtgeom-simplify: parse: %v", err)
	}

	before := g.CountVertices()
	simplified, err := g.Simplify(*tolerance, *preserveCollapsed)
	if err != nil {
		log.Fatalf("rtgeom-simplify: simplify: %v", err)
	}
	if simplified == nil {
		fmt.Println("result: <collapsed, discarded>")
		return
	}

	wkt, err := rtgeom.ToWKT(simplified, rtgeom.WKTVariantISO, 0)
	if err != nil {
		log.Fatalf("rtgeom-simplify: to_wkt: %v", err)
	}
	fmt.Printf("before: %d vertices\n", before)
	fmt.Printf("after:  %d vertices\n", simplified.CountVertices())
	fmt.Printf("result: %s\n", wkt)
}
