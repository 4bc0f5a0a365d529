package bezier

// Flatten reduces a segment to n straight line primitives by sampling the
// curve at uniform parameter steps t = 1/n, 2/n, …, 1. The segment start
// is implied: the first primitive starts at P0, where the consumer already
// sits. Non-adaptive; quality is solely a function of n. A sample count
// below 1 is raised to 1.
func Flatten(seg Segment, n int) []Primitive {
	if n < 1 {
		n = 1
	}
	prims := make([]Primitive, 0, n)
	prev := seg.P0
	for s := 1; s <= n; s++ {
		t := float64(s) / float64(n)
		pt := seg.Eval(t)
		prims = append(prims, Primitive{Kind: KindLine, Start: prev, End: pt})
		prev = pt
	}
	return prims
}
