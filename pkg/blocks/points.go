package blocks

import "fmt"

// AddPoint inserts an empty point at index at of the list block i; at past the
// end (or negative) appends.
func (d Document) AddPoint(i, at int) Document {
	return d.replacePoints(i, func(points []string) []string {
		if at < 0 || at > len(points) {
			at = len(points)
		}
		out := make([]string, 0, len(points)+1)
		out = append(out, points[:at]...)
		out = append(out, "")
		return append(out, points[at:]...)
	})
}

// UpdatePoint sets point p of the list block i.
func (d Document) UpdatePoint(i, p int, value string) Document {
	return d.replacePoints(i, func(points []string) []string {
		mustPoint(points, p)
		out := append([]string(nil), points...)
		out[p] = value
		return out
	})
}

// RemovePoint removes point p of the list block i. Removing the last point
// leaves the block with a single empty point.
func (d Document) RemovePoint(i, p int) Document {
	return d.replacePoints(i, func(points []string) []string {
		mustPoint(points, p)
		out := make([]string, 0, len(points))
		out = append(out, points[:p]...)
		out = append(out, points[p+1:]...)
		if len(out) == 0 {
			out = append(out, "")
		}
		return out
	})
}

// ValidPoint reports whether block i is a list block with a point at p.
func (d Document) ValidPoint(i, p int) bool {
	if !d.ValidIndex(i) || !d.blocks[i].Style.IsList() {
		return false
	}
	return p >= 0 && p < len(d.blocks[i].Points)
}

func (d Document) replacePoints(i int, fn func([]string) []string) Document {
	return d.replace(i, func(b Block) Block {
		if !b.Style.IsList() {
			panic(fmt.Sprintf("blocks: block %d has style %q, not a list", i, string(b.Style)))
		}
		b.Points = fn(b.Points)
		return b
	})
}

func mustPoint(points []string, p int) {
	if p < 0 || p >= len(points) {
		panic(fmt.Sprintf("blocks: point %d out of range [0,%d)", p, len(points)))
	}
}
