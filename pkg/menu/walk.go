package menu

// crossIndexes walks the cross product of positions [0, sizes[i]) in
// depth-first order (rightmost position varies fastest) using explicit
// cursors, and stops as soon as bound complete vectors have been emitted.
// A position with size zero makes the whole product empty.
func crossIndexes(sizes []int, bound int) [][]int {
	n := len(sizes)
	if n == 0 || bound <= 0 {
		return nil
	}
	for _, s := range sizes {
		if s <= 0 {
			return nil
		}
	}
	var out [][]int
	cursors := make([]int, n)
	for {
		if len(out) >= bound {
			return out
		}
		vec := make([]int, n)
		copy(vec, cursors)
		out = append(out, vec)

		d := n - 1
		for d >= 0 {
			cursors[d]++
			if cursors[d] < sizes[d] {
				break
			}
			cursors[d] = 0
			d--
		}
		if d < 0 {
			return out
		}
	}
}
