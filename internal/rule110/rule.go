package rule110

// Neighborhood is a 3-bit cell neighborhood, left cell in the high bit.
type Neighborhood uint8

// NeighborhoodOf packs (l, c, r) into its 3-bit index.
func NeighborhoodOf(l, c, r bool) Neighborhood {
	var n Neighborhood
	if l {
		n |= 4
	}
	if c {
		n |= 2
	}
	if r {
		n |= 1
	}
	return n
}

// table is indexed by Neighborhood and covers all eight entries.
var table = [8]bool{
	0b000: false,
	0b001: true,
	0b010: true,
	0b011: true,
	0b100: false,
	0b101: true,
	0b110: true,
	0b111: false,
}

// Apply returns the next state of the center cell.
func Apply(l, c, r bool) bool {
	return table[NeighborhoodOf(l, c, r)]
}

// Table returns a copy of the transition table.
func Table() [8]bool {
	return table
}

// AliveNeighborhoods lists the neighborhoods whose successor is alive,
// in ascending index order.
func AliveNeighborhoods() []Neighborhood {
	var alive []Neighborhood
	for i, next := range table {
		if next {
			alive = append(alive, Neighborhood(i))
		}
	}
	return alive
}
