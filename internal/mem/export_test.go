package mem

// CellsDump provides page layout data for testing.
type CellsDump struct {
	Bases []uint
	Sizes []uint
	Pages [][]int64
}

// Dump memory layout for testing.
func (m *Cells) Dump() (d CellsDump) {
	d.Bases = m.bases
	d.Sizes = m.sizes
	d.Pages = m.pages
	return d
}
