package mem

import "fmt"

// PagedCore tracks page layout for a paged memory model; it holds no values
// itself.
type PagedCore struct {
	// PageSize specifies the length for newly allocated pages.
	PageSize uint

	// Limit specifies an address past which any store or load should result
	// in an error; 0 means no limit.
	Limit uint

	bases []uint
	sizes []uint
}

// LimitError indicates that a memory operation, like load or store, exceeded a limit.
type LimitError struct {
	Addr  uint
	Limit uint
	Op    string
}

func (lim LimitError) Error() string {
	return fmt.Sprintf("memory limit %v exceeded by %v @%v", lim.Limit, lim.Op, lim.Addr)
}

// findPage returns the index of the last page whose base is <= addr, or 0.
func (m *PagedCore) findPage(addr uint) int {
	i, j := 0, len(m.bases)
	for i < j {
		h := int(uint(i+j)>>1) + 1
		if h < len(m.bases) && m.bases[h] <= addr {
			i = h
		} else {
			j = h - 1
		}
	}
	return i
}

// allocPage returns the page layout covering addr at pageID, inserting a
// new page when addr falls past the end of the layout or in a gap before
// the page at pageID.
func (m *PagedCore) allocPage(pageID int, addr uint) (base, size uint, isNew bool) {
	if pageID == len(m.bases) {
		base = addr / m.PageSize * m.PageSize
		size = m.PageSize
		if i := len(m.bases) - 1; i >= 0 {
			if lastEnd := m.bases[i] + m.sizes[i]; base < lastEnd {
				size -= lastEnd - base
				base = lastEnd
			}
		}
		m.bases = append(m.bases, base)
		m.sizes = append(m.sizes, size)
		return base, size, true
	}

	base = m.bases[pageID]
	if addr >= base {
		return base, m.sizes[pageID], false
	}

	nextBase := base
	base = addr / m.PageSize * m.PageSize
	if i := pageID - 1; i >= 0 {
		if prevEnd := m.bases[i] + m.sizes[i]; base < prevEnd {
			base = prevEnd
		}
	}
	size = m.PageSize
	if gapSize := nextBase - base; size > gapSize {
		size = gapSize
	}
	m.bases = append(m.bases, 0)
	m.sizes = append(m.sizes, 0)
	copy(m.bases[pageID+1:], m.bases[pageID:])
	copy(m.sizes[pageID+1:], m.sizes[pageID:])
	m.bases[pageID] = base
	m.sizes[pageID] = size
	return base, size, true
}

func (m *PagedCore) checkLimit(addr uint, op string) error {
	if limit := m.Limit; limit != 0 && addr > limit {
		return LimitError{Addr: addr, Limit: limit, Op: op}
	}
	return nil
}
