// Package mem provides a sparse paged memory of 64-bit signed cells.
package mem

// DefaultPageSize provides a default for Cells.PageSize.
const DefaultPageSize = 256

// Cells implements a paged memory of int64 values.
// Addresses never stored to read as 0; pages are allocated on demand and are
// never freed.
type Cells struct {
	PagedCore
	pages [][]int64
}

// Size returns an address one position higher than the last position in the
// last page allocated so far.
func (m *Cells) Size() uint {
	if i := len(m.bases) - 1; i >= 0 {
		return m.bases[i] + uint(len(m.pages[i]))
	}
	return 0
}

// Load returns a single value from the given address.
// Unallocated pages are left unallocated, resulting in implicit 0 values.
func (m *Cells) Load(addr uint) (int64, error) {
	if err := m.checkLimit(addr, "load"); err != nil {
		return 0, err
	}
	if len(m.pages) == 0 {
		return 0, nil
	}
	pageID := m.findPage(addr)
	base, page := m.bases[pageID], m.pages[pageID]
	if addr >= base {
		if i := addr - base; i < uint(len(page)) {
			return page[i], nil
		}
	}
	return 0, nil
}

// LoadInto reads len(buf) values from memory starting at addr, zeroing any
// part of buf that falls into unallocated space.
// Returns an error if Limit would be exceeded; no partial load is done.
func (m *Cells) LoadInto(addr uint, buf []int64) error {
	if len(buf) == 0 {
		return nil
	}

	end := addr + uint(len(buf))
	if err := m.checkLimit(end-1, "load"); err != nil {
		return err
	}

	for pageID := m.findPage(addr); addr < end && pageID < len(m.bases); pageID++ {
		base := m.bases[pageID]
		if base >= end {
			break
		}

		if base > addr {
			skip := base - addr
			for i := range buf[:skip] {
				buf[i] = 0
			}
			buf = buf[skip:]
			addr = base
		}

		page := m.pages[pageID]
		if skip := addr - base; skip > 0 {
			if skip >= uint(len(page)) {
				continue
			}
			page = page[skip:]
		}

		n := copy(buf, page)
		buf = buf[n:]
		addr += uint(n)
	}

	for i := range buf {
		buf[i] = 0
	}
	return nil
}

// Stor stores values at addr, allocating pages as necessary.
// Returns an error if Limit would be exceeded; no partial store is done.
func (m *Cells) Stor(addr uint, values ...int64) error {
	if len(values) == 0 {
		return nil
	}

	end := addr + uint(len(values))
	if err := m.checkLimit(end-1, "stor"); err != nil {
		return err
	}

	if m.PageSize == 0 {
		m.PageSize = DefaultPageSize
	}

	for pageID := m.findPage(addr); addr < end; pageID++ {
		base, size, page := m.allocPage(pageID, addr)
		if skip := addr - base; skip > 0 {
			if skip >= size {
				continue
			}
			page = page[skip:]
		}
		n := copy(page, values)
		values = values[n:]
		addr += uint(n)
	}
	return nil
}

// Span is a run of contiguous cells starting at Base.
type Span struct {
	Base   uint
	Values []int64
}

// End returns the address just past the span.
func (sp Span) End() uint { return sp.Base + uint(len(sp.Values)) }

// Spans returns a copy of all allocated memory in address order, with
// adjacent pages merged. Addresses between spans have never been stored to.
func (m *Cells) Spans() []Span {
	var spans []Span
	for i, base := range m.bases {
		page := m.pages[i]
		if n := len(spans) - 1; n >= 0 && spans[n].End() == base {
			spans[n].Values = append(spans[n].Values, page...)
			continue
		}
		spans = append(spans, Span{Base: base, Values: append([]int64(nil), page...)})
	}
	return spans
}

func (m *Cells) allocPage(pageID int, addr uint) (base, size uint, page []int64) {
	base, size, isNew := m.PagedCore.allocPage(pageID, addr)
	if !isNew {
		return base, size, m.pages[pageID]
	}
	page = make([]int64, size)
	m.pages = append(m.pages, nil)
	copy(m.pages[pageID+1:], m.pages[pageID:])
	m.pages[pageID] = page
	return base, size, page
}
