package diag

import (
	"fmt"
	"sort"
)

// Bag is the ordered, append-only diagnostic list of one run.
// Every diagnostic is kept until the limit; there is no per-category latch.
type Bag struct {
	items []Diagnostic
	max   int
}

// NewBag creates a bag holding at most max diagnostics; max <= 0 means unlimited.
func NewBag(max int) *Bag {
	capHint := max
	if capHint <= 0 || capHint > 64 {
		capHint = 16
	}
	return &Bag{
		items: make([]Diagnostic, 0, capHint),
		max:   max,
	}
}

// Add appends d unless the limit is reached.
// Returns false when the diagnostic was dropped.
func (b *Bag) Add(d Diagnostic) bool {
	if b.max > 0 && len(b.items) >= b.max {
		return false
	}
	b.items = append(b.items, d)
	return true
}

func (b *Bag) Cap() int {
	return b.max
}

func (b *Bag) Len() int {
	return len(b.items)
}

// HasErrors reports whether anything was recorded. All diagnostics are errors.
func (b *Bag) HasErrors() bool {
	return b != nil && len(b.items) > 0
}

// HasCategory reports whether at least one diagnostic of cat is present.
func (b *Bag) HasCategory(cat Category) bool {
	for i := range b.items {
		if b.items[i].Category() == cat {
			return true
		}
	}
	return false
}

// Count returns how many diagnostics belong to cat.
func (b *Bag) Count(cat Category) int {
	n := 0
	for i := range b.items {
		if b.items[i].Category() == cat {
			n++
		}
	}
	return n
}

// Items returns the internal slice. Callers must not modify it.
func (b *Bag) Items() []Diagnostic {
	return b.items
}

// Filter returns a copy of the diagnostics of cat, in order.
func (b *Bag) Filter(cat Category) []Diagnostic {
	var out []Diagnostic
	for _, d := range b.items {
		if d.Category() == cat {
			out = append(out, d)
		}
	}
	return out
}

// Clear drains the bag so it can be reused for the next run.
func (b *Bag) Clear() {
	b.items = b.items[:0]
}

// Merge appends the diagnostics of other, growing the limit when needed.
func (b *Bag) Merge(other *Bag) {
	if other == nil {
		return
	}
	if total := len(b.items) + len(other.items); b.max > 0 && total > b.max {
		b.max = total
	}
	b.items = append(b.items, other.items...)
}

// Sort orders by file, line, start offset, then code.
func (b *Bag) Sort() {
	sort.SliceStable(b.items, func(i, j int) bool {
		di, dj := b.items[i], b.items[j]
		if di.Primary.File != dj.Primary.File {
			return di.Primary.File < dj.Primary.File
		}
		if di.Line != dj.Line {
			return di.Line < dj.Line
		}
		if di.Primary.Start != dj.Primary.Start {
			return di.Primary.Start < dj.Primary.Start
		}
		return di.Code < dj.Code
	})
}

// Dedup drops repeated (code, span, message) triples, keeping the first.
func (b *Bag) Dedup() {
	seen := make(map[string]bool, len(b.items))
	out := b.items[:0]
	for _, d := range b.items {
		key := fmt.Sprintf("%d:%s:%s", d.Code, d.Primary, d.Message)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, d)
	}
	b.items = out
}
