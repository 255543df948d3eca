// Package order implements pin-aware manual ordering for a group of items.
// The same algorithm serves quests within a status group and tasks within a
// quest: callers project their items into Entry values, reorder, and splice
// the new order keys back by id.
package order

import (
	"fmt"
	"sort"
)

// Spacing between renumbered order keys. Large gaps let future single
// insertions land between neighbors without renumbering the whole group.
const renumberGap = 1000

// Entry is the ordering view of an item: identity, pin flag, and the
// numeric sort key (higher sorts earlier).
type Entry struct {
	ID     string
	Pinned bool
	Order  int64
}

// Less reports whether a sorts before b: pinned entries first, then
// higher order keys.
func Less(a, b Entry) bool {
	if a.Pinned != b.Pinned {
		return a.Pinned
	}
	return a.Order > b.Order
}

// Sorted returns the entries in display order.
func Sorted(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	sort.SliceStable(out, func(i, j int) bool {
		return Less(out[i], out[j])
	})
	return out
}

// Reorder moves the dragged entry to just before the target entry and
// renumbers the whole group as now - index*gap, guaranteeing strict
// descending keys. Both ids must belong to the group; a missing id is the
// one structurally impossible state this package surfaces as an error.
func Reorder(entries []Entry, draggedID, targetID string, now int64) ([]Entry, error) {
	if draggedID == targetID {
		return Sorted(entries), nil
	}

	sorted := Sorted(entries)

	draggedIdx := -1
	for i, e := range sorted {
		if e.ID == draggedID {
			draggedIdx = i
			break
		}
	}
	if draggedIdx < 0 {
		return nil, fmt.Errorf("reorder: dragged entry %q not in group", draggedID)
	}

	dragged := sorted[draggedIdx]
	sorted = append(sorted[:draggedIdx], sorted[draggedIdx+1:]...)

	targetIdx := -1
	for i, e := range sorted {
		if e.ID == targetID {
			targetIdx = i
			break
		}
	}
	if targetIdx < 0 {
		return nil, fmt.Errorf("reorder: target entry %q not in group", targetID)
	}

	sorted = append(sorted, Entry{})
	copy(sorted[targetIdx+1:], sorted[targetIdx:])
	sorted[targetIdx] = dragged

	for i := range sorted {
		sorted[i].Order = now - int64(i)*renumberGap
	}
	return sorted, nil
}

// PinOrder returns the order key a freshly pinned item receives: the
// current timestamp, which floats it to the top of the pinned sub-group.
func PinOrder(now int64) int64 {
	return now
}
