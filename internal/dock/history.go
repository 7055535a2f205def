package dock

import "log/slog"

// DefaultHistoryLimit caps how many layouts a History keeps.
const DefaultHistoryLimit = 100

// History keeps undo and redo stacks of layouts. Layouts carry no content,
// so restoring one resolves ids against the items the tree holds at that
// moment, then against Fallback. Items neither knows are dropped. Items
// opened since the layout was recorded are kept unless Fallback holds them.
type History struct {
	Past   []Layout
	Future []Layout
	Limit  int

	// Fallback resolves items that are no longer in the tree, such as
	// panels the host closed but still holds.
	Fallback Resolver
}

func NewHistory() *History {
	return &History{Limit: DefaultHistoryLimit}
}

// Record saves the tree's layout before a structural change.
func (h *History) Record(tree *Tree) {
	if h == nil || tree == nil {
		return
	}
	h.Past = append(h.Past, tree.Layout())
	h.Future = nil
	if h.Limit > 0 && len(h.Past) > h.Limit {
		h.Past = h.Past[len(h.Past)-h.Limit:]
	}
}

func (h *History) Undo(tree *Tree) bool {
	if h == nil || tree == nil || len(h.Past) == 0 {
		return false
	}
	last := h.Past[len(h.Past)-1]
	current := tree.Layout()
	if !h.restore(tree, last) {
		return false
	}
	h.Past = h.Past[:len(h.Past)-1]
	h.Future = append(h.Future, current)
	return true
}

func (h *History) Redo(tree *Tree) bool {
	if h == nil || tree == nil || len(h.Future) == 0 {
		return false
	}
	next := h.Future[len(h.Future)-1]
	current := tree.Layout()
	if !h.restore(tree, next) {
		return false
	}
	h.Future = h.Future[:len(h.Future)-1]
	h.Past = append(h.Past, current)
	return true
}

func (h *History) Clear() {
	if h == nil {
		return
	}
	h.Past = nil
	h.Future = nil
}

func (h *History) CanUndo() bool { return h != nil && len(h.Past) > 0 }

func (h *History) CanRedo() bool { return h != nil && len(h.Future) > 0 }

func (h *History) restore(tree *Tree, layout Layout) bool {
	live := tree.Items()
	known := tree.ItemResolver()
	resolve := func(id ItemID) (Item, bool) {
		if item, ok := known(id); ok {
			return item, true
		}
		if h.Fallback != nil {
			return h.Fallback(id)
		}
		return Item{}, false
	}
	if err := tree.SetLayout(layout, resolve); err != nil {
		return false
	}
	for _, id := range live {
		if _, ok := tree.Item(id); ok {
			continue
		}
		if h.Fallback != nil {
			if _, held := h.Fallback(id); held {
				continue
			}
		}
		item, _ := known(id)
		if err := tree.AddItem(item, ""); err != nil {
			slog.Debug("dock: history could not keep item", slog.String("item", string(id)), slog.Any("err", err))
			continue
		}
		slog.Debug("dock: history kept item opened since snapshot", slog.String("item", string(id)))
	}
	return true
}
