package dock

import "fmt"

// Transplant moves an item from src into dst at target, for tearing a tab
// off into another window's tree. The item keeps its content, so src does
// not call OnItemRemoved. dst checks the target before src is touched; an
// empty dst ignores the target and gets a root stack.
func Transplant(src, dst *Tree, id ItemID, target DropTarget) error {
	if src == nil || dst == nil {
		return fmt.Errorf("dock: transplant requires two trees: %w", ErrNotFound)
	}
	if src == dst {
		return src.MoveItem(id, target)
	}
	item, ok := src.Item(id)
	if !ok {
		return fmt.Errorf("dock: item %q: %w", id, ErrNotFound)
	}
	if err := dst.checkNewItem(item); err != nil {
		return err
	}
	if !dst.Empty() {
		dest, err := dst.checkTarget(target)
		if err != nil {
			return err
		}
		if target.Hotspot.IsTabPosition() {
			if _, err := tabIndex(dest, target.Hotspot); err != nil {
				return err
			}
		}
	}
	src.detach(id)
	delete(src.items, id)
	return dst.PlaceItem(item, target)
}
