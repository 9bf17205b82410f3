// Package controls holds the stateful input widgets of the chat screen.
package controls

// Dropdown is a button with an expandable list of items. Its open state is
// local to the control and is never reported to core.
type Dropdown struct {
	Items  []string
	open   bool
	cursor int
}

func NewDropdown(items []string) Dropdown {
	return Dropdown{Items: items}
}

func (d *Dropdown) Open() bool {
	return d.open
}

func (d *Dropdown) Toggle() {
	d.open = !d.open
}

func (d *Dropdown) Close() {
	d.open = false
}

func (d *Dropdown) Cursor() int {
	return d.cursor
}

func (d *Dropdown) MoveUp() {
	if !d.open || len(d.Items) == 0 {
		return
	}
	d.cursor = (d.cursor - 1 + len(d.Items)) % len(d.Items)
}

func (d *Dropdown) MoveDown() {
	if !d.open || len(d.Items) == 0 {
		return
	}
	d.cursor = (d.cursor + 1) % len(d.Items)
}

// Choose returns the highlighted item and closes the list. It reports false
// when the list is closed or empty.
func (d *Dropdown) Choose() (string, bool) {
	if !d.open || len(d.Items) == 0 {
		return "", false
	}
	d.open = false
	return d.Items[d.cursor], true
}
