package catalog

// Directory is one browsable listing with its cursor and visible window
// [Start, End).
type Directory struct {
	Path      string
	Name      string
	Entries   []Entry
	AlphaJump []AlphaJump
	Selected  int
	Start     int
	End       int

	rows int
}

func NewDirectory(path, name string, entries []Entry, jumps []AlphaJump, rows int) *Directory {
	if rows < 1 {
		rows = 1
	}
	d := &Directory{
		Path:      path,
		Name:      name,
		Entries:   entries,
		AlphaJump: jumps,
		rows:      rows,
	}
	d.End = min(len(entries), rows)
	return d
}

func (d *Directory) Len() int  { return len(d.Entries) }
func (d *Directory) Rows() int { return d.rows }

func (d *Directory) Current() (Entry, bool) {
	if d.Selected < 0 || d.Selected >= len(d.Entries) {
		return Entry{}, false
	}
	return d.Entries[d.Selected], true
}

func (d *Directory) Visible() []Entry {
	return d.Entries[d.Start:d.End]
}

// SetWindow applies a saved cursor and window. It reports false and leaves
// the directory untouched when the values do not satisfy the window
// invariants for the current listing.
func (d *Directory) SetWindow(selected, start, end int) bool {
	total := len(d.Entries)
	if total == 0 {
		return selected == 0 && start == 0 && end == 0
	}
	if selected < 0 || selected >= total || start < 0 || end > total || start > selected || selected >= end || end-start > d.rows {
		return false
	}
	d.Selected, d.Start, d.End = selected, start, end
	return true
}

// Focus applies a cursor reported by a list widget: the selected index and
// its row within the visible window. Rows that cannot be honored fall back
// to Reveal.
func (d *Directory) Focus(selected, row int) {
	start := selected - row
	if d.SetWindow(selected, start, min(len(d.Entries), start+d.rows)) {
		return
	}
	d.Reveal(selected)
}

// Reveal selects i, moving the window down only when i falls past its end.
func (d *Directory) Reveal(i int) {
	total := len(d.Entries)
	if i < 0 || i >= total {
		return
	}
	d.Selected = i
	if i >= d.End {
		d.Start = i
		d.End = d.Start + d.rows
		if d.End > total {
			d.End = total
			d.Start = max(0, d.End-d.rows)
		}
	}
	if i < d.Start {
		d.Start = i
		d.End = min(total, d.Start+d.rows)
	}
}

func (d *Directory) resetTop() {
	d.Start = 0
	d.End = min(len(d.Entries), d.rows)
}

func (d *Directory) resetBottom() {
	total := len(d.Entries)
	d.Start = max(0, total-d.rows)
	d.End = total
}

// MoveUp steps the cursor up, wrapping to the last entry.
func (d *Directory) MoveUp() {
	total := len(d.Entries)
	if total == 0 {
		return
	}
	d.Selected--
	if d.Selected < 0 {
		d.Selected = total - 1
		d.resetBottom()
	} else if d.Selected < d.Start {
		d.Start--
		d.End--
	}
}

// MoveDown steps the cursor down, wrapping to the first entry.
func (d *Directory) MoveDown() {
	total := len(d.Entries)
	if total == 0 {
		return
	}
	d.Selected++
	if d.Selected >= total {
		d.Selected = 0
		d.resetTop()
	} else if d.Selected >= d.End {
		d.Start++
		d.End++
	}
}

func (d *Directory) PageUp() {
	if len(d.Entries) == 0 {
		return
	}
	d.Selected -= d.rows
	if d.Selected < 0 {
		d.Selected = 0
		d.resetTop()
	} else if d.Selected < d.Start {
		d.Start = max(0, d.Start-d.rows)
		d.End = d.Start + d.rows
	}
}

func (d *Directory) PageDown() {
	total := len(d.Entries)
	if total == 0 {
		return
	}
	d.Selected += d.rows
	if d.Selected >= total {
		d.Selected = total - 1
		d.resetBottom()
	} else if d.Selected >= d.End {
		d.End = min(total, d.End+d.rows)
		d.Start = d.End - d.rows
	}
}

func (d *Directory) jumpTo(jump int) {
	if jump < 0 || jump >= len(d.AlphaJump) {
		return
	}
	total := len(d.Entries)
	d.Selected = d.AlphaJump[jump].Index
	if total > d.rows {
		d.End = min(total, d.Selected+d.rows)
		d.Start = d.End - d.rows
	}
}

// JumpPrev moves to the first entry of the previous letter bucket.
func (d *Directory) JumpPrev() {
	if entry, ok := d.Current(); ok {
		d.jumpTo(entry.AlphaBucket - 1)
	}
}

// JumpNext moves to the first entry of the next letter bucket.
func (d *Directory) JumpNext() {
	if entry, ok := d.Current(); ok && entry.AlphaBucket >= 0 {
		d.jumpTo(entry.AlphaBucket + 1)
	}
}

// IndexOf returns the position of the entry with path p, or -1.
func (d *Directory) IndexOf(p string) int {
	for i, entry := range d.Entries {
		if entry.Path == p {
			return i
		}
	}
	return -1
}
