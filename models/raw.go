package models

// RawTable holds a dataset exactly as read from its source: one header row
// and string cells. Stages never modify a RawTable in place.
type RawTable struct {
	Header []string
	Rows   [][]string
}

// ColumnIndex returns the position of the named column, or -1.
func (t *RawTable) ColumnIndex(name string) int {
	for i, h := range t.Header {
		if h == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row r for the named column. Missing columns and
// short rows yield "".
func (t *RawTable) Cell(r int, name string) string {
	idx := t.ColumnIndex(name)
	if idx < 0 || r < 0 || r >= len(t.Rows) || idx >= len(t.Rows[r]) {
		return ""
	}
	return t.Rows[r][idx]
}

// Clone returns a deep copy of the table.
func (t *RawTable) Clone() *RawTable {
	out := &RawTable{
		Header: append([]string(nil), t.Header...),
		Rows:   make([][]string, len(t.Rows)),
	}
	for i, row := range t.Rows {
		out.Rows[i] = append([]string(nil), row...)
	}
	return out
}
