package entity

type Room struct {
	BaseNoDelete
	Name     string `db:"name"`
	RowsQty  int    `db:"rows_qty"`
	ColsQty  int    `db:"cols_qty"`
	Capacity int    `db:"capacity"`
}

// RowLabel converts a zero-based row index to its letter label:
// 0→A, 25→Z, 26→AA, 27→AB, ...
func RowLabel(index int) string {
	label := ""
	index++
	for index > 0 {
		index--
		label = string(rune('A'+index%26)) + label
		index /= 26
	}
	return label
}
