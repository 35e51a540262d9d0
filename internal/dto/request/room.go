package request

type RoomRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	RowsQty int    `json:"rows_qty" validate:"required,min=1,max=100"`
	ColsQty int    `json:"cols_qty" validate:"required,min=1,max=100"`
}

type RoomUpdateRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	RowsQty *int    `json:"rows_qty,omitempty" validate:"omitempty,min=1,max=100"`
	ColsQty *int    `json:"cols_qty,omitempty" validate:"omitempty,min=1,max=100"`
}
