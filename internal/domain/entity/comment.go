package entity

import "time"

// Comment anotación libre sobre una venta. Solo se agregan; no afectan ninguna máquina de estado.
type Comment struct {
	ID        int64
	SaleID    int64
	AuthorID  string
	Body      string
	CreatedAt time.Time
}
