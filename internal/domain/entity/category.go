package entity

import "time"

// Category agrupa productos para listados y analítica.
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
}
