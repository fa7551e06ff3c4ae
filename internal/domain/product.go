package domain

import "time"

type Product struct {
	ID          int64
	Name        string
	Brand       string
	Description string
	Categories  string
	ImageURL    string
	Price       Money
	InStock     bool
	CreatedAt   time.Time
}
