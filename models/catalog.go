package models

// Item is a catalog entry
type Item struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock"`
}

// ItemFilter narrows GET /api/items
type ItemFilter struct {
	Category string
	MinPrice *float64
	MaxPrice *float64
	Search   string
}
