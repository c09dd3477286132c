package models

// Game is a catalog entry. The purchase pipeline treats games as read-only;
// the catalog is seeded and managed out of band.
type Game struct {
	BaseModel
	Title       string   `json:"title"`
	Price       *float64 `json:"price"`
	IsFree      bool     `json:"is_free"`
	Genre       string   `json:"genre"`
	Description string   `json:"description"`
	ImageURL    string   `json:"image_url"`
	Rating      float64  `json:"rating"`
}
