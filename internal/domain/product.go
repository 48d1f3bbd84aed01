package domain

type Product struct {
	ID             int64             `json:"id"`
	Title          string            `json:"title"`
	Description    string            `json:"description,omitempty"`
	Price          float64           `json:"price"`
	Category       string            `json:"category"`
	Images         []string          `json:"images"`
	Thumbnail      string            `json:"thumbnail,omitempty"`
	Specifications map[string]string `json:"specifications"`
	Reviews        []Review          `json:"reviews"`
}

type Review struct {
	ID      int64  `json:"id"`
	User    string `json:"user"`
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// ProductPage is one response of the catalog source. Only Products is consumed.
type ProductPage struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
	Skip     int       `json:"skip"`
	Limit    int       `json:"limit"`
}
