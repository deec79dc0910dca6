package types

// MenuItem is a single dish on a daily menu. Prices are bare numeric values
// in CZK; currency suffixes are stripped during extraction.
type MenuItem struct {
	Category  string   `json:"category"`
	Name      string   `json:"name"`
	Price     float64  `json:"price"`
	Allergens []string `json:"allergens"`
	Weight    *string  `json:"weight,omitempty"`
}

// MenuResult is the summarized daily menu for one restaurant page.
// Date and SourceURL are always set from the pipeline's own values, never
// from anything the model echoes back. When DailyMenuFound is false,
// MenuItems is empty.
type MenuResult struct {
	RestaurantName string     `json:"restaurant_name"`
	MenuItems      []MenuItem `json:"menu_items"`
	DailyMenuFound bool       `json:"daily_menu"`
	Date           string     `json:"date"`
	SourceURL      string     `json:"source_url"`
}

// SummarizeRequest is the body of POST /menu/summarize.
type SummarizeRequest struct {
	URL string `json:"url" binding:"required"`
}

// ErrorResponse is the JSON body returned for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}
