package domain

// TransparentBackgroundID selects transparent mode from a request.
const TransparentBackgroundID = "transparent"

// Background is one entry of the backgrounds catalog.
type Background struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Image       string `json:"image,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`

	// Href is the URL of Image as referenced from a decorated chart.
	Href string `json:"-"`
}

// Catalog is the document served by /api/backgrounds.
type Catalog struct {
	Backgrounds []Background `json:"backgrounds"`
}
