package domain

type ClothingItem struct {
	ID           int64    `json:"id"`
	Name         string   `json:"name"`
	Category     Category `json:"category"`
	PrimaryColor string   `json:"primaryColor,omitempty"`
	ImagePath    string   `json:"imagePath,omitempty"`
	Style        string   `json:"style,omitempty"`
}

// Subtitle is the secondary line shown under an item: its color, or its style when the color is unknown.
func (i ClothingItem) Subtitle() string {
	if i.PrimaryColor != "" {
		return i.PrimaryColor
	}
	return i.Style
}
