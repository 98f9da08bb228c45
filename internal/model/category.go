package model

import "time"

// Category groups tasks by area (work, health, study, etc.).
// Color is a palette key, not a raw color value.
type Category struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex"`
	Color     string `gorm:"default:gray"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Tasks     []Task `gorm:"foreignKey:CategoryID"`
}

// CategoryColors is the fixed palette of valid Color keys.
var CategoryColors = []string{
	"gray", "red", "orange", "yellow", "green", "teal", "blue", "purple", "pink",
}

// ValidCategoryColor reports whether key belongs to the palette.
func ValidCategoryColor(key string) bool {
	for _, c := range CategoryColors {
		if c == key {
			return true
		}
	}
	return false
}
