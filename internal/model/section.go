package model

import "time"

// Section is a named, independently ordered grouping of top-level tasks.
// Sections never nest; tasks without a section live in a virtual
// "no section" bucket that is not persisted.
type Section struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"uniqueIndex"`
	SortOrder          int    `gorm:"index"`
	IncludeInFocusMode bool   `gorm:"default:true"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
