package models

// Genre is a top-level catalog grouping for albums.
type Genre struct {
	ID          int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string  `gorm:"column:name;not null;uniqueIndex"`
	Description *string `gorm:"column:description"`
	Albums      []Album `gorm:"foreignKey:GenreID"`
}
