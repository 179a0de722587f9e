package models

// Artist is catalog reference data; rows are managed out of band.
type Artist struct {
	ID   int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name string `gorm:"column:name;not null"`
}
