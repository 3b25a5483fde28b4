package model

import (
	"gorm.io/datatypes"
)

// conferences
type Conference struct {
	ID uint `gorm:"primaryKey"`

	Title string `gorm:"type:varchar(100);not null"`

	StartDate *datatypes.Date `gorm:"type:date"`
	EndDate   *datatypes.Date `gorm:"type:date"`

	TimeZone string `gorm:"type:varchar(64);not null;default:'UTC'"`
}

// sections — секции конференции (talks, tutorials, open spaces).
type Section struct {
	ID uint `gorm:"primaryKey"`

	ConferenceID uint   `gorm:"not null;index"`
	Name         string `gorm:"type:varchar(100);not null"`
	Slug         string `gorm:"type:varchar(100);not null;index"`

	StartDate *datatypes.Date `gorm:"type:date"`
	EndDate   *datatypes.Date `gorm:"type:date"`

	Conference *Conference `gorm:"foreignKey:ConferenceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
