package model

import (
	"time"
)

// sponsor_levels — уровни спонсорства (Diamond, Gold, ...).
type SponsorLevel struct {
	ID uint `gorm:"primaryKey"`

	ConferenceID uint   `gorm:"not null;index"`
	Name         string `gorm:"type:varchar(100);not null"`
	Order        int    `gorm:"column:sort_order;not null"`
	Cost         int    `gorm:"not null"`
	Description  string `gorm:"type:text"`

	Conference *Conference `gorm:"foreignKey:ConferenceID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// sponsors
type Sponsor struct {
	ID uint `gorm:"primaryKey"`

	ApplicantID *uint `gorm:"index"`

	Name         string `gorm:"type:varchar(100);not null"`
	ExternalURL  string `gorm:"type:varchar(200)"`
	ContactName  string `gorm:"type:varchar(100)"`
	ContactEmail string `gorm:"type:varchar(254)"`

	LevelID uint `gorm:"not null;index"`

	Added  time.Time `gorm:"not null;autoCreateTime"`
	Active bool      `gorm:"not null;index"`

	// Текст для страницы спонсоров в разметке markdown.
	ListingText string `gorm:"type:text"`

	// Пути логотипов относительно MEDIA_ROOT.
	WebLogo   string `gorm:"type:varchar(255)"`
	PrintLogo string `gorm:"type:varchar(255)"`

	Level     *SponsorLevel `gorm:"foreignKey:LevelID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Applicant *User         `gorm:"foreignKey:ApplicantID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}
