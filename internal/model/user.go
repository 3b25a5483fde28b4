package model

import (
	"time"
)

// users — учётные записи сайта (спикеры, организаторы, спонсоры).
type User struct {
	ID uint `gorm:"primaryKey"`

	Username     string `gorm:"type:varchar(150);not null;uniqueIndex"`
	Email        string `gorm:"type:varchar(254)"`
	PasswordHash string `gorm:"type:varchar(128);not null"`
	FirstName    string `gorm:"type:varchar(30)"`
	LastName     string `gorm:"type:varchar(30)"`

	// Флаги без default-тегов: GORM пропускает нулевые значения полей с default.
	IsActive    bool `gorm:"not null"`
	IsStaff     bool `gorm:"not null"`
	IsSuperuser bool `gorm:"not null"`

	DateJoined time.Time  `gorm:"not null;autoCreateTime"`
	LastLogin  *time.Time `gorm:"type:timestamp"`
}

// IsStaffMember — доступ к выгрузкам для организаторов.
func (u *User) IsStaffMember() bool {
	return u != nil && u.IsActive && (u.IsStaff || u.IsSuperuser)
}
