package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// speakers — профиль спикера. Может существовать без учётной записи,
// пока приглашённый по email человек не зарегистрировался.
type Speaker struct {
	ID uint `gorm:"primaryKey"`

	UserID *uint `gorm:"uniqueIndex"`

	Name            string `gorm:"type:varchar(100);not null"`
	Biography       string `gorm:"type:text"`
	Photo           string `gorm:"type:varchar(255)"`
	TwitterUsername string `gorm:"type:varchar(15)"`

	InviteEmail *string `gorm:"type:varchar(200);uniqueIndex"`
	InviteToken string  `gorm:"type:varchar(40);not null;index"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime"`

	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

func (s *Speaker) BeforeCreate(tx *gorm.DB) error {
	if s.InviteToken == "" {
		s.InviteToken = uuid.NewString()
	}
	return nil
}

// Email — адрес учётной записи, если она привязана, иначе адрес приглашения.
func (s *Speaker) Email() string {
	if s == nil {
		return ""
	}
	if s.User != nil {
		return s.User.Email
	}
	if s.InviteEmail != nil {
		return *s.InviteEmail
	}
	return ""
}
