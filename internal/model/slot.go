package model

import (
	"gorm.io/datatypes"
)

// slots — ячейка расписания: день, время и набор залов.
// Время хранится без даты (datatypes.Time), дата берётся из Day.
type Slot struct {
	ID uint `gorm:"primaryKey"`

	DayID  uint `gorm:"not null;index"`
	KindID uint `gorm:"not null;index"`

	Start datatypes.Time `gorm:"column:start_time;not null;index"`
	End   datatypes.Time `gorm:"column:end_time;not null"`

	// Произвольный текст вместо доклада (например, название блока lightning talks).
	ContentOverride string `gorm:"type:text"`

	Day   *Day      `gorm:"foreignKey:DayID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Kind  *SlotKind `gorm:"foreignKey:KindID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Rooms []Room    `gorm:"many2many:slot_rooms;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	// Доклад, поставленный в слот; nil для перерывов и пустых слотов.
	Content *Presentation `gorm:"foreignKey:SlotID"`
}

// KindLabel безопасно возвращает метку вида слота.
func (s *Slot) KindLabel() string {
	if s.Kind == nil {
		return ""
	}
	return s.Kind.Label
}
