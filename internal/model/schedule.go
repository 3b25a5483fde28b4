package model

import (
	"gorm.io/datatypes"
)

// schedules — расписание одной секции.
type Schedule struct {
	ID uint `gorm:"primaryKey"`

	SectionID uint `gorm:"not null;uniqueIndex"`
	Published bool `gorm:"not null"`
	Hidden    bool `gorm:"not null"`

	Section *Section `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// days — день расписания; чистая дата без времени.
type Day struct {
	ID uint `gorm:"primaryKey"`

	ScheduleID uint           `gorm:"not null;index"`
	Date       datatypes.Date `gorm:"type:date;not null"`

	Schedule *Schedule `gorm:"foreignKey:ScheduleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// rooms
type Room struct {
	ID uint `gorm:"primaryKey"`

	ScheduleID uint   `gorm:"not null;index"`
	Name       string `gorm:"type:varchar(65);not null"`
	Order      int    `gorm:"column:sort_order;not null"`

	Schedule *Schedule `gorm:"foreignKey:ScheduleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// Метки видов слотов, на которые опираются выгрузки.
const (
	SlotKindTalk      = "talk"
	SlotKindTutorial  = "tutorial"
	SlotKindPlenary   = "plenary"
	SlotKindLightning = "lightning"
	SlotKindBreak     = "break"
)

// slot_kinds — вид слота (talk, tutorial, lightning, break, ...).
type SlotKind struct {
	ID uint `gorm:"primaryKey"`

	ScheduleID uint   `gorm:"not null;index"`
	Label      string `gorm:"type:varchar(50);not null"`

	Schedule *Schedule `gorm:"foreignKey:ScheduleID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
