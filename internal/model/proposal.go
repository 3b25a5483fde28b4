package model

import (
	"time"
)

// Уровни подготовки аудитории.
const (
	AudienceLevelNovice       = 1
	AudienceLevelExperienced  = 2
	AudienceLevelIntermediate = 3
)

// AudienceLevelLabel возвращает название уровня; неизвестные значения — пустая строка.
func AudienceLevelLabel(level int) string {
	switch level {
	case AudienceLevelNovice:
		return "Novice"
	case AudienceLevelExperienced:
		return "Experienced"
	case AudienceLevelIntermediate:
		return "Intermediate"
	default:
		return ""
	}
}

// Подтипы заявки.
const (
	ProposalTypeTalk      = "talk"
	ProposalTypeTutorial  = "tutorial"
	ProposalTypeOpenSpace = "open-space"
)

// proposal_kinds
type ProposalKind struct {
	ID uint `gorm:"primaryKey"`

	SectionID uint   `gorm:"not null;index"`
	Name      string `gorm:"type:varchar(100);not null"`
	Slug      string `gorm:"type:varchar(100);not null;uniqueIndex"`

	Section *Section `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// proposal_bases — общая часть заявки. Конкретный подтип хранится
// в отдельной таблице с тем же первичным ключом.
type ProposalBase struct {
	ID uint `gorm:"primaryKey"`

	KindID uint `gorm:"not null;index"`

	Title           string `gorm:"type:varchar(100);not null"`
	Description     string `gorm:"type:text"`
	Abstract        string `gorm:"type:text"`
	AdditionalNotes string `gorm:"type:text"`

	Submitted time.Time `gorm:"not null;autoCreateTime"`

	SpeakerID uint `gorm:"not null;index"`
	Cancelled bool `gorm:"not null"`

	Kind    *ProposalKind `gorm:"foreignKey:KindID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Speaker *Speaker      `gorm:"foreignKey:SpeakerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`

	Talk      *TalkProposal      `gorm:"foreignKey:ProposalBaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Tutorial  *TutorialProposal  `gorm:"foreignKey:ProposalBaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	OpenSpace *OpenSpaceProposal `gorm:"foreignKey:ProposalBaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`

	AdditionalSpeakers  []AdditionalSpeaker  `gorm:"foreignKey:ProposalBaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	SupportingDocuments []SupportingDocument `gorm:"foreignKey:ProposalBaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// talk_proposals
type TalkProposal struct {
	ProposalBaseID   uint `gorm:"primaryKey;autoIncrement:false"`
	AudienceLevel    int  `gorm:"not null"`
	RecordingRelease bool `gorm:"not null"`
}

// tutorial_proposals
type TutorialProposal struct {
	ProposalBaseID   uint `gorm:"primaryKey;autoIncrement:false"`
	AudienceLevel    int  `gorm:"not null"`
	RecordingRelease bool `gorm:"not null"`
}

// open_space_proposals — подтип без собственных колонок.
type OpenSpaceProposal struct {
	ProposalBaseID uint `gorm:"primaryKey;autoIncrement:false"`
}

// Type возвращает подтип заявки или пустую строку, если строка подтипа не загружена.
func (p *ProposalBase) Type() string {
	switch {
	case p.Talk != nil:
		return ProposalTypeTalk
	case p.Tutorial != nil:
		return ProposalTypeTutorial
	case p.OpenSpace != nil:
		return ProposalTypeOpenSpace
	default:
		return ""
	}
}

// RecordingRelease — согласие на запись. ok=false для подтипов без этого поля.
func (p *ProposalBase) RecordingRelease() (released bool, ok bool) {
	switch {
	case p.Talk != nil:
		return p.Talk.RecordingRelease, true
	case p.Tutorial != nil:
		return p.Tutorial.RecordingRelease, true
	default:
		return false, false
	}
}

// AudienceLevel — уровень аудитории. ok=false для подтипов без этого поля.
func (p *ProposalBase) AudienceLevel() (level int, ok bool) {
	switch {
	case p.Talk != nil:
		return p.Talk.AudienceLevel, true
	case p.Tutorial != nil:
		return p.Tutorial.AudienceLevel, true
	default:
		return 0, false
	}
}

// Статус участия дополнительного спикера.
type SpeakingStatus int

const (
	SpeakingStatusPending  SpeakingStatus = 1
	SpeakingStatusAccepted SpeakingStatus = 2
	SpeakingStatusDeclined SpeakingStatus = 3
)

func (s SpeakingStatus) String() string {
	switch s {
	case SpeakingStatusPending:
		return "pending"
	case SpeakingStatusAccepted:
		return "accepted"
	case SpeakingStatusDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// additional_speakers — связывает заявку с соавторами (комбинированный PK).
type AdditionalSpeaker struct {
	ProposalBaseID uint           `gorm:"primaryKey;autoIncrement:false"`
	SpeakerID      uint           `gorm:"primaryKey;autoIncrement:false;index"`
	Status         SpeakingStatus `gorm:"not null"`

	Speaker *Speaker `gorm:"foreignKey:SpeakerID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// supporting_documents — файлы, приложенные к заявке (слайды, примеры).
type SupportingDocument struct {
	ID uint `gorm:"primaryKey"`

	ProposalBaseID uint `gorm:"not null;index"`
	UploadedByID   uint `gorm:"not null;index"`

	Created time.Time `gorm:"not null;autoCreateTime"`

	// Путь относительно MEDIA_ROOT.
	File        string `gorm:"type:varchar(255);not null"`
	Description string `gorm:"type:varchar(140)"`

	UploadedBy *User `gorm:"foreignKey:UploadedByID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}
