package model

// presentations — принятая заявка, опубликованная в расписании.
type Presentation struct {
	ID uint `gorm:"primaryKey"`

	SlotID *uint `gorm:"uniqueIndex"`

	Title       string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	Abstract    string `gorm:"type:text"`

	SpeakerID      uint `gorm:"not null;index"`
	Cancelled      bool `gorm:"not null"`
	ProposalBaseID uint `gorm:"not null;uniqueIndex"`
	SectionID      uint `gorm:"not null;index"`

	Speaker  *Speaker      `gorm:"foreignKey:SpeakerID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	Proposal *ProposalBase `gorm:"foreignKey:ProposalBaseID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Section  *Section      `gorm:"foreignKey:SectionID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// Speakers — основной спикер, затем соавторы заявки, принявшие приглашение.
func (p *Presentation) Speakers() []*Speaker {
	out := make([]*Speaker, 0, 1)
	if p.Speaker != nil {
		out = append(out, p.Speaker)
	}
	if p.Proposal == nil {
		return out
	}
	for i := range p.Proposal.AdditionalSpeakers {
		as := &p.Proposal.AdditionalSpeakers[i]
		if as.Status == SpeakingStatusAccepted && as.Speaker != nil {
			out = append(out, as.Speaker)
		}
	}
	return out
}
