package model

import "gorm.io/gorm"

// AutoMigrate выполняет миграцию всех сущностей сайта конференции.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Conference{},
		&Section{},
		&Speaker{},
		&ProposalKind{},
		&ProposalBase{},
		&TalkProposal{},
		&TutorialProposal{},
		&OpenSpaceProposal{},
		&AdditionalSpeaker{},
		&SupportingDocument{},
		&SponsorLevel{},
		&Sponsor{},
		&Schedule{},
		&Day{},
		&Room{},
		&SlotKind{},
		&Slot{},
		&Presentation{},
	)
}
