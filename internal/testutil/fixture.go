package testutil

import (
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/model"
)

// Conference — один день конференции в двух залах:
//
//	09:00-09:45 talk       Main, Second  "Testing Django"  (talk, запись разрешена)
//	10:00-10:45 talk       Main          "Private Talk"    (talk, без записи)
//	11:00-12:30 tutorial   Second        "Deep ORM"        (tutorial, запись разрешена)
//	12:30-13:30 break      Main          подпись "Lunch"
//	14:00-14:45 talk       Main          "Open Space Hour" (open space)
//	15:00-16:00 lightning  Main          без подписи
//	16:00-16:30 lightning  Second        подпись "Lightning Talks II"
//	08:00-09:00 talk       Main          пустой слот
type Conference struct {
	Conference *model.Conference
	Section    *model.Section
	Schedule   *model.Schedule
	Day        *model.Day
	Main       *model.Room
	Second     *model.Room

	Staff     *model.User
	Superuser *model.User
	Attendee  *model.User

	Alice *model.Speaker
	Bob   *model.Speaker
	Carol *model.Speaker
	Dave  *model.Speaker

	TalkKind      *model.ProposalKind
	TutorialKind  *model.ProposalKind
	OpenSpaceKind *model.ProposalKind

	TestingDjango *model.ProposalBase
	PrivateTalk   *model.ProposalBase
	DeepORM       *model.ProposalBase
	OpenSpaceHour *model.ProposalBase

	TestingDjangoSlot *model.Slot
	LightningSlot     *model.Slot
	EmptySlot         *model.Slot

	TestingDjangoPresentation *model.Presentation

	Gold     *model.SponsorLevel
	Silver   *model.SponsorLevel
	Acme     *model.Sponsor
	Initech  *model.Sponsor
	Inactive *model.Sponsor
}

// Password — пароль всех пользователей фикстуры.
const Password = "pony-power"

var Day = time.Date(2015, time.September, 7, 0, 0, 0, 0, time.UTC)

// SeedConference заполняет db фикстурой из описания Conference.
func SeedConference(t *testing.T, db *gorm.DB) *Conference {
	t.Helper()

	f := &Conference{}
	start := datatypes.Date(Day)
	f.Conference = &model.Conference{Title: "DjangoCon US 2015", StartDate: &start, TimeZone: "America/Chicago"}
	MustCreate(t, db, f.Conference)
	f.Section = &model.Section{ConferenceID: f.Conference.ID, Name: "Talks", Slug: "talks"}
	MustCreate(t, db, f.Section)

	f.Staff = NewUser(t, db, "organizer", "organizer@djangocon.us", true, false)
	f.Superuser = NewUser(t, db, "root", "root@djangocon.us", true, true)
	f.Attendee = NewUser(t, db, "attendee", "attendee@example.com", false, false)

	aliceUser := NewUser(t, db, "alice", "alice@example.com", false, false)
	f.Alice = &model.Speaker{Name: "Alice Liddell", UserID: &aliceUser.ID}
	MustCreate(t, db, f.Alice)
	bobInvite := "bob@example.com"
	f.Bob = &model.Speaker{Name: "Bob Tables", InviteEmail: &bobInvite}
	MustCreate(t, db, f.Bob)
	carolInvite := "carol@example.com"
	f.Carol = &model.Speaker{Name: "Carol Shaw", InviteEmail: &carolInvite}
	MustCreate(t, db, f.Carol)
	daveInvite := "dave@example.com"
	f.Dave = &model.Speaker{Name: "Dave Declined", InviteEmail: &daveInvite}
	MustCreate(t, db, f.Dave)

	f.TalkKind = &model.ProposalKind{SectionID: f.Section.ID, Name: "Talk", Slug: "talk"}
	MustCreate(t, db, f.TalkKind)
	f.TutorialKind = &model.ProposalKind{SectionID: f.Section.ID, Name: "Tutorial", Slug: "tutorial"}
	MustCreate(t, db, f.TutorialKind)
	f.OpenSpaceKind = &model.ProposalKind{SectionID: f.Section.ID, Name: "Open Space", Slug: "open-space"}
	MustCreate(t, db, f.OpenSpaceKind)

	f.TestingDjango = NewProposal(t, db, f.TalkKind, f.Alice, model.ProposalTypeTalk, "Testing Django", model.AudienceLevelNovice, true)
	MustCreate(t, db, &model.AdditionalSpeaker{ProposalBaseID: f.TestingDjango.ID, SpeakerID: f.Bob.ID, Status: model.SpeakingStatusAccepted})
	MustCreate(t, db, &model.AdditionalSpeaker{ProposalBaseID: f.TestingDjango.ID, SpeakerID: f.Dave.ID, Status: model.SpeakingStatusDeclined})
	MustCreate(t, db, &model.SupportingDocument{ProposalBaseID: f.TestingDjango.ID, UploadedByID: aliceUser.ID, File: "supporting_documents/slides.pdf", Description: "Slides"})

	f.PrivateTalk = NewProposal(t, db, f.TalkKind, f.Bob, model.ProposalTypeTalk, "Private Talk", model.AudienceLevelIntermediate, false)
	f.DeepORM = NewProposal(t, db, f.TutorialKind, f.Carol, model.ProposalTypeTutorial, "Deep ORM", model.AudienceLevelExperienced, true)
	f.OpenSpaceHour = NewProposal(t, db, f.OpenSpaceKind, f.Carol, model.ProposalTypeOpenSpace, "Open Space Hour", 0, false)

	f.Schedule = &model.Schedule{SectionID: f.Section.ID, Published: true}
	MustCreate(t, db, f.Schedule)
	f.Day = &model.Day{ScheduleID: f.Schedule.ID, Date: datatypes.Date(Day)}
	MustCreate(t, db, f.Day)
	f.Main = &model.Room{ScheduleID: f.Schedule.ID, Name: "Main Hall", Order: 1}
	MustCreate(t, db, f.Main)
	f.Second = &model.Room{ScheduleID: f.Schedule.ID, Name: "Room 2", Order: 2}
	MustCreate(t, db, f.Second)

	kinds := map[string]*model.SlotKind{}
	for _, label := range []string{model.SlotKindTalk, model.SlotKindTutorial, model.SlotKindLightning, model.SlotKindBreak} {
		k := &model.SlotKind{ScheduleID: f.Schedule.ID, Label: label}
		MustCreate(t, db, k)
		kinds[label] = k
	}

	// Second привязан первым, чтобы порядок связей отличался от порядка залов.
	f.TestingDjangoSlot = NewSlot(t, db, f.Day, kinds[model.SlotKindTalk], "09:00", "09:45", "", f.Second, f.Main)
	f.TestingDjangoPresentation = Present(t, db, f.TestingDjango, f.TestingDjangoSlot)

	privateSlot := NewSlot(t, db, f.Day, kinds[model.SlotKindTalk], "10:00", "10:45", "", f.Main)
	Present(t, db, f.PrivateTalk, privateSlot)

	tutorialSlot := NewSlot(t, db, f.Day, kinds[model.SlotKindTutorial], "11:00", "12:30", "", f.Second)
	Present(t, db, f.DeepORM, tutorialSlot)

	NewSlot(t, db, f.Day, kinds[model.SlotKindBreak], "12:30", "13:30", "Lunch", f.Main)

	openSpaceSlot := NewSlot(t, db, f.Day, kinds[model.SlotKindTalk], "14:00", "14:45", "", f.Main)
	Present(t, db, f.OpenSpaceHour, openSpaceSlot)

	f.LightningSlot = NewSlot(t, db, f.Day, kinds[model.SlotKindLightning], "15:00", "16:00", "", f.Main)
	NewSlot(t, db, f.Day, kinds[model.SlotKindLightning], "16:00", "16:30", "Lightning Talks II", f.Second)
	f.EmptySlot = NewSlot(t, db, f.Day, kinds[model.SlotKindTalk], "08:00", "09:00", "", f.Main)

	f.Gold = &model.SponsorLevel{ConferenceID: f.Conference.ID, Name: "Gold", Order: 1, Cost: 10000}
	MustCreate(t, db, f.Gold)
	f.Silver = &model.SponsorLevel{ConferenceID: f.Conference.ID, Name: "Silver", Order: 2, Cost: 5000}
	MustCreate(t, db, f.Silver)
	f.Initech = &model.Sponsor{Name: "Initech", LevelID: f.Silver.ID, Active: true, ContactName: "Bill", ContactEmail: "bill@initech.example", ExternalURL: "https://initech.example", ListingText: "TPS *reports*", WebLogo: "sponsor_files/initech.png"}
	MustCreate(t, db, f.Initech)
	f.Acme = &model.Sponsor{Name: "Acme", ApplicantID: &f.Staff.ID, LevelID: f.Gold.ID, Active: true, ContactName: "Wile", ContactEmail: "wile@acme.example", ExternalURL: "https://acme.example", ListingText: "Anvils", WebLogo: "sponsor_files/missing.png"}
	MustCreate(t, db, f.Acme)
	f.Inactive = &model.Sponsor{Name: "Globex", LevelID: f.Gold.ID, Active: false}
	MustCreate(t, db, f.Inactive)

	return f
}

// NewUser создаёт активного пользователя с паролем Password.
func NewUser(t *testing.T, db *gorm.DB, username, email string, staff, superuser bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(Password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &model.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		IsStaff:      staff,
		IsSuperuser:  superuser,
	}
	MustCreate(t, db, u)
	return u
}

// NewProposal создаёт базовую заявку и строку подтипа.
func NewProposal(
	t *testing.T,
	db *gorm.DB,
	kind *model.ProposalKind,
	speaker *model.Speaker,
	proposalType, title string,
	audienceLevel int,
	release bool,
) *model.ProposalBase {
	t.Helper()
	p := &model.ProposalBase{
		KindID:      kind.ID,
		SpeakerID:   speaker.ID,
		Title:       title,
		Description: title + " description",
		Abstract:    title + " **abstract**",
	}
	MustCreate(t, db, p)

	switch proposalType {
	case model.ProposalTypeTalk:
		MustCreate(t, db, &model.TalkProposal{ProposalBaseID: p.ID, AudienceLevel: audienceLevel, RecordingRelease: release})
	case model.ProposalTypeTutorial:
		MustCreate(t, db, &model.TutorialProposal{ProposalBaseID: p.ID, AudienceLevel: audienceLevel, RecordingRelease: release})
	case model.ProposalTypeOpenSpace:
		MustCreate(t, db, &model.OpenSpaceProposal{ProposalBaseID: p.ID})
	}
	return p
}

// NewSlot создаёт слот; start и end в формате "HH:MM".
func NewSlot(t *testing.T, db *gorm.DB, day *model.Day, kind *model.SlotKind, start, end, override string, rooms ...*model.Room) *model.Slot {
	t.Helper()
	s := &model.Slot{
		DayID:           day.ID,
		KindID:          kind.ID,
		Start:           clock(t, start),
		End:             clock(t, end),
		ContentOverride: override,
	}
	MustCreate(t, db, s)
	for _, r := range rooms {
		if err := db.Model(s).Association("Rooms").Append(r); err != nil {
			t.Fatalf("attach room: %v", err)
		}
	}
	return s
}

// Present ставит заявку в слот.
func Present(t *testing.T, db *gorm.DB, proposal *model.ProposalBase, slot *model.Slot) *model.Presentation {
	t.Helper()
	var kind model.ProposalKind
	if err := db.First(&kind, proposal.KindID).Error; err != nil {
		t.Fatalf("load kind: %v", err)
	}
	p := &model.Presentation{
		SlotID:         &slot.ID,
		Title:          proposal.Title,
		Description:    proposal.Description,
		Abstract:       proposal.Abstract,
		SpeakerID:      proposal.SpeakerID,
		ProposalBaseID: proposal.ID,
		SectionID:      kind.SectionID,
	}
	MustCreate(t, db, p)
	return p
}

func clock(t *testing.T, s string) datatypes.Time {
	t.Helper()
	tm, err := time.Parse("15:04", s)
	if err != nil {
		t.Fatalf("parse clock %q: %v", s, err)
	}
	return datatypes.NewTime(tm.Hour(), tm.Minute(), 0, 0)
}
