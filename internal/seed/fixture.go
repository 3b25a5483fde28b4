package seed

// Fixture — YAML-описание конференции для начального наполнения БД.
// Связи задаются ключами (username, slug, key, name), а не id.
type Fixture struct {
	Conference    ConferenceFixture     `yaml:"conference"`
	Sections      []SectionFixture      `yaml:"sections"`
	ProposalKinds []ProposalKindFixture `yaml:"proposal_kinds"`
	Users         []UserFixture         `yaml:"users"`
	Speakers      []SpeakerFixture      `yaml:"speakers"`
	Proposals     []ProposalFixture     `yaml:"proposals"`
	Schedules     []ScheduleFixture     `yaml:"schedules"`
	SponsorLevels []SponsorLevelFixture `yaml:"sponsor_levels"`
	Sponsors      []SponsorFixture      `yaml:"sponsors"`
}

type ConferenceFixture struct {
	Title     string `yaml:"title"`
	StartDate string `yaml:"start_date"`
	EndDate   string `yaml:"end_date"`
	TimeZone  string `yaml:"time_zone"`
}

type SectionFixture struct {
	Name string `yaml:"name"`
	Slug string `yaml:"slug"`
}

type ProposalKindFixture struct {
	Name    string `yaml:"name"`
	Slug    string `yaml:"slug"`
	Section string `yaml:"section"`
}

type UserFixture struct {
	Username  string `yaml:"username"`
	Email     string `yaml:"email"`
	Password  string `yaml:"password"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
	Staff     bool   `yaml:"staff"`
	Superuser bool   `yaml:"superuser"`
}

type SpeakerFixture struct {
	Key             string `yaml:"key"`
	Name            string `yaml:"name"`
	User            string `yaml:"user"`
	InviteEmail     string `yaml:"invite_email"`
	Biography       string `yaml:"biography"`
	TwitterUsername string `yaml:"twitter"`
}

type AdditionalSpeakerFixture struct {
	Speaker string `yaml:"speaker"`
	Status  string `yaml:"status"`
}

type ProposalFixture struct {
	Key                string                     `yaml:"key"`
	Kind               string                     `yaml:"kind"`
	Type               string                     `yaml:"type"`
	Title              string                     `yaml:"title"`
	Abstract           string                     `yaml:"abstract"`
	Description        string                     `yaml:"description"`
	AdditionalNotes    string                     `yaml:"additional_notes"`
	Speaker            string                     `yaml:"speaker"`
	AudienceLevel      int                        `yaml:"audience_level"`
	RecordingRelease   *bool                      `yaml:"recording_release"`
	Cancelled          bool                       `yaml:"cancelled"`
	AdditionalSpeakers []AdditionalSpeakerFixture `yaml:"additional_speakers"`
}

type RoomFixture struct {
	Name  string `yaml:"name"`
	Order int    `yaml:"order"`
}

type SlotFixture struct {
	Kind         string   `yaml:"kind"`
	Start        string   `yaml:"start"`
	End          string   `yaml:"end"`
	Rooms        []string `yaml:"rooms"`
	Presentation string   `yaml:"presentation"`
	Override     string   `yaml:"override"`
}

type DayFixture struct {
	Date  string        `yaml:"date"`
	Slots []SlotFixture `yaml:"slots"`
}

type ScheduleFixture struct {
	Section   string        `yaml:"section"`
	Published bool          `yaml:"published"`
	Rooms     []RoomFixture `yaml:"rooms"`
	SlotKinds []string      `yaml:"slot_kinds"`
	Days      []DayFixture  `yaml:"days"`
}

type SponsorLevelFixture struct {
	Name  string `yaml:"name"`
	Order int    `yaml:"order"`
	Cost  int    `yaml:"cost"`
}

type SponsorFixture struct {
	Name         string `yaml:"name"`
	Applicant    string `yaml:"applicant"` // username
	Level        string `yaml:"level"`
	Active       bool   `yaml:"active"`
	ContactName  string `yaml:"contact_name"`
	ContactEmail string `yaml:"contact_email"`
	ExternalURL  string `yaml:"external_url"`
	ListingText  string `yaml:"listing_text"`
	WebLogo      string `yaml:"web_logo"`
	PrintLogo    string `yaml:"print_logo"`
}
