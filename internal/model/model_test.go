package model_test

import (
	"testing"

	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/testutil"
)

func TestSpeakerEmail(t *testing.T) {
	invite := "invitee@example.com"
	cases := []struct {
		name    string
		speaker *model.Speaker
		want    string
	}{
		{"linked user wins", &model.Speaker{User: &model.User{Email: "user@example.com"}, InviteEmail: &invite}, "user@example.com"},
		{"invite only", &model.Speaker{InviteEmail: &invite}, invite},
		{"nothing", &model.Speaker{}, ""},
		{"nil", nil, ""},
	}
	for _, tc := range cases {
		if got := tc.speaker.Email(); got != tc.want {
			t.Fatalf("%s: Email() = %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestProposalBase_Subtypes(t *testing.T) {
	talk := &model.ProposalBase{Talk: &model.TalkProposal{AudienceLevel: model.AudienceLevelNovice, RecordingRelease: false}}
	if talk.Type() != model.ProposalTypeTalk {
		t.Fatalf("Type() = %q", talk.Type())
	}
	released, ok := talk.RecordingRelease()
	if !ok || released {
		t.Fatalf("RecordingRelease() = %v, %v", released, ok)
	}

	openSpace := &model.ProposalBase{OpenSpace: &model.OpenSpaceProposal{}}
	if _, ok := openSpace.RecordingRelease(); ok {
		t.Fatalf("open space must not carry a recording release")
	}
	if _, ok := openSpace.AudienceLevel(); ok {
		t.Fatalf("open space must not carry an audience level")
	}

	if (&model.ProposalBase{}).Type() != "" {
		t.Fatalf("expected empty type without subtype row")
	}
}

func TestAudienceLevelLabel(t *testing.T) {
	if got := model.AudienceLevelLabel(model.AudienceLevelIntermediate); got != "Intermediate" {
		t.Fatalf("label = %q", got)
	}
	if got := model.AudienceLevelLabel(42); got != "" {
		t.Fatalf("label = %q", got)
	}
}

func TestUser_IsStaffMember(t *testing.T) {
	var anonymous *model.User
	if anonymous.IsStaffMember() {
		t.Fatalf("nil user must not be staff")
	}
	if (&model.User{IsActive: false, IsStaff: true}).IsStaffMember() {
		t.Fatalf("inactive staff must not pass")
	}
	if !(&model.User{IsActive: true, IsSuperuser: true}).IsStaffMember() {
		t.Fatalf("superuser must pass")
	}
}

func TestPresentationSpeakers_AcceptedOnly(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.SeedConference(t, db)

	var p model.Presentation
	err := db.
		Preload("Speaker.User").
		Preload("Proposal.AdditionalSpeakers.Speaker.User").
		First(&p, f.TestingDjangoPresentation.ID).Error
	if err != nil {
		t.Fatalf("load presentation: %v", err)
	}

	speakers := p.Speakers()
	if len(speakers) != 2 {
		t.Fatalf("speakers = %d, want 2", len(speakers))
	}
	if speakers[0].Name != "Alice Liddell" || speakers[1].Name != "Bob Tables" {
		t.Fatalf("unexpected speakers: %s, %s", speakers[0].Name, speakers[1].Name)
	}
	if speakers[0].Email() != "alice@example.com" {
		t.Fatalf("alice email = %q", speakers[0].Email())
	}
}

func TestSpeaker_InviteTokenGenerated(t *testing.T) {
	db := testutil.NewDB(t)
	s := &model.Speaker{Name: "Token Holder"}
	testutil.MustCreate(t, db, s)
	if len(s.InviteToken) != 36 {
		t.Fatalf("invite token = %q", s.InviteToken)
	}
}

func TestAutoMigrate_Idempotent(t *testing.T) {
	db := testutil.NewDB(t)
	if err := model.AutoMigrate(db); err != nil {
		t.Fatalf("second AutoMigrate: %v", err)
	}
	for _, table := range []string{"talk_proposals", "tutorial_proposals", "open_space_proposals", "slot_rooms"} {
		if !db.Migrator().HasTable(table) {
			t.Fatalf("table %s missing", table)
		}
	}
}
