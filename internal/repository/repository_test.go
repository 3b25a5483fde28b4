package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/testutil"
)

func TestGormSlotRepository_ListOrderedByStart(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.SeedConference(t, db)

	slots, err := NewGormSlotRepository(db).ListOrderedByStart(context.Background())
	if err != nil {
		t.Fatalf("ListOrderedByStart: %v", err)
	}
	if len(slots) != 8 {
		t.Fatalf("slots = %d, want 8", len(slots))
	}

	// Пустой слот в 08:00 создан последним, но идёт первым.
	if slots[0].ID != f.EmptySlot.ID {
		t.Fatalf("first slot = %d, want %d", slots[0].ID, f.EmptySlot.ID)
	}
	if slots[0].Content != nil {
		t.Fatalf("empty slot must have no content")
	}

	first := slots[1]
	if first.ID != f.TestingDjangoSlot.ID {
		t.Fatalf("second slot = %d, want %d", first.ID, f.TestingDjangoSlot.ID)
	}
	if first.Kind == nil || first.Kind.Label != model.SlotKindTalk {
		t.Fatalf("kind not preloaded: %+v", first.Kind)
	}
	if first.Day == nil {
		t.Fatalf("day not preloaded")
	}
	if len(first.Rooms) != 2 || first.Rooms[0].Name != "Main Hall" || first.Rooms[1].Name != "Room 2" {
		t.Fatalf("rooms = %+v", first.Rooms)
	}
	if first.Content == nil || first.Content.Proposal == nil || first.Content.Proposal.Talk == nil {
		t.Fatalf("content proposal not preloaded: %+v", first.Content)
	}
	if first.Content.Proposal.Kind == nil || first.Content.Proposal.Kind.Slug != "talk" {
		t.Fatalf("proposal kind not preloaded")
	}
	if first.Content.Speaker == nil || first.Content.Speaker.User == nil {
		t.Fatalf("speaker user not preloaded")
	}
	if len(first.Content.Proposal.AdditionalSpeakers) != 2 {
		t.Fatalf("additional speakers = %d, want 2", len(first.Content.Proposal.AdditionalSpeakers))
	}

	for i := 1; i < len(slots); i++ {
		if time.Duration(slots[i].Start) < time.Duration(slots[i-1].Start) {
			t.Fatalf("slots out of order at %d", i)
		}
	}
}

func TestGormPresentationRepository_GetByID(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.SeedConference(t, db)

	p, slot, err := NewGormPresentationRepository(db).GetByID(context.Background(), f.TestingDjangoPresentation.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if p.Title != "Testing Django" {
		t.Fatalf("title = %q", p.Title)
	}
	if slot == nil || slot.ID != f.TestingDjangoSlot.ID {
		t.Fatalf("slot = %+v", slot)
	}
	if p.Section == nil || p.Section.Conference == nil {
		t.Fatalf("section conference not preloaded")
	}

	_, _, err = NewGormPresentationRepository(db).GetByID(context.Background(), 9999)
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound, got %v", err)
	}
}

func TestGormProposalRepository_ListForExport(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.SeedConference(t, db)
	repo := NewGormProposalRepository(db)

	all, err := repo.ListForExport(context.Background(), "")
	if err != nil {
		t.Fatalf("ListForExport: %v", err)
	}
	if len(all) != 4 {
		t.Fatalf("proposals = %d, want 4", len(all))
	}
	if all[0].ID != f.TestingDjango.ID {
		t.Fatalf("proposals not ordered by id")
	}
	if len(all[0].SupportingDocuments) != 1 {
		t.Fatalf("supporting documents not preloaded")
	}

	talks, err := repo.ListForExport(context.Background(), "talk")
	if err != nil {
		t.Fatalf("ListForExport(talk): %v", err)
	}
	if len(talks) != 2 {
		t.Fatalf("talks = %d, want 2", len(talks))
	}
	for _, p := range talks {
		if p.Kind == nil || p.Kind.Slug != "talk" {
			t.Fatalf("unexpected kind in talk export: %+v", p.Kind)
		}
	}
}

func TestGormSponsorRepository(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedConference(t, db)
	repo := NewGormSponsorRepository(db)

	active, err := repo.ListActive(context.Background())
	if err != nil {
		t.Fatalf("ListActive: %v", err)
	}
	if len(active) != 2 {
		t.Fatalf("active = %d, want 2", len(active))
	}
	// Gold (order 1) раньше Silver (order 2).
	if active[0].Name != "Acme" || active[1].Name != "Initech" {
		t.Fatalf("unexpected order: %s, %s", active[0].Name, active[1].Name)
	}
	if active[0].Level == nil || active[0].Level.Name != "Gold" {
		t.Fatalf("level not joined: %+v", active[0].Level)
	}

	all, err := repo.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}
}

func TestGormUserRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewGormUserRepository(db)
	ctx := context.Background()

	u := &model.User{Username: "  guido ", Email: "guido@example.com", PasswordHash: "x", IsActive: true}
	if err := repo.Create(ctx, u); err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := repo.FindByUsername(ctx, "guido")
	if err != nil {
		t.Fatalf("FindByUsername: %v", err)
	}
	if got.ID != u.ID {
		t.Fatalf("id = %d, want %d", got.ID, u.ID)
	}

	if _, err := repo.FindByUsername(ctx, "   "); !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("expected ErrRecordNotFound for blank username, got %v", err)
	}

	at := time.Date(2015, 9, 7, 9, 0, 0, 0, time.UTC)
	if err := repo.TouchLastLogin(ctx, u.ID, at); err != nil {
		t.Fatalf("TouchLastLogin: %v", err)
	}
	got, err = repo.FindByID(ctx, u.ID)
	if err != nil {
		t.Fatalf("FindByID: %v", err)
	}
	if got.LastLogin == nil || !got.LastLogin.Equal(at) {
		t.Fatalf("last login = %v", got.LastLogin)
	}
}
