package seed

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/auth"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/schedule"
)

var (
	ErrUnknownReference = errors.New("unknown reference")
	ErrSlotOverlap      = errors.New("slot overlaps another slot in the same room")
)

// Result — сколько записей создано.
type Result struct {
	Users         int
	Speakers      int
	Proposals     int
	Slots         int
	Presentations int
	Sponsors      int
}

// Decode читает фикстуру; неизвестные поля считаются ошибкой.
func Decode(r io.Reader) (*Fixture, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixture
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("decode fixture: %w", err)
	}
	return &f, nil
}

// Load создаёт всё описанное в f. При любой ошибке транзакция откатывается.
func Load(ctx context.Context, db *gorm.DB, f *Fixture) (*Result, error) {
	res := &Result{}
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		l := &loader{
			tx:        tx,
			res:       res,
			sections:  map[string]*model.Section{},
			kinds:     map[string]*model.ProposalKind{},
			users:     map[string]*model.User{},
			speakers:  map[string]*model.Speaker{},
			proposals: map[string]*model.ProposalBase{},
			levels:    map[string]*model.SponsorLevel{},
			presented: map[string]bool{},
		}
		return l.load(f)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

type loader struct {
	tx  *gorm.DB
	res *Result

	conference *model.Conference
	sections   map[string]*model.Section
	kinds      map[string]*model.ProposalKind
	users      map[string]*model.User
	speakers   map[string]*model.Speaker
	proposals  map[string]*model.ProposalBase
	levels     map[string]*model.SponsorLevel
	presented  map[string]bool
}

func (l *loader) load(f *Fixture) error {
	steps := []func(*Fixture) error{
		l.loadConference,
		l.loadUsers,
		l.loadSpeakers,
		l.loadProposals,
		l.loadSchedules,
		l.loadSponsors,
	}
	for _, step := range steps {
		if err := step(f); err != nil {
			return err
		}
	}
	return nil
}

func (l *loader) loadConference(f *Fixture) error {
	c := &model.Conference{Title: f.Conference.Title, TimeZone: f.Conference.TimeZone}
	if strings.TrimSpace(c.Title) == "" {
		return errors.New("conference title is required")
	}
	var err error
	if c.StartDate, err = optionalDate(f.Conference.StartDate); err != nil {
		return err
	}
	if c.EndDate, err = optionalDate(f.Conference.EndDate); err != nil {
		return err
	}
	if err := l.tx.Create(c).Error; err != nil {
		return fmt.Errorf("create conference: %w", err)
	}
	l.conference = c

	for _, sf := range f.Sections {
		s := &model.Section{ConferenceID: c.ID, Name: sf.Name, Slug: sf.Slug}
		if err := l.tx.Create(s).Error; err != nil {
			return fmt.Errorf("create section %q: %w", sf.Slug, err)
		}
		l.sections[sf.Slug] = s
	}

	for _, kf := range f.ProposalKinds {
		section, ok := l.sections[kf.Section]
		if !ok {
			return fmt.Errorf("%w: section %q for proposal kind %q", ErrUnknownReference, kf.Section, kf.Slug)
		}
		k := &model.ProposalKind{SectionID: section.ID, Name: kf.Name, Slug: kf.Slug}
		if err := l.tx.Create(k).Error; err != nil {
			return fmt.Errorf("create proposal kind %q: %w", kf.Slug, err)
		}
		l.kinds[kf.Slug] = k
	}
	return nil
}

func (l *loader) loadUsers(f *Fixture) error {
	for _, uf := range f.Users {
		hash, err := auth.HashPassword(uf.Password)
		if err != nil {
			return fmt.Errorf("user %q: %w", uf.Username, err)
		}
		u := &model.User{
			Username:     strings.TrimSpace(uf.Username),
			Email:        uf.Email,
			PasswordHash: hash,
			FirstName:    uf.FirstName,
			LastName:     uf.LastName,
			IsActive:     true,
			IsStaff:      uf.Staff || uf.Superuser,
			IsSuperuser:  uf.Superuser,
		}
		if err := l.tx.Create(u).Error; err != nil {
			return fmt.Errorf("create user %q: %w", uf.Username, err)
		}
		l.users[u.Username] = u
		l.res.Users++
	}
	return nil
}

func (l *loader) loadSpeakers(f *Fixture) error {
	for _, sf := range f.Speakers {
		s := &model.Speaker{
			Name:            sf.Name,
			Biography:       sf.Biography,
			TwitterUsername: sf.TwitterUsername,
		}
		if sf.User != "" {
			u, ok := l.users[sf.User]
			if !ok {
				return fmt.Errorf("%w: user %q for speaker %q", ErrUnknownReference, sf.User, sf.Key)
			}
			s.UserID = &u.ID
			s.User = u
		}
		if sf.InviteEmail != "" {
			email := sf.InviteEmail
			s.InviteEmail = &email
		}
		if err := l.tx.Omit("User").Create(s).Error; err != nil {
			return fmt.Errorf("create speaker %q: %w", sf.Key, err)
		}
		l.speakers[sf.Key] = s
		l.res.Speakers++
	}
	return nil
}

func (l *loader) loadProposals(f *Fixture) error {
	for _, pf := range f.Proposals {
		kind, ok := l.kinds[pf.Kind]
		if !ok {
			return fmt.Errorf("%w: kind %q for proposal %q", ErrUnknownReference, pf.Kind, pf.Key)
		}
		speaker, ok := l.speakers[pf.Speaker]
		if !ok {
			return fmt.Errorf("%w: speaker %q for proposal %q", ErrUnknownReference, pf.Speaker, pf.Key)
		}

		p := &model.ProposalBase{
			KindID:          kind.ID,
			SpeakerID:       speaker.ID,
			Title:           pf.Title,
			Abstract:        pf.Abstract,
			Description:     pf.Description,
			AdditionalNotes: pf.AdditionalNotes,
			Cancelled:       pf.Cancelled,
		}
		if err := l.tx.Create(p).Error; err != nil {
			return fmt.Errorf("create proposal %q: %w", pf.Key, err)
		}

		// Согласие на запись по умолчанию дано.
		release := true
		if pf.RecordingRelease != nil {
			release = *pf.RecordingRelease
		}
		proposalType := pf.Type
		if proposalType == "" {
			proposalType = pf.Kind
		}

		var subtype any
		switch proposalType {
		case model.ProposalTypeTalk:
			subtype = &model.TalkProposal{ProposalBaseID: p.ID, AudienceLevel: pf.AudienceLevel, RecordingRelease: release}
		case model.ProposalTypeTutorial:
			subtype = &model.TutorialProposal{ProposalBaseID: p.ID, AudienceLevel: pf.AudienceLevel, RecordingRelease: release}
		case model.ProposalTypeOpenSpace:
			subtype = &model.OpenSpaceProposal{ProposalBaseID: p.ID}
		default:
			return fmt.Errorf("proposal %q: unknown type %q", pf.Key, proposalType)
		}
		if err := l.tx.Create(subtype).Error; err != nil {
			return fmt.Errorf("create %s proposal %q: %w", proposalType, pf.Key, err)
		}

		for _, af := range pf.AdditionalSpeakers {
			extra, ok := l.speakers[af.Speaker]
			if !ok {
				return fmt.Errorf("%w: additional speaker %q for proposal %q", ErrUnknownReference, af.Speaker, pf.Key)
			}
			status, err := parseSpeakingStatus(af.Status)
			if err != nil {
				return fmt.Errorf("proposal %q: %w", pf.Key, err)
			}
			as := &model.AdditionalSpeaker{ProposalBaseID: p.ID, SpeakerID: extra.ID, Status: status}
			if err := l.tx.Create(as).Error; err != nil {
				return fmt.Errorf("add speaker %q to %q: %w", af.Speaker, pf.Key, err)
			}
		}

		l.proposals[pf.Key] = p
		l.res.Proposals++
	}
	return nil
}

func (l *loader) loadSchedules(f *Fixture) error {
	for _, sf := range f.Schedules {
		section, ok := l.sections[sf.Section]
		if !ok {
			return fmt.Errorf("%w: section %q for schedule", ErrUnknownReference, sf.Section)
		}
		sched := &model.Schedule{SectionID: section.ID, Published: sf.Published}
		if err := l.tx.Create(sched).Error; err != nil {
			return fmt.Errorf("create schedule %q: %w", sf.Section, err)
		}

		rooms := map[string]*model.Room{}
		for _, rf := range sf.Rooms {
			r := &model.Room{ScheduleID: sched.ID, Name: rf.Name, Order: rf.Order}
			if err := l.tx.Create(r).Error; err != nil {
				return fmt.Errorf("create room %q: %w", rf.Name, err)
			}
			rooms[rf.Name] = r
		}

		kinds := map[string]*model.SlotKind{}
		for _, label := range sf.SlotKinds {
			k := &model.SlotKind{ScheduleID: sched.ID, Label: label}
			if err := l.tx.Create(k).Error; err != nil {
				return fmt.Errorf("create slot kind %q: %w", label, err)
			}
			kinds[label] = k
		}

		// занятость залов в абсолютном времени: слот после полуночи
		// сталкивается и со слотами следующего дня
		booked := map[uint][]schedule.TimeRange{}
		for _, df := range sf.Days {
			date, err := parseDate(df.Date)
			if err != nil {
				return err
			}
			day := &model.Day{ScheduleID: sched.ID, Date: date}
			if err := l.tx.Create(day).Error; err != nil {
				return fmt.Errorf("create day %s: %w", df.Date, err)
			}

			for _, slf := range df.Slots {
				if err := l.loadSlot(section, day, kinds, rooms, booked, slf); err != nil {
					return fmt.Errorf("day %s slot %s-%s: %w", df.Date, slf.Start, slf.End, err)
				}
			}
		}
	}
	return nil
}

func (l *loader) loadSlot(
	section *model.Section,
	day *model.Day,
	kinds map[string]*model.SlotKind,
	rooms map[string]*model.Room,
	booked map[uint][]schedule.TimeRange,
	sf SlotFixture,
) error {
	kind, ok := kinds[sf.Kind]
	if !ok {
		return fmt.Errorf("%w: slot kind %q", ErrUnknownReference, sf.Kind)
	}
	start, err := schedule.ParseClock(sf.Start)
	if err != nil {
		return err
	}
	end, err := schedule.ParseClock(sf.End)
	if err != nil {
		return err
	}

	slotSpan := schedule.SlotRange(day.Date, start, end)
	span, err := schedule.NewTimeRange(slotSpan.Start, slotSpan.End)
	if err != nil {
		return err
	}
	slotRooms := make([]model.Room, 0, len(sf.Rooms))
	for _, name := range sf.Rooms {
		room, ok := rooms[name]
		if !ok {
			return fmt.Errorf("%w: room %q", ErrUnknownReference, name)
		}
		if overlap, _ := schedule.HasOverlap(span, booked[room.ID], false); overlap {
			return fmt.Errorf("%w: room %q", ErrSlotOverlap, name)
		}
		booked[room.ID] = append(booked[room.ID], span)
		slotRooms = append(slotRooms, *room)
	}

	slot := &model.Slot{
		DayID:           day.ID,
		KindID:          kind.ID,
		Start:           start,
		End:             end,
		ContentOverride: sf.Override,
		Rooms:           slotRooms,
	}
	if err := l.tx.Create(slot).Error; err != nil {
		return fmt.Errorf("create slot: %w", err)
	}
	l.res.Slots++

	if sf.Presentation == "" {
		return nil
	}
	proposal, ok := l.proposals[sf.Presentation]
	if !ok {
		return fmt.Errorf("%w: proposal %q", ErrUnknownReference, sf.Presentation)
	}
	if l.presented[sf.Presentation] {
		return fmt.Errorf("proposal %q is already scheduled", sf.Presentation)
	}

	p := &model.Presentation{
		SlotID:         &slot.ID,
		Title:          proposal.Title,
		Description:    proposal.Description,
		Abstract:       proposal.Abstract,
		SpeakerID:      proposal.SpeakerID,
		Cancelled:      proposal.Cancelled,
		ProposalBaseID: proposal.ID,
		SectionID:      section.ID,
	}
	if err := l.tx.Create(p).Error; err != nil {
		return fmt.Errorf("create presentation %q: %w", sf.Presentation, err)
	}
	l.presented[sf.Presentation] = true
	l.res.Presentations++
	return nil
}

func (l *loader) loadSponsors(f *Fixture) error {
	for _, lf := range f.SponsorLevels {
		level := &model.SponsorLevel{ConferenceID: l.conference.ID, Name: lf.Name, Order: lf.Order, Cost: lf.Cost}
		if err := l.tx.Create(level).Error; err != nil {
			return fmt.Errorf("create sponsor level %q: %w", lf.Name, err)
		}
		l.levels[lf.Name] = level
	}

	for _, sf := range f.Sponsors {
		level, ok := l.levels[sf.Level]
		if !ok {
			return fmt.Errorf("%w: level %q for sponsor %q", ErrUnknownReference, sf.Level, sf.Name)
		}
		s := &model.Sponsor{
			Name:         sf.Name,
			LevelID:      level.ID,
			Active:       sf.Active,
			ContactName:  sf.ContactName,
			ContactEmail: sf.ContactEmail,
			ExternalURL:  sf.ExternalURL,
			ListingText:  sf.ListingText,
			WebLogo:      sf.WebLogo,
			PrintLogo:    sf.PrintLogo,
		}
		if sf.Applicant != "" {
			u, ok := l.users[sf.Applicant]
			if !ok {
				return fmt.Errorf("%w: applicant %q for sponsor %q", ErrUnknownReference, sf.Applicant, sf.Name)
			}
			s.ApplicantID = &u.ID
		}
		if err := l.tx.Create(s).Error; err != nil {
			return fmt.Errorf("create sponsor %q: %w", sf.Name, err)
		}
		l.res.Sponsors++
	}
	return nil
}

func parseDate(s string) (datatypes.Date, error) {
	t, err := time.Parse(time.DateOnly, strings.TrimSpace(s))
	if err != nil {
		return datatypes.Date{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return datatypes.Date(t), nil
}

func optionalDate(s string) (*datatypes.Date, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	d, err := parseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func parseSpeakingStatus(s string) (model.SpeakingStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pending":
		return model.SpeakingStatusPending, nil
	case "accepted":
		return model.SpeakingStatusAccepted, nil
	case "declined":
		return model.SpeakingStatusDeclined, nil
	default:
		return 0, fmt.Errorf("unknown speaking status %q", s)
	}
}
