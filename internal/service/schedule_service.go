package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/export"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/repository"
	"github.com/djangocon/conference-site/internal/schedule"
)

// LightningTalks — название и описание блока lightning talks по умолчанию.
const LightningTalks = "Lightning Talks"

// Контакты спикеров видны только организаторам.
const redacted = "redacted"

var (
	// Виды слотов, в которых стоят доклады с записью.
	recordedSlotKinds = map[string]bool{
		model.SlotKindTalk:     true,
		model.SlotKindTutorial: true,
		model.SlotKindPlenary:  true,
	}
	// Виды заявок, попадающие в видеофид.
	recordedProposalKinds = map[string]bool{
		"talk":     true,
		"tutorial": true,
	}
)

// ScheduleEntry — запись JSON-фида расписания для видеокоманды.
type ScheduleEntry struct {
	Name        string   `json:"name"`
	Room        string   `json:"room"`
	Start       string   `json:"start"`
	End         string   `json:"end"`
	Duration    int      `json:"duration"`
	Authors     []string `json:"authors"`
	Released    bool     `json:"released"`
	License     string   `json:"license"`
	Contact     []string `json:"contact"`
	Abstract    string   `json:"abstract"`
	Description string   `json:"description"`
	ConfKey     uint     `json:"conf_key"`
	ConfURL     *string  `json:"conf_url"`
	Kind        string   `json:"kind"`
	Tags        string   `json:"tags"`
}

// GuidebookHeader — колонки CSV-импорта Guidebook.
var GuidebookHeader = []string{
	"Session Title",
	"Date",
	"Time Start",
	"Time End",
	"Room/Location",
	"Schedule Track (Optional)",
	"Description (Optional)",
}

type ScheduleService struct {
	slotRepo         repository.SlotRepository
	presentationRepo repository.PresentationRepository
	siteDomain       string
}

func NewScheduleService(
	slotRepo repository.SlotRepository,
	presentationRepo repository.PresentationRepository,
	siteDomain string,
) *ScheduleService {
	return &ScheduleService{
		slotRepo:         slotRepo,
		presentationRepo: presentationRepo,
		siteDomain:       siteDomain,
	}
}

// PresentationDetail — данные страницы доклада.
type PresentationDetail struct {
	Presentation *model.Presentation
	Slot         *model.Slot
	Speakers     []*model.Speaker
	// Время слота в виде "Monday, September 7, 2015, 09:00–09:45"; пусто, если доклад не в расписании.
	When  string
	Rooms string
}

// Presentation возвращает доклад по id. Отменённые доклады не показываются.
func (s *ScheduleService) Presentation(ctx context.Context, id uint) (*PresentationDetail, error) {
	p, slot, err := s.presentationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get presentation %d: %w", id, err)
	}
	if p.Cancelled {
		return nil, ErrNotFound
	}

	detail := &PresentationDetail{
		Presentation: p,
		Slot:         slot,
		Speakers:     p.Speakers(),
	}
	if slot != nil && slot.Day != nil {
		detail.When = schedule.FormatSlotForUser(schedule.SlotRange(slot.Day.Date, slot.Start, slot.End), nil)
		detail.Rooms = roomNames(slot)
	}
	return detail, nil
}

// PresentationURL — абсолютная ссылка на страницу доклада.
func (s *ScheduleService) PresentationURL(presentationID uint) string {
	return fmt.Sprintf("https://%s/schedule/presentation/%d/", s.siteDomain, presentationID)
}

// ScheduleJSON строит фид расписания. viewer == nil — анонимный посетитель.
func (s *ScheduleService) ScheduleJSON(ctx context.Context, viewer *model.User) ([]ScheduleEntry, error) {
	slots, err := s.slotRepo.ListOrderedByStart(ctx)
	if err != nil {
		return nil, fmt.Errorf("list slots: %w", err)
	}

	staff := viewer.IsStaffMember()

	data := make([]ScheduleEntry, 0, len(slots))
	for i := range slots {
		slot := &slots[i]
		if slot.Day == nil {
			continue
		}

		label := slot.KindLabel()
		switch {
		case recordedSlotKinds[label]:
			entry, ok := s.presentationEntry(slot, staff)
			if !ok {
				continue
			}
			data = append(data, entry)
		case label == model.SlotKindLightning:
			data = append(data, lightningEntry(slot))
		}
	}
	return data, nil
}

func (s *ScheduleService) presentationEntry(slot *model.Slot, staff bool) (ScheduleEntry, bool) {
	content := slot.Content
	if content == nil || content.Proposal == nil || content.Proposal.Kind == nil {
		return ScheduleEntry{}, false
	}
	if !recordedProposalKinds[content.Proposal.Kind.Slug] {
		return ScheduleEntry{}, false
	}
	released, ok := content.Proposal.RecordingRelease()
	if !ok {
		return ScheduleEntry{}, false
	}

	speakers := content.Speakers()
	authors := make([]string, 0, len(speakers))
	emails := make([]string, 0, len(speakers))
	for _, sp := range speakers {
		authors = append(authors, sp.Name)
		emails = append(emails, sp.Email())
	}

	contact := []string{redacted}
	if staff {
		contact = emails
	}

	url := s.PresentationURL(content.ID)
	entry := baseEntry(slot)
	entry.Name = content.Title
	entry.Authors = authors
	entry.Released = released
	entry.Contact = contact
	entry.Abstract = content.Abstract
	entry.Description = content.Description
	entry.ConfURL = &url
	entry.Kind = content.Proposal.Kind.Slug
	return entry, true
}

func lightningEntry(slot *model.Slot) ScheduleEntry {
	entry := baseEntry(slot)
	entry.Name = LightningTalks
	if slot.ContentOverride != "" {
		entry.Name = slot.ContentOverride
	}
	entry.Released = true
	entry.Abstract = LightningTalks
	entry.Description = LightningTalks
	entry.Kind = model.SlotKindLightning
	return entry
}

// baseEntry заполняет поля, общие для всех веток.
func baseEntry(slot *model.Slot) ScheduleEntry {
	return ScheduleEntry{
		Room:     roomNames(slot),
		Start:    schedule.ISO(schedule.Combine(slot.Day.Date, slot.Start)),
		End:      schedule.ISO(schedule.Combine(slot.Day.Date, slot.End)),
		Duration: schedule.Duration(slot.Start, slot.End),
		License:  "",
		ConfKey:  slot.ID,
		Tags:     "",
	}
}

// roomNames — залы слота через запятую в порядке их сортировки.
func roomNames(slot *model.Slot) string {
	rooms := make([]model.Room, len(slot.Rooms))
	copy(rooms, slot.Rooms)
	sort.SliceStable(rooms, func(i, j int) bool {
		if rooms[i].Order != rooms[j].Order {
			return rooms[i].Order < rooms[j].Order
		}
		return rooms[i].ID < rooms[j].ID
	})

	names := make([]string, 0, len(rooms))
	for _, r := range rooms {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}

// EncodeScheduleJSON пишет фид без HTML-экранирования и без перевода строки в конце.
// nil кодируется как пустой массив.
func EncodeScheduleJSON(w io.Writer, data []ScheduleEntry) error {
	if data == nil {
		data = []ScheduleEntry{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("encode schedule: %w", err)
	}
	_, err := w.Write(bytes.TrimSuffix(buf.Bytes(), []byte("\n")))
	return err
}

// Guidebook строит таблицу для импорта расписания в приложение Guidebook.
func (s *ScheduleService) Guidebook(ctx context.Context) (export.Table, error) {
	slots, err := s.slotRepo.ListOrderedByStart(ctx)
	if err != nil {
		return export.Table{}, fmt.Errorf("list slots: %w", err)
	}

	table := export.Table{Header: GuidebookHeader}
	for i := range slots {
		slot := &slots[i]
		if slot.Day == nil {
			continue
		}

		var title, description string
		switch {
		case slot.Content != nil:
			if slot.Content.Cancelled {
				continue
			}
			title = slot.Content.Title
			description = slot.Content.Description
		case slot.KindLabel() == model.SlotKindLightning:
			title = LightningTalks
			if slot.ContentOverride != "" {
				title = slot.ContentOverride
			}
			description = LightningTalks
		case slot.ContentOverride != "":
			title = slot.ContentOverride
		default:
			continue
		}

		start := schedule.Combine(slot.Day.Date, slot.Start)
		end := schedule.Combine(slot.Day.Date, slot.End)
		table.Rows = append(table.Rows, []string{
			title,
			start.Format("01/02/2006"),
			start.Format("03:04 PM"),
			end.Format("03:04 PM"),
			roomNames(slot),
			slot.KindLabel(),
			description,
		})
	}
	return table, nil
}
