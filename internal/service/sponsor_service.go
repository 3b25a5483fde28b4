package service

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/djangocon/conference-site/internal/export"
	"github.com/djangocon/conference-site/internal/listing"
	"github.com/djangocon/conference-site/internal/markup"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/repository"
)

// SponsorHeader — колонки sponsors.csv в архиве спонсоров.
var SponsorHeader = []string{
	"name",
	"applicant",
	"level",
	"contact_name",
	"contact_email",
	"external_url",
	"listing_text",
	"web_logo",
}

// SponsorCard — спонсор на публичной странице.
type SponsorCard struct {
	ID          uint          `json:"id"`
	Name        string        `json:"name"`
	Level       string        `json:"level"`
	ExternalURL string        `json:"external_url"`
	ListingHTML template.HTML `json:"listing_html"`
	LogoURL     string        `json:"logo_url,omitempty"`
}

type SponsorService struct {
	sponsorRepo repository.SponsorRepository
	mediaRoot   string
	mediaURL    string
	now         func() time.Time
}

func NewSponsorService(sponsorRepo repository.SponsorRepository, mediaRoot, mediaURL string) *SponsorService {
	return &SponsorService{
		sponsorRepo: sponsorRepo,
		mediaRoot:   mediaRoot,
		mediaURL:    mediaURL,
		now:         time.Now,
	}
}

// Listing возвращает страницу активных спонсоров.
func (s *SponsorService) Listing(ctx context.Context, page, size int) (listing.Page[SponsorCard], error) {
	sponsors, err := s.sponsorRepo.ListActive(ctx)
	if err != nil {
		return listing.Page[SponsorCard]{}, fmt.Errorf("list sponsors: %w", err)
	}

	cards := make([]SponsorCard, 0, len(sponsors))
	for i := range sponsors {
		sp := &sponsors[i]
		card := SponsorCard{
			ID:          sp.ID,
			Name:        sp.Name,
			Level:       levelName(sp),
			ExternalURL: sp.ExternalURL,
			ListingHTML: markup.Markdown(sp.ListingText),
		}
		if sp.WebLogo != "" {
			card.LogoURL = s.MediaURL(sp.WebLogo)
		}
		cards = append(cards, card)
	}
	return listing.Paginate(cards, page, size), nil
}

// MediaURL — публичный адрес файла из MEDIA_ROOT.
func (s *SponsorService) MediaURL(rel string) string {
	return strings.TrimSuffix(s.mediaURL, "/") + "/" + strings.TrimPrefix(rel, "/")
}

// ExportZip пишет архив с sponsors.csv и веб-логотипами в logos/.
// Отсутствующие файлы логотипов пропускаются, одинаковые имена получают суффикс.
func (s *SponsorService) ExportZip(ctx context.Context, w io.Writer) error {
	sponsors, err := s.sponsorRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list sponsors: %w", err)
	}

	table := export.Table{Header: SponsorHeader, Rows: make([][]string, 0, len(sponsors))}
	for i := range sponsors {
		sp := &sponsors[i]
		table.Rows = append(table.Rows, []string{
			sp.Name,
			applicantName(sp),
			levelName(sp),
			sp.ContactName,
			sp.ContactEmail,
			sp.ExternalURL,
			sp.ListingText,
			sp.WebLogo,
		})
	}

	archive := export.NewArchive(w, s.now())
	if err := archive.AddCSV("sponsors.csv", table); err != nil {
		archive.Close()
		return err
	}

	for i := range sponsors {
		logo := sponsors[i].WebLogo
		if _, err := addMediaFile(archive, s.mediaRoot, logo, path.Join("logos", filepath.Base(logo))); err != nil {
			archive.Close()
			return err
		}
	}

	if err := archive.Close(); err != nil {
		return fmt.Errorf("close zip: %w", err)
	}
	return nil
}

func applicantName(sp *model.Sponsor) string {
	if sp.Applicant == nil {
		return ""
	}
	return sp.Applicant.Username
}

func levelName(sp *model.Sponsor) string {
	if sp.Level == nil {
		return ""
	}
	return sp.Level.Name
}
