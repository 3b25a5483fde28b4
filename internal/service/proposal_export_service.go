package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/djangocon/conference-site/internal/export"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/repository"
	"github.com/djangocon/conference-site/internal/schedule"
)

// ProposalHeader — колонки выгрузки заявок (CSV и XLSX).
var ProposalHeader = []string{
	"id",
	"kind",
	"title",
	"speaker",
	"speaker_email",
	"additional_speakers",
	"audience_level",
	"recording_release",
	"submitted",
	"cancelled",
	"abstract",
	"description",
	"additional_notes",
	"supporting_documents",
}

type ProposalExportService struct {
	proposalRepo repository.ProposalRepository
	mediaRoot    string
	now          func() time.Time
}

func NewProposalExportService(proposalRepo repository.ProposalRepository, mediaRoot string) *ProposalExportService {
	return &ProposalExportService{
		proposalRepo: proposalRepo,
		mediaRoot:    mediaRoot,
		now:          time.Now,
	}
}

// Table возвращает заявки вида kindSlug ("" — все) в виде таблицы.
func (s *ProposalExportService) Table(ctx context.Context, kindSlug string) (export.Table, error) {
	proposals, err := s.proposalRepo.ListForExport(ctx, kindSlug)
	if err != nil {
		return export.Table{}, fmt.Errorf("list proposals: %w", err)
	}

	table := export.Table{Header: ProposalHeader, Rows: make([][]string, 0, len(proposals))}
	for i := range proposals {
		table.Rows = append(table.Rows, proposalRow(&proposals[i]))
	}
	return table, nil
}

func proposalRow(p *model.ProposalBase) []string {
	var kind string
	if p.Kind != nil {
		kind = p.Kind.Slug
	}

	var speaker, email string
	if p.Speaker != nil {
		speaker = p.Speaker.Name
		email = p.Speaker.Email()
	}

	additional := make([]string, 0, len(p.AdditionalSpeakers))
	for _, as := range p.AdditionalSpeakers {
		if as.Speaker == nil {
			continue
		}
		additional = append(additional, fmt.Sprintf("%s <%s> (%s)", as.Speaker.Name, as.Speaker.Email(), as.Status))
	}

	// Open space не хранит уровень и согласие на запись.
	var level, release string
	switch p.Type() {
	case model.ProposalTypeTalk, model.ProposalTypeTutorial:
		l, _ := p.AudienceLevel()
		level = model.AudienceLevelLabel(l)
		r, _ := p.RecordingRelease()
		release = strconv.FormatBool(r)
	}

	docs := make([]string, 0, len(p.SupportingDocuments))
	for _, d := range p.SupportingDocuments {
		docs = append(docs, d.File)
	}

	return []string{
		strconv.FormatUint(uint64(p.ID), 10),
		kind,
		p.Title,
		speaker,
		email,
		strings.Join(additional, "; "),
		level,
		release,
		schedule.ISO(p.Submitted.UTC()),
		strconv.FormatBool(p.Cancelled),
		p.Abstract,
		p.Description,
		p.AdditionalNotes,
		strings.Join(docs, "; "),
	}
}

// WriteCSV пишет выгрузку заявок в CSV.
func (s *ProposalExportService) WriteCSV(ctx context.Context, w io.Writer, kindSlug string) error {
	table, err := s.Table(ctx, kindSlug)
	if err != nil {
		return err
	}
	return export.WriteCSV(w, table)
}

// WriteXLSX пишет выгрузку заявок в книгу Excel.
func (s *ProposalExportService) WriteXLSX(ctx context.Context, w io.Writer, kindSlug string) error {
	table, err := s.Table(ctx, kindSlug)
	if err != nil {
		return err
	}
	return export.WriteXLSX(w, "proposals", table)
}

// DocumentsZip складывает файлы заявок в архив как proposals/<id>/<имя файла>,
// совпавшие имена получают суффикс -2, -3, ... Отсутствующие на диске файлы
// пропускаются. Возвращает число добавленных файлов.
func (s *ProposalExportService) DocumentsZip(ctx context.Context, w io.Writer, kindSlug string) (int, error) {
	proposals, err := s.proposalRepo.ListForExport(ctx, kindSlug)
	if err != nil {
		return 0, fmt.Errorf("list proposals: %w", err)
	}

	archive := export.NewArchive(w, s.now())
	added := 0
	for _, p := range proposals {
		for _, d := range p.SupportingDocuments {
			name := path.Join("proposals", strconv.FormatUint(uint64(p.ID), 10), filepath.Base(d.File))
			ok, err := addMediaFile(archive, s.mediaRoot, d.File, name)
			if err != nil {
				archive.Close()
				return added, err
			}
			if ok {
				added++
			}
		}
	}

	if err := archive.Close(); err != nil {
		return added, fmt.Errorf("close zip: %w", err)
	}
	return added, nil
}

// addMediaFile копирует файл из MEDIA_ROOT в архив. ok=false, если файла нет.
func addMediaFile(archive *export.Archive, mediaRoot, rel, name string) (bool, error) {
	if rel == "" {
		return false, nil
	}
	f, err := os.Open(filepath.Join(mediaRoot, filepath.FromSlash(rel)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open %s: %w", rel, err)
	}
	defer f.Close()

	if _, err := archive.AddFile(name, f); err != nil {
		return false, err
	}
	return true, nil
}
