package export

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"
)

// Content-Type выгрузок.
const (
	ContentTypeCSV  = "text/csv"
	ContentTypeXLSX = "application/vnd.ms-excel"
	ContentTypeZIP  = "application/zip"
	ContentTypeJSON = "application/json"
)

// Table — заголовок и строки; в каждой строке len(Header) ячеек.
type Table struct {
	Header []string
	Rows   [][]string
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	if err := cw.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("write csv rows: %w", err)
	}
	return nil
}

// WriteXLSX пишет таблицу в книгу с одним листом sheet.
func WriteXLSX(w io.Writer, sheet string, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	write := func(rowIdx int, cells []string) error {
		cell, err := excelize.CoordinatesToCellName(1, rowIdx)
		if err != nil {
			return err
		}
		values := make([]any, len(cells))
		for i, c := range cells {
			values[i] = c
		}
		return f.SetSheetRow(sheet, cell, &values)
	}

	if err := write(1, t.Header); err != nil {
		return fmt.Errorf("write xlsx header: %w", err)
	}
	for i, row := range t.Rows {
		if err := write(i+2, row); err != nil {
			return fmt.Errorf("write xlsx row %d: %w", i+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write xlsx: %w", err)
	}
	return nil
}

// Archive — zip.Writer с помощниками для архивов выгрузки.
type Archive struct {
	zw       *zip.Writer
	modified time.Time
	names    map[string]struct{}
}

// NewArchive начинает zip-поток в w. modified проставляется каждой записи.
func NewArchive(w io.Writer, modified time.Time) *Archive {
	return &Archive{zw: zip.NewWriter(w), modified: modified, names: make(map[string]struct{})}
}

// Create открывает новую сжатую запись и возвращает имя, под которым она
// записана: занятое имя получает суффикс -2, -3, ... перед расширением.
func (a *Archive) Create(name string) (io.Writer, string, error) {
	name = a.reserve(name)
	w, err := a.zw.CreateHeader(&zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: a.modified,
	})
	return w, name, err
}

func (a *Archive) reserve(name string) string {
	candidate := name
	ext := path.Ext(name)
	stem := strings.TrimSuffix(name, ext)
	for n := 2; ; n++ {
		if _, taken := a.names[candidate]; !taken {
			break
		}
		candidate = stem + "-" + strconv.Itoa(n) + ext
	}
	a.names[candidate] = struct{}{}
	return candidate
}

// AddCSV кладёт t в архив как CSV.
func (a *Archive) AddCSV(name string, t Table) error {
	w, _, err := a.Create(name)
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}
	return WriteCSV(w, t)
}

// AddFile копирует r в архив и возвращает итоговое имя записи.
func (a *Archive) AddFile(name string, r io.Reader) (string, error) {
	w, stored, err := a.Create(name)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", name, err)
	}
	if _, err := io.Copy(w, r); err != nil {
		return "", fmt.Errorf("copy %s: %w", stored, err)
	}
	return stored, nil
}

// Close дописывает центральный каталог.
func (a *Archive) Close() error {
	return a.zw.Close()
}
