package service

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djangocon/conference-site/internal/repository"
	"github.com/djangocon/conference-site/internal/testutil"
)

func TestSponsorListing(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedConference(t, db)
	svc := NewSponsorService(repository.NewGormSponsorRepository(db), t.TempDir(), "/site_media/media/")

	page, err := svc.Listing(context.Background(), 1, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.False(t, page.HasNext)
	require.Len(t, page.Items, 2)

	acme := page.Items[0]
	assert.Equal(t, "Acme", acme.Name)
	assert.Equal(t, "Gold", acme.Level)
	assert.Equal(t, "/site_media/media/sponsor_files/missing.png", acme.LogoURL)

	initech := page.Items[1]
	assert.Contains(t, string(initech.ListingHTML), "<em>reports</em>")
}

func TestSponsorListing_Paging(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedConference(t, db)
	svc := NewSponsorService(repository.NewGormSponsorRepository(db), t.TempDir(), "/site_media/media/")

	page, err := svc.Listing(context.Background(), 2, 1)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Initech", page.Items[0].Name)
	assert.True(t, page.HasPrev)
	assert.False(t, page.HasNext)
}

func TestSponsorExportZip(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.SeedConference(t, db)

	mediaRoot := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(mediaRoot, "sponsor_files"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(mediaRoot, "sponsor_files", "initech.png"), []byte("png"), 0o644))

	svc := NewSponsorService(repository.NewGormSponsorRepository(db), mediaRoot, "/site_media/media/")

	var buf bytes.Buffer
	require.NoError(t, svc.ExportZip(context.Background(), &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)

	// Логотип Acme отсутствует на диске и пропускается.
	require.Len(t, zr.File, 2)
	assert.Equal(t, "sponsors.csv", zr.File[0].Name)
	assert.Equal(t, "logos/initech.png", zr.File[1].Name)

	rc, err := zr.File[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	records, err := csv.NewReader(rc).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, SponsorHeader, records[0])
	assert.Equal(t, []string{"Acme", "organizer", "Gold", "Wile", "wile@acme.example", "https://acme.example", "Anvils", "sponsor_files/missing.png"}, records[1])
}

func TestSponsorExportZip_SameLogoName(t *testing.T) {
	db := testutil.NewDB(t)
	f := testutil.SeedConference(t, db)
	require.NoError(t, db.Model(f.Initech).Update("web_logo", "a/logo.png").Error)
	require.NoError(t, db.Model(f.Acme).Update("web_logo", "b/logo.png").Error)

	mediaRoot := t.TempDir()
	for _, dir := range []string{"a", "b"} {
		require.NoError(t, os.MkdirAll(filepath.Join(mediaRoot, dir), 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(mediaRoot, dir, "logo.png"), []byte(dir), 0o644))
	}

	svc := NewSponsorService(repository.NewGormSponsorRepository(db), mediaRoot, "/site_media/media/")

	var buf bytes.Buffer
	require.NoError(t, svc.ExportZip(context.Background(), &buf))

	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	assert.Equal(t, "logos/logo.png", zr.File[1].Name)
	assert.Equal(t, "logos/logo-2.png", zr.File[2].Name)
	assert.Equal(t, "b", readZipEntry(t, zr.File[1]))
	assert.Equal(t, "a", readZipEntry(t, zr.File[2]))
}

func readZipEntry(t *testing.T, f *zip.File) string {
	t.Helper()
	rc, err := f.Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	return string(data)
}
