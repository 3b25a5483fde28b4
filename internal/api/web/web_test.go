package web

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djangocon/conference-site/internal/auth"
	"github.com/djangocon/conference-site/internal/config"
	"github.com/djangocon/conference-site/internal/logger"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/repository"
	"github.com/djangocon/conference-site/internal/service"
	"github.com/djangocon/conference-site/internal/testutil"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testSite struct {
	router   *gin.Engine
	fixture  *testutil.Conference
	sessions *auth.Sessions
}

func newTestSite(t *testing.T, mutate func(*config.AppConfig)) *testSite {
	t.Helper()

	cfg := &config.AppConfig{
		SiteDomain:    "2015.djangocon.us",
		BarrelRealm:   "Password Protected",
		MediaURL:      "/site_media/media/",
		MediaRoot:     t.TempDir(),
		SessionSecret: "test-secret",
		SessionTTL:    time.Hour,
	}
	if mutate != nil {
		mutate(cfg)
	}

	db := testutil.NewDB(t)
	f := testutil.SeedConference(t, db)
	sessions := auth.NewSessions(cfg.SessionSecret, cfg.SessionTTL)

	router := NewRouter(Deps{
		Config:   cfg,
		Log:      logger.Discard(),
		Metrics:  NewMetrics(),
		Sessions: sessions,
		Schedule: service.NewScheduleService(
			repository.NewGormSlotRepository(db),
			repository.NewGormPresentationRepository(db),
			cfg.SiteDomain,
		),
		Proposals: service.NewProposalExportService(repository.NewGormProposalRepository(db), cfg.MediaRoot),
		Sponsors:  service.NewSponsorService(repository.NewGormSponsorRepository(db), cfg.MediaRoot, cfg.MediaURL),
		Identity:  service.NewIdentityService(repository.NewGormUserRepository(db)),
	})
	return &testSite{router: router, fixture: f, sessions: sessions}
}

// do выполняет GET от имени u; nil — аноним.
func (s *testSite) do(t *testing.T, path string, u *model.User) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if u != nil {
		token, _, err := s.sessions.Issue(u)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decodeMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Message
}

func TestScheduleJSON_Anonymous(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.do(t, "/schedule/json/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	var data []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	require.Len(t, data, 5)
	assert.Equal(t, "Testing Django", data[0]["name"])
	assert.Equal(t, []any{"redacted"}, data[0]["contact"])
	assert.Nil(t, data[3]["conf_url"])
}

func TestScheduleJSON_Staff(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.do(t, "/schedule/json/", site.fixture.Staff)
	require.Equal(t, http.StatusOK, w.Code)

	var data []service.ScheduleEntry
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &data))
	assert.Equal(t, []string{"alice@example.com", "bob@example.com"}, data[0].Contact)
}

func TestScheduleJSON_BearerToken(t *testing.T) {
	site := newTestSite(t, nil)
	token, _, err := site.sessions.Issue(site.fixture.Superuser)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/schedule/json/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	site.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "alice@example.com")
}

func TestScheduleJSON_InvalidSessionIsAnonymous(t *testing.T) {
	site := newTestSite(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/schedule/json/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: "garbage"})
	w := httptest.NewRecorder()
	site.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "alice@example.com")
}

func TestStaffOnlyExports(t *testing.T) {
	site := newTestSite(t, nil)

	tests := []struct {
		path        string
		contentType string
	}{
		{"/schedule/guidebook/", "text/csv"},
		{"/proposals/export/", "text/csv"},
		{"/proposals/export/xlsx/", "application/vnd.ms-excel"},
		{"/proposals/export/documents/", "application/zip"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := site.do(t, tt.path, nil)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Equal(t, "authentication required", decodeMessage(t, w))

			w = site.do(t, tt.path, site.fixture.Attendee)
			assert.Equal(t, http.StatusForbidden, w.Code)

			w = site.do(t, tt.path, site.fixture.Staff)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.contentType, w.Header().Get("Content-Type"))
			assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment;")
		})
	}
}

func TestProposalsCSV_KindFilter(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.do(t, "/proposals/export/?kind=tutorial", site.fixture.Staff)
	require.Equal(t, http.StatusOK, w.Code)

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "id,kind,title,speaker,speaker_email"))
	assert.Contains(t, lines[1], "Deep ORM")
}

func TestSponsorsExport_SuperuserOnly(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.do(t, "/sponsors/export/", site.fixture.Staff)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = site.do(t, "/sponsors/export/", site.fixture.Superuser)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/zip", w.Header().Get("Content-Type"))

	zr, err := zip.NewReader(bytes.NewReader(w.Body.Bytes()), int64(w.Body.Len()))
	require.NoError(t, err)
	require.NotEmpty(t, zr.File)
	assert.Equal(t, "sponsors.csv", zr.File[0].Name)
}

func TestSponsorsListing(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.do(t, "/sponsors/?page=1&page_size=1", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items []service.SponsorCard `json:"items"`
		Total int                   `json:"total"`
		Next  bool                  `json:"has_next"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)
	assert.True(t, page.Next)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Acme", page.Items[0].Name)
}

func TestSponsorsListing_PageFarPastEnd(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.do(t, "/sponsors/?page=4611686018427387905&page_size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var page struct {
		Items []service.SponsorCard `json:"items"`
		Total int                   `json:"total"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page))
	assert.Equal(t, 2, page.Total)
	assert.Empty(t, page.Items)
}

func TestPresentationDetail(t *testing.T) {
	site := newTestSite(t, nil)
	id := site.fixture.TestingDjangoPresentation.ID

	w := site.do(t, "/schedule/presentation/"+itoa(id)+"/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	body := w.Body.String()
	assert.Contains(t, body, "<h1>Testing Django</h1>")
	assert.Contains(t, body, "<strong>abstract</strong>")
	assert.Contains(t, body, "Bob Tables")
	assert.NotContains(t, body, "Dave Declined")

	w = site.do(t, "/schedule/presentation/999/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = site.do(t, "/schedule/presentation/abc/", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginLogout(t *testing.T) {
	site := newTestSite(t, nil)

	form := url.Values{"username": {"organizer"}, "password": {testutil.Password}}
	req := httptest.NewRequest(http.MethodPost, "/account/login/", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	site.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	var resp LoginResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "organizer", resp.Username)
	assert.True(t, resp.IsStaff)

	var session *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.CookieName {
			session = c
		}
	}
	require.NotNil(t, session)
	assert.True(t, session.HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/schedule/guidebook/", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: session.Value})
	w = httptest.NewRecorder()
	site.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	req = httptest.NewRequest(http.MethodPost, "/account/logout/", nil)
	w = httptest.NewRecorder()
	site.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Set-Cookie"), auth.CookieName+"=;")
}

func TestLogin_Rejected(t *testing.T) {
	site := newTestSite(t, nil)

	body := `{"username":"organizer","password":"wrong"}`
	req := httptest.NewRequest(http.MethodPost, "/account/login/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	site.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Empty(t, w.Result().Cookies())

	req = httptest.NewRequest(http.MethodPost, "/account/login/", strings.NewReader(`{"username":"organizer"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	site.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBasicAuth(t *testing.T) {
	site := newTestSite(t, func(cfg *config.AppConfig) {
		cfg.BarrelUser = "barrel"
		cfg.BarrelPass = "aged"
	})

	w := site.do(t, "/schedule/json/", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, `Basic realm="Password Protected"`, w.Header().Get("WWW-Authenticate"))

	req := httptest.NewRequest(http.MethodGet, "/schedule/json/", nil)
	req.SetBasicAuth("barrel", "aged")
	w = httptest.NewRecorder()
	site.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestBasicAuth_DisabledWithPartialCredentials(t *testing.T) {
	site := newTestSite(t, func(cfg *config.AppConfig) {
		cfg.BarrelUser = "barrel"
	})

	w := site.do(t, "/schedule/json/", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMetricsAndIndex(t *testing.T) {
	site := newTestSite(t, nil)

	site.do(t, "/schedule/json/", nil)

	w := site.do(t, "/metrics", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `conference_http_requests_total{method="GET",route="/schedule/json/",status="200"} 1`)

	w = site.do(t, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"/schedule/json/"`)
	assert.Contains(t, w.Body.String(), `"/sponsors/export/"`)
}

func TestNotFound(t *testing.T) {
	site := newTestSite(t, nil)

	w := site.do(t, "/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "not found", decodeMessage(t, w))
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
