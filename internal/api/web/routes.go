package web

import (
	"log/slog"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/djangocon/conference-site/internal/auth"
	"github.com/djangocon/conference-site/internal/config"
	"github.com/djangocon/conference-site/internal/service"
)

// Deps — всё, что нужно HTTP-слою.
type Deps struct {
	Config    *config.AppConfig
	Log       *slog.Logger
	Metrics   *Metrics
	Sessions  *auth.Sessions
	Schedule  *service.ScheduleService
	Proposals *service.ProposalExportService
	Sponsors  *service.SponsorService
	Identity  *service.IdentityService
}

// NewRouter собирает gin.Engine со всеми маршрутами сайта.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(loadTemplates())

	r.Use(gin.Recovery(), AccessLog(d.Log), d.Metrics.Middleware())
	if d.Config.BasicAuthEnabled() {
		d.Log.Info("basic auth enabled", slog.String("realm", d.Config.BarrelRealm))
		r.Use(BasicAuth(d.Config.BarrelUser, d.Config.BarrelPass, d.Config.BarrelRealm))
	}
	r.Use(LoadUser(d.Sessions, d.Identity, d.Log))

	SetupRoutes(r, d)

	r.NoRoute(func(c *gin.Context) {
		abortWithError(c, http.StatusNotFound, "not found")
	})
	return r
}

// SetupRoutes регистрирует маршруты на r.
func SetupRoutes(r *gin.Engine, d Deps) {
	scheduleHandler := newScheduleHandler(d.Schedule, d.Config.SiteDomain, d.Log)
	exportHandler := newExportHandler(d.Proposals, d.Sponsors, d.Log)
	accountHandler := newAccountHandler(d.Identity, d.Sessions, d.Config.SecureCookies, d.Log)

	r.GET("/", index(r))
	r.GET("/metrics", d.Metrics.Handler())

	schedule := r.Group("/schedule")
	schedule.GET("/json/", scheduleHandler.JSON)
	schedule.GET("/presentation/:id/", scheduleHandler.Presentation)
	schedule.GET("/guidebook/", RequireStaff(), scheduleHandler.Guidebook)

	proposals := r.Group("/proposals/export", RequireStaff())
	proposals.GET("/", exportHandler.ProposalsCSV)
	proposals.GET("/xlsx/", exportHandler.ProposalsXLSX)
	proposals.GET("/documents/", exportHandler.ProposalDocuments)

	r.GET("/sponsors/", exportHandler.Sponsors)
	r.GET("/sponsors/export/", RequireSuperuser(), exportHandler.SponsorsZip)

	account := r.Group("/account")
	account.POST("/login/", accountHandler.Login)
	account.POST("/logout/", accountHandler.Logout)

	if d.Config.MediaURL != "" && d.Config.MediaRoot != "" {
		r.Static(d.Config.MediaURL, d.Config.MediaRoot)
	}
	if d.Config.StaticURL != "" && d.Config.StaticRoot != "" {
		r.Static(d.Config.StaticURL, d.Config.StaticRoot)
	}
}

type routeInfo struct {
	Method string `json:"method"`
	Path   string `json:"path"`
}

// index перечисляет зарегистрированные маршруты.
func index(r *gin.Engine) gin.HandlerFunc {
	return func(c *gin.Context) {
		routes := r.Routes()
		out := make([]routeInfo, 0, len(routes))
		for _, ri := range routes {
			if ri.Method == http.MethodHead {
				continue
			}
			out = append(out, routeInfo{Method: ri.Method, Path: ri.Path})
		}
		sort.Slice(out, func(i, j int) bool {
			if out[i].Path != out[j].Path {
				return out[i].Path < out[j].Path
			}
			return out[i].Method < out[j].Method
		})
		c.JSON(http.StatusOK, gin.H{"routes": out})
	}
}
