package app

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/djangocon/conference-site/internal/config"
	"github.com/djangocon/conference-site/internal/db"
	"github.com/djangocon/conference-site/internal/model"
	"github.com/djangocon/conference-site/internal/repository"
	"github.com/djangocon/conference-site/internal/service"
)

// Services — прикладные сервисы сайта.
type Services struct {
	Schedule  *service.ScheduleService
	Proposals *service.ProposalExportService
	Sponsors  *service.SponsorService
	Identity  *service.IdentityService
}

// NewServices строит репозитории на GORM и сервисы поверх них.
func NewServices(gormDB *gorm.DB, cfg *config.AppConfig) *Services {
	slotRepo := repository.NewGormSlotRepository(gormDB)
	presentationRepo := repository.NewGormPresentationRepository(gormDB)
	proposalRepo := repository.NewGormProposalRepository(gormDB)
	sponsorRepo := repository.NewGormSponsorRepository(gormDB)
	userRepo := repository.NewGormUserRepository(gormDB)

	return &Services{
		Schedule:  service.NewScheduleService(slotRepo, presentationRepo, cfg.SiteDomain),
		Proposals: service.NewProposalExportService(proposalRepo, cfg.MediaRoot),
		Sponsors:  service.NewSponsorService(sponsorRepo, cfg.MediaRoot, cfg.MediaURL),
		Identity:  service.NewIdentityService(userRepo),
	}
}

// migrateDB подменяется в тестах.
var migrateDB = model.AutoMigrate

// OpenDB подключается к БД из окружения и, если migrate, прогоняет миграции.
// closeDB закрывает пул соединений.
func OpenDB(log *slog.Logger, migrate bool) (gormDB *gorm.DB, closeDB func() error, err error) {
	dbCfg, err := config.LoadDBConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load db config: %w", err)
	}

	gormDB, err = db.NewGormDB(dbCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("init db: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("sql DB: %w", err)
	}
	log.Info("database connected", slog.String("driver", dbCfg.Driver))

	if migrate {
		if err := migrateDB(gormDB); err != nil {
			_ = sqlDB.Close()
			return nil, nil, fmt.Errorf("auto migrate: %w", err)
		}
		log.Info("database migrations completed")
	}
	return gormDB, sqlDB.Close, nil
}
