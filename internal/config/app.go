package config

import (
	"fmt"
	"strings"
	"time"
)

// AppConfig — настройки HTTP-процесса сайта.
type AppConfig struct {
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8000"`
	// Пустое значение отключает gRPC health-эндпоинт.
	GRPCAddr string `env:"GRPC_ADDR" envDefault:":50051"`

	SiteDomain string `env:"SITE_DOMAIN" envDefault:"2015.djangocon.us"`

	// Сайт целиком закрывается basic-auth, только если заданы оба значения.
	BarrelUser  string `env:"BARREL_USER"`
	BarrelPass  string `env:"BARREL_PASS"`
	BarrelRealm string `env:"BARREL_REALM" envDefault:"Password Protected"`

	MediaURL   string `env:"MEDIA_URL" envDefault:"/site_media/media/"`
	MediaRoot  string `env:"MEDIA_ROOT" envDefault:"site_media/media"`
	StaticURL  string `env:"STATIC_URL" envDefault:"/site_media/static/"`
	StaticRoot string `env:"STATIC_ROOT" envDefault:"site_media/static"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"336h"`

	// Secure-флаг cookie сессии; отключается для локальной разработки по http.
	SecureCookies bool `env:"SECURE_COOKIES" envDefault:"true"`

	GinMode string `env:"GIN_MODE" envDefault:"release"`
}

// LoadSiteConfig читает настройки без проверки сессий; нужен консольным командам.
func LoadSiteConfig() (*AppConfig, error) {
	cfg := &AppConfig{}
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadAppConfig читает настройки HTTP-процесса и требует секрет сессий.
func LoadAppConfig() (*AppConfig, error) {
	cfg, err := LoadSiteConfig()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.SessionSecret) == "" {
		return nil, fmt.Errorf("invalid app config: SESSION_SECRET must not be empty")
	}
	if cfg.SessionTTL <= 0 {
		return nil, fmt.Errorf("invalid app config: SESSION_TTL must be positive")
	}
	return cfg, nil
}

// BasicAuthEnabled сообщает, нужно ли оборачивать сайт в basic-auth.
func (c *AppConfig) BasicAuthEnabled() bool {
	return c.BarrelUser != "" && c.BarrelPass != ""
}
