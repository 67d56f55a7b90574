package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Link struct {
	Name string `yaml:"name" json:"name"`
	URL  string `yaml:"url"  json:"url"`
}

type Config struct {
	Listen    string    `yaml:"listen"`
	Admin     Admin     `yaml:"admin"`
	Logger    Logger    `yaml:"logger"`
	Storage   Storage   `yaml:"storage"`
	Auth      Auth      `yaml:"auth"`
	CORS      CORS      `yaml:"cors"`
	Limits    Limits    `yaml:"limits"`
	Cache     Cache     `yaml:"cache"`
	Providers Providers `yaml:"providers"`
	Links     []Link    `yaml:"links"`
}

type Logger struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

type Storage struct {
	Database   string `yaml:"database"`
	UserAvatar string `yaml:"user_avatar"`
}

type Auth struct {
	JWT   JWT   `yaml:"jwt"`
	OIDC  OIDC  `yaml:"oidc"`
	Local Local `yaml:"local"`
}

// Local defines configuration for username/password authentication.
type Local struct {
	Enabled bool `yaml:"enabled"`
}

type JWT struct {
	Secret      string `yaml:"secret"`
	ExpireHours int    `yaml:"expire_hours"`
}

// OIDC configures the external identity provider used for SSO login.
type OIDC struct {
	Enabled             bool   `yaml:"enabled"`
	Issuer              string `yaml:"issuer"`
	ClientID            string `yaml:"client_id"`
	ClientSecret        string `yaml:"client_secret"`
	RedirectURI         string `yaml:"redirect_uri"`
	FrontendCallbackURL string `yaml:"frontend_callback_url"`
}

type Admin struct {
	Enabled bool   `yaml:"enabled"`
	Listen  string `yaml:"listen"`
}

// Limits bounds how often users may submit.
type Limits struct {
	SubmissionIntervalSeconds int `yaml:"submission_interval_seconds"`
	RecyclingWindowHours      int `yaml:"recycling_window_hours"`
}

type Cache struct {
	LeaderboardTTLSeconds int `yaml:"leaderboard_ttl_seconds"`
}

type Providers struct {
	RouteBaseURL   string `yaml:"route_base_url"`
	VehicleBaseURL string `yaml:"vehicle_base_url"`
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	err = yaml.Unmarshal(data, &cfg)
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Listen == "" {
		c.Listen = ":8080"
	}
	if c.Auth.JWT.ExpireHours == 0 {
		c.Auth.JWT.ExpireHours = 72
	}
	if c.Limits.SubmissionIntervalSeconds == 0 {
		c.Limits.SubmissionIntervalSeconds = 10
	}
	if c.Limits.RecyclingWindowHours == 0 {
		c.Limits.RecyclingWindowHours = 24
	}
	if c.Cache.LeaderboardTTLSeconds == 0 {
		c.Cache.LeaderboardTTLSeconds = 60
	}
}
