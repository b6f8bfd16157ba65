// Package config loads service settings from the environment and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/janisto/travel-profiles/internal/platform/auth"
	"github.com/janisto/travel-profiles/internal/platform/database"
	"github.com/janisto/travel-profiles/internal/platform/firebase"
	"github.com/janisto/travel-profiles/internal/platform/mail"
	"github.com/janisto/travel-profiles/internal/platform/storage"
)

// Config is the complete service configuration. It is built once at startup and passed
// by value into constructors.
type Config struct {
	Port           string   `env:"PORT"            envDefault:"8080"`
	LogLevel       string   `env:"LOG_LEVEL"       envDefault:"info"`
	MaxBodyBytes   int64    `env:"MAX_BODY_BYTES"  envDefault:"1048576"`
	BcryptCost     int      `env:"BCRYPT_COST"     envDefault:"10"`
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:","`
	// GCPProject enables Cloud Trace correlation in logs.
	GCPProject string `env:"GOOGLE_CLOUD_PROJECT"`

	Postgres database.Config `envPrefix:"POSTGRES_"`
	JWT      auth.Config     `envPrefix:"JWT_"`
	Images   storage.Config  `envPrefix:"IMAGE_"`
	Mail     mail.Config     `envPrefix:"MAIL_"`
	Firebase firebase.Config `envPrefix:"FIREBASE_"`
}

// Load reads the files (default ".env") into the process environment without
// overriding variables that are already set, then parses and validates Config.
// Missing files are ignored.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints that env tags cannot express.
func (c Config) Validate() error {
	var errs []error
	if c.MaxBodyBytes <= 0 {
		errs = append(errs, errors.New("MAX_BODY_BYTES must be positive"))
	}
	if err := c.JWT.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Images.Validate(); err != nil {
		errs = append(errs, err)
	}
	if err := c.Mail.Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Mail.Backend == mail.BackendFirestore && c.FirebaseProject() == "" {
		errs = append(errs, errors.New("FIREBASE_PROJECT_ID or GOOGLE_CLOUD_PROJECT is required for the firestore mail backend"))
	}
	return errors.Join(errs...)
}

// FirebaseProject returns the Firebase project, falling back to the GCP project.
func (c Config) FirebaseProject() string {
	if c.Firebase.ProjectID != "" {
		return c.Firebase.ProjectID
	}
	return c.GCPProject
}
