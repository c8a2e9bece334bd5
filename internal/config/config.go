package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

var validate = validator.New()

// Client is the uploader's environment.
type Client struct {
	ServerURL     string        `env:"UPLOAD_SERVER_URL,default=http://localhost:8080" validate:"omitempty,url"`
	Discovery     bool          `env:"UPLOAD_DISCOVERY,default=false"`
	DiscoveryAddr string        `env:"UPLOAD_DISCOVERY_ADDR,default=255.255.255.255:9999" validate:"required,hostname_port"`
	Timeout       time.Duration `env:"UPLOAD_TIMEOUT,default=0s"`
	InsecureTLS   bool          `env:"UPLOAD_INSECURE_TLS,default=false"`
	Progress      bool          `env:"UPLOAD_PROGRESS,default=true"`
	Colours       bool          `env:"UPLOAD_COLOURS,default=true"`
	ListingLimit  int           `env:"UPLOAD_LISTING_LIMIT,default=10" validate:"gte=0"`
	LogLevel      string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
}

// Server is the receiver's environment.
type Server struct {
	Host            string        `env:"HOST,default=0.0.0.0"`
	Port            int           `env:"PORT,default=8080" validate:"gt=0,lte=65535"`
	PublicURL       string        `env:"PUBLIC_URL" validate:"omitempty,url"`
	InboxDir        string        `env:"INBOX_DIR,default=storage/inbox" validate:"required"`
	MaxUploadSize   int64         `env:"MAX_UPLOAD_SIZE,default=33554432" validate:"gt=0"`
	ImagesOnly      bool          `env:"IMAGES_ONLY,default=true"`
	EnableTLS       bool          `env:"ENABLE_TLS,default=false"`
	EnableDiscovery bool          `env:"ENABLE_DISCOVERY,default=false"`
	DiscoveryAddr   string        `env:"DISCOVERY_ADDR,default=0.0.0.0:9999" validate:"required,hostname_port"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT,default=30s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT,default=30s"`
	LogLevel        string        `env:"LOG_LEVEL,default=INFO" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
}

// Load reads the optional .env files, then the environment, into dst and
// validates the result. Variables already set win over .env values.
func Load(dst any, dotenv ...string) error {
	if err := godotenv.Load(dotenv...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load .env: %w", err)
	}
	if _, err := env.UnmarshalFromEnviron(dst); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := validate.Struct(dst); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Address is the listen address of the receiver.
func (s Server) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// BaseURL is the URL advertised to uploaders.
func (s Server) BaseURL() string {
	if s.PublicURL != "" {
		return s.PublicURL
	}
	scheme := "http"
	if s.EnableTLS {
		scheme = "https"
	}
	return fmt.Sprintf("%s://:%d", scheme, s.Port)
}
