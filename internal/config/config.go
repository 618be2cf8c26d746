package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centralizes everything read from the environment. A .env file is
// loaded by main before parsing, so local setups only need the file.
type Config struct {
	Port string `env:"PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"placetrack"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`

	JWTSecret string `env:"JWT_SECRET,required"`

	// Institutional email policy. Only addresses ending in @<domain> may
	// request OTPs or register.
	GCTEmailDomain string `env:"GCT_EMAIL_DOMAIN" envDefault:"gct.ac.in"`
	AdminEmail     string `env:"ADMIN_EMAIL"`
	BaseURL        string `env:"BASE_URL" envDefault:"http://localhost:8080"`
	FrontendURL    string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`

	OTPTTL time.Duration `env:"OTP_TTL" envDefault:"10m"`

	EmailFrom     string `env:"EMAIL_FROM"`
	EmailPassword string `env:"EMAIL_PASSWORD"`
	SMTPHost      string `env:"SMTP_HOST"`
	SMTPPort      string `env:"SMTP_PORT" envDefault:"587"`

	ATUsername string `env:"AT_USERNAME"`
	ATAPIKey   string `env:"AT_API_KEY"`

	RedisURL string `env:"REDIS_URL"`

	AWSRegion    string `env:"AWS_REGION"`
	AWSAccessKey string `env:"AWS_ACCESS_KEY_ID"`
	AWSSecretKey string `env:"AWS_SECRET_ACCESS_KEY"`
	AWSS3Bucket  string `env:"AWS_S3_BUCKET"`

	UploadDir     string `env:"UPLOAD_DIR" envDefault:"./uploads"`
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"10485760"`

	// Bootstrap admin account created on first boot when no admin exists.
	BootstrapAdminEmail    string `env:"BOOTSTRAP_ADMIN_EMAIL"`
	BootstrapAdminPassword string `env:"BOOTSTRAP_ADMIN_PASSWORD"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
