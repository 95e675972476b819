package config

import (
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every knob the server reads from the environment.
type Config struct {
	Port      string `env:"PORT" envDefault:"3000"`
	MongoURL  string `env:"MONGODB_URL" envDefault:"mongodb://localhost:27017"`
	MongoDB   string `env:"MONGODB_DATABASE" envDefault:"unilink"`
	JWTSecret string `env:"JWT_SECRET" envDefault:"fallback-secret-key"`
	ClientURL string `env:"CLIENT_URL" envDefault:"http://localhost:5173"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`

	SuperAdminName     string `env:"SUPER_ADMIN_NAME" envDefault:"Super Admin"`
	SuperAdminEmail    string `env:"SUPER_ADMIN_EMAIL"`
	SuperAdminPassword string `env:"SUPER_ADMIN_PASSWORD"`
}

// Load reads .env when present and parses the environment into a Config.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MailConfigured reports whether enough SMTP settings are present to send mail.
func (c *Config) MailConfigured() bool {
	return c.SMTPHost != "" && c.SMTPUsername != ""
}
