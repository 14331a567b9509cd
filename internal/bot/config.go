package bot

import "os"

type Config struct {
	TelegramToken string
	ExternalURL   string
	Port          string
	DatabaseURL   string
	RedisURL      string
	TelegramMode  string
}

func LoadConfig() *Config {
	c := &Config{}
	c.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	c.ExternalURL = trimTrailingSlash(os.Getenv("RENDER_EXTERNAL_URL"))
	c.Port = getenvOr("PORT", "8443")
	c.DatabaseURL = os.Getenv("DATABASE_URL")
	c.RedisURL = os.Getenv("REDIS_URL")
	c.TelegramMode = getenvOr("TELEGRAM_MODE", "webhook")
	return c
}

// Addr is the listen address for the web server. The deployment contract
// is a literal 0.0.0.0 bind on PORT.
func (c *Config) Addr() string {
	return "0.0.0.0:" + c.Port
}

func trimTrailingSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

func getenvOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
