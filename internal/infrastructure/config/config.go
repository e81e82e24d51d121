package config

import (
	"errors"
	"os"
	"strings"
)

// Default event links, overridable per deployment.
const (
	defaultGoogleCalURL = "https://calendar.google.com/calendar/render?action=TEMPLATE" +
		"&text=G5+Games+Meetup:+Product+%26+Marketing+in+Gamedev" +
		"&dates=20260226T170000Z/20260226T200000Z" +
		"&location=CDT+Hub,+Kneza+Milosa+12,+Belgrade"
	defaultMapsURL = "https://maps.google.com/?q=CDT+Hub,+Kneza+Milosa+12,+Belgrade"
)

// Config is the full runtime configuration, read once from the environment
// at startup. godotenv has already merged a local .env file by then.
type Config struct {
	BotToken string

	// Google Sheets row store. Ignored when DatabaseURL is set.
	SpreadsheetID   string
	SheetName       string
	CredentialsFile string

	// Optional Postgres registrant store; takes precedence over Sheets.
	DatabaseURL string

	// Optional Redis, shared by dialog sessions and the campaign queue.
	// When empty the bot keeps sessions in memory and skips scheduling.
	RedisURL string

	CampaignsFile string
	HTTPAddr      string

	Event EventConfig
}

// EventConfig is the event-specific copy shown in bot messages.
type EventConfig struct {
	Title        string
	When         string
	Venue        string
	MapsURL      string
	GoogleCalURL string
	AppleCalURL  string
}

// Load reads configuration from the environment. BOT_TOKEN is always
// required; SPREADSHEET_ID only when no DB_URL is given.
func Load() (Config, error) {
	cfg := Config{
		BotToken:        getenv("BOT_TOKEN", ""),
		SpreadsheetID:   getenv("SPREADSHEET_ID", ""),
		SheetName:       getenv("SHEET_NAME", "Sheet1"),
		CredentialsFile: getenv("GOOGLE_CREDENTIALS_FILE", "service_account.json"),
		DatabaseURL:     getenv("DB_URL", ""),
		RedisURL:        getenv("REDIS_URL", ""),
		CampaignsFile:   getenv("CAMPAIGNS_FILE", "campaigns.yaml"),
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		Event: EventConfig{
			Title:        getenv("EVENT_TITLE", "Product & Marketing in Gamedev"),
			When:         getenv("EVENT_WHEN", "February 26, 18:00"),
			Venue:        getenv("EVENT_VENUE", "Belgrade, CDT Hub, Kneza Miloša 12, 6th floor"),
			MapsURL:      getenv("MAPS_URL", defaultMapsURL),
			GoogleCalURL: getenv("GOOGLE_CAL_URL", defaultGoogleCalURL),
			AppleCalURL:  getenv("APPLE_CAL_URL", ""),
		},
	}

	if cfg.BotToken == "" {
		return Config{}, errors.New("config: BOT_TOKEN is required")
	}
	if cfg.DatabaseURL == "" && cfg.SpreadsheetID == "" {
		return Config{}, errors.New("config: SPREADSHEET_ID is required when DB_URL is not set")
	}
	return cfg, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
