package config

import (
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port     string
	Env      string
	LogLevel string

	DatabaseURL string

	// WhatsApp Cloud API
	WhatsAppToken       string
	WhatsAppPhoneID     string
	WhatsAppBaseURL     string
	WhatsAppVerifyToken string
	WhatsAppAppSecret   string

	// Google Calendar
	GoogleCalendarID      string
	GoogleCredentialsFile string
	CalendarTimezone      string

	// Clinic identity used in conversation prompts
	ClinicName   string
	SupportPhone string
	SupportHours string

	// Booking window and roster
	DaysToShow    int
	ProvidersJSON string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Port:     getEnv("PORT", "8080"),
		Env:      getEnv("ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DatabaseURL: getEnv("DATABASE_URL", ""),

		WhatsAppToken:       getEnv("WHATSAPP_TOKEN", ""),
		WhatsAppPhoneID:     getEnv("WHATSAPP_PHONE_ID", ""),
		WhatsAppBaseURL:     getEnv("WHATSAPP_BASE_URL", ""),
		WhatsAppVerifyToken: getEnv("WHATSAPP_VERIFY_TOKEN", "cuure_verify"),
		WhatsAppAppSecret:   getEnv("WHATSAPP_APP_SECRET", ""),

		GoogleCalendarID:      getEnv("GOOGLE_CALENDAR_ID", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_SERVICE_ACCOUNT_FILE", "service-account.json"),
		CalendarTimezone:      getEnv("CALENDAR_TIMEZONE", "Asia/Kolkata"),

		ClinicName:   getEnv("CLINIC_NAME", "Cuure.health"),
		SupportPhone: getEnv("SUPPORT_PHONE", "08213156014"),
		SupportHours: getEnv("SUPPORT_HOURS", "9:00 AM – 8:00 PM"),

		DaysToShow:    getEnvAsInt("DAYS_TO_SHOW", 7),
		ProvidersJSON: getEnv("PROVIDERS_JSON", ""),
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer or returns a default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}
