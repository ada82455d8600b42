// Package config reads the service configuration from the process
// environment. Every key is prefixed CLASSROOM_ and optional; defaults keep
// a development instance runnable with no environment at all.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/altayburakhan/ClassroomDB/internal/timeslot"
)

// Config captures the environment driven settings of the reservation
// service.
type Config struct {
	HTTPPort   int
	SQLiteDSN  string
	SessionTTL time.Duration

	BusinessHours      timeslot.BusinessHours
	MaxReservationTime time.Duration

	HolidayAPIBaseURL string
	HolidayCountry    string
	HolidayTimeout    time.Duration

	FeedbackRequiresStay bool

	// AdminEmail and AdminPassword seed the first administrator account when
	// the user table is empty. Seeding is skipped while AdminPassword is
	// unset.
	AdminEmail    string
	AdminName     string
	AdminPassword string
}

// Load parses configuration from the current process environment, applying
// defaults for unset keys and validating the rest.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort:           8080,
		SQLiteDSN:          "file:classroom.db",
		SessionTTL:         24 * time.Hour,
		BusinessHours:      timeslot.DefaultBusinessHours(),
		MaxReservationTime: 8 * time.Hour,
		HolidayAPIBaseURL:  "https://date.nager.at/api/v3/PublicHolidays",
		HolidayCountry:     "TR",
		HolidayTimeout:     5 * time.Second,
		AdminEmail:         "admin@classroom.local",
		AdminName:          "Administrator",
	}

	var err error
	if cfg.HTTPPort, err = intEnv("CLASSROOM_HTTP_PORT", cfg.HTTPPort); err != nil {
		return Config{}, err
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return Config{}, fmt.Errorf("CLASSROOM_HTTP_PORT: %d is out of range", cfg.HTTPPort)
	}
	if v := strings.TrimSpace(os.Getenv("CLASSROOM_SQLITE_DSN")); v != "" {
		cfg.SQLiteDSN = v
	}
	if cfg.SessionTTL, err = durationEnv("CLASSROOM_SESSION_TTL", cfg.SessionTTL); err != nil {
		return Config{}, err
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, fmt.Errorf("CLASSROOM_SESSION_TTL: must be positive")
	}

	if cfg.BusinessHours.Open, err = timeOfDayEnv("CLASSROOM_BUSINESS_OPEN", cfg.BusinessHours.Open); err != nil {
		return Config{}, err
	}
	if cfg.BusinessHours.Close, err = timeOfDayEnv("CLASSROOM_BUSINESS_CLOSE", cfg.BusinessHours.Close); err != nil {
		return Config{}, err
	}
	if !cfg.BusinessHours.Valid() {
		return Config{}, fmt.Errorf("business hours: open %s must precede close %s",
			cfg.BusinessHours.Open, cfg.BusinessHours.Close)
	}

	maxHours, err := intEnv("CLASSROOM_MAX_RESERVATION_HOURS", int(cfg.MaxReservationTime/time.Hour))
	if err != nil {
		return Config{}, err
	}
	if maxHours < 1 {
		return Config{}, fmt.Errorf("CLASSROOM_MAX_RESERVATION_HOURS: must be at least 1")
	}
	cfg.MaxReservationTime = time.Duration(maxHours) * time.Hour

	if v := strings.TrimSpace(os.Getenv("CLASSROOM_HOLIDAY_API_URL")); v != "" {
		cfg.HolidayAPIBaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv("CLASSROOM_HOLIDAY_COUNTRY")); v != "" {
		cfg.HolidayCountry = v
	}
	if cfg.HolidayTimeout, err = durationEnv("CLASSROOM_HOLIDAY_TIMEOUT", cfg.HolidayTimeout); err != nil {
		return Config{}, err
	}

	if cfg.FeedbackRequiresStay, err = boolEnv("CLASSROOM_FEEDBACK_REQUIRE_STAY", false); err != nil {
		return Config{}, err
	}

	if v := strings.TrimSpace(os.Getenv("CLASSROOM_ADMIN_EMAIL")); v != "" {
		cfg.AdminEmail = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv("CLASSROOM_ADMIN_NAME")); v != "" {
		cfg.AdminName = v
	}
	cfg.AdminPassword = os.Getenv("CLASSROOM_ADMIN_PASSWORD")
	if cfg.AdminPassword != "" && len(cfg.AdminPassword) < 8 {
		return Config{}, fmt.Errorf("CLASSROOM_ADMIN_PASSWORD: must be at least 8 characters")
	}

	return cfg, nil
}

func intEnv(key string, fallback int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not an integer", key, v)
	}
	return parsed, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	parsed, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not a duration", key, v)
	}
	return parsed, nil
}

func boolEnv(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s: %q is not a boolean", key, v)
	}
	return parsed, nil
}

func timeOfDayEnv(key string, fallback timeslot.Minutes) (timeslot.Minutes, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	parsed, err := timeslot.ParseTimeOfDay(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %v", key, err)
	}
	return parsed, nil
}
