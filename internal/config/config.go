package config // package config loads application configuration from environment variables

import (
	"fmt"
	"log"
	"os"
	"strconv"
)

// DayTime is a time-of-day cutoff expressed as hour and minute. The
// operating-hours checks compare reservation times against a pair of
// these values.
type DayTime struct {
	Hour   int
	Minute int
}

// Minutes returns the cutoff as minutes after midnight, which makes
// interval comparisons a single integer compare.
func (d DayTime) Minutes() int { return d.Hour*60 + d.Minute }

// String renders the cutoff back to HH:MM for error messages.
func (d DayTime) String() string { return fmt.Sprintf("%02d:%02d", d.Hour, d.Minute) }

// ParseDayTime parses an HH:MM string into a DayTime. The hour must be
// 0-23 and the minute 0-59.
func ParseDayTime(s string) (DayTime, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return DayTime{}, fmt.Errorf("invalid time %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return DayTime{}, fmt.Errorf("time %q out of range", s)
	}
	return DayTime{Hour: h, Minute: m}, nil
}

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. Business rules that varied across
// deployments (operating hours, whether finished reservations show up in
// the date listing) are configuration rather than constants.
type Config struct {
	Env                 string  // application environment (e.g. "dev", "prod")
	Port                string  // HTTP port to listen on
	DBUser              string  // database username
	DBPass              string  // database password (optional)
	DBHost              string  // database host address
	DBPort              string  // database port number
	DBName              string  // database name
	JWTSecret           string  // secret used to sign staff JWTs
	AccessTTLMin        int     // access token time-to-live in minutes
	RefreshTTLDays      int     // refresh token time-to-live in days
	BcryptCost          int     // bcrypt cost for password hashing
	OpenTime            DayTime // earliest bookable time of day
	CloseTime           DayTime // latest bookable time of day
	ListIncludeFinished bool    // include finished reservations in the date listing
	AuthRequired        bool    // require a staff token on mutating routes
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. Business-rule
// variables have defaults so a bare environment still boots.
func Load() Config {
	return Config{
		Env:                 must("APP_ENV"),
		Port:                must("APP_PORT"),
		DBUser:              must("DB_USER"),
		DBPass:              os.Getenv("DB_PASS"), // empty allowed
		DBHost:              must("DB_HOST"),
		DBPort:              must("DB_PORT"),
		DBName:              must("DB_NAME"),
		JWTSecret:           must("JWT_SECRET"),
		AccessTTLMin:        mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays:      mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:          mustInt("BCRYPT_COST"),
		OpenTime:            mustDayTime("OPEN_TIME", "10:30"),
		CloseTime:           mustDayTime("CLOSE_TIME", "21:30"),
		ListIncludeFinished: getenv("LIST_INCLUDE_FINISHED", "false") == "true",
		AuthRequired:        getenv("AUTH_REQUIRED", "false") == "true",
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// mustDayTime reads an HH:MM cutoff, falling back to def when unset.
// A value that is present but unparseable is a fatal configuration error.
func mustDayTime(key, def string) DayTime {
	s := getenv(key, def)
	d, err := ParseDayTime(s)
	if err != nil {
		log.Fatalf("invalid time for %s: %q", key, s)
	}
	return d
}

// getenv returns the value of key or def when unset/empty.
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
