package config // package config loads application configuration from environment variables

import (
    "log" // log is used to report configuration errors and halt execution
    "os"  // os provides access to environment variables
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The hostel service needs only its listen port,
// the MySQL connection parameters and a flag controlling whether sample
// data is seeded into an empty store at startup.
type Config struct {
    Env      string // application environment (e.g. "dev", "prod")
    Port     string // HTTP port to listen on
    DBUser   string // database username
    DBPass   string // database password (optional)
    DBHost   string // database host address
    DBPort   string // database port number
    DBName   string // database name
    SeedData bool   // seed sample students/rooms/managers when the store is empty
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:      must("APP_ENV"),                      // environment (dev/test/prod)
        Port:     must("APP_PORT"),                     // port to bind the HTTP server
        DBUser:   must("DB_USER"),                      // database user
        DBPass:   os.Getenv("DB_PASS"),                 // database password (empty allowed)
        DBHost:   must("DB_HOST"),                      // database host
        DBPort:   must("DB_PORT"),                      // database port
        DBName:   must("DB_NAME"),                      // database name
        SeedData: getenv("DB_SEED", "true") == "true",  // seed sample data on first run
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}
