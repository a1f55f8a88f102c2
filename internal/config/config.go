package config

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Log      LogConfig
	Report   ReportConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
	Schema   string
	SSLMode  string
}

type LogConfig struct {
	// Output is a zap sink path ("stdout", "stderr" or a file path)
	Output string
}

type ReportConfig struct {
	TrendingWindowDays int
	TrendingLimit      int
}

// DSN returns a postgres connection URL understood by the pgx stdlib driver
func (c DatabaseConfig) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   c.Host + ":" + c.Port,
		Path:   "/" + c.Database,
	}

	q := u.Query()
	q.Set("sslmode", c.SSLMode)
	if c.Schema != "" {
		q.Set("search_path", c.Schema)
	}
	u.RawQuery = q.Encode()

	return u.String()
}

// IsProduction reports whether the service runs with production settings
func (c ServerConfig) IsProduction() bool {
	return c.Env == "production"
}

func Load() *Config {
	return LoadFrom(".")
}

// LoadFrom reads .env from dir (if present) and the process environment.
func LoadFrom(dir string) *Config {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(dir)
	v.AutomaticEnv()

	// Export .env values so plain os.Getenv readers agree with viper.
	if err := godotenv.Load(dir + "/.env"); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	// Set defaults
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("SERVER_ENV", "development")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_DATABASE", "supermarket")
	v.SetDefault("DB_SCHEMA", "public")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("LOG_OUTPUT", "stdout")
	v.SetDefault("TRENDING_WINDOW_DAYS", 7)
	v.SetDefault("TRENDING_LIMIT", 5)

	if err := v.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("SERVER_PORT"),
			Env:            v.GetString("SERVER_ENV"),
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Database: v.GetString("DB_DATABASE"),
			Schema:   v.GetString("DB_SCHEMA"),
			SSLMode:  v.GetString("DB_SSLMODE"),
		},
		Log: LogConfig{
			Output: v.GetString("LOG_OUTPUT"),
		},
		Report: ReportConfig{
			TrendingWindowDays: v.GetInt("TRENDING_WINDOW_DAYS"),
			TrendingLimit:      v.GetInt("TRENDING_LIMIT"),
		},
	}

	if cfg.Report.TrendingWindowDays <= 0 {
		log.Printf("Warning: invalid TRENDING_WINDOW_DAYS %d, using 7", cfg.Report.TrendingWindowDays)
		cfg.Report.TrendingWindowDays = 7
	}
	if cfg.Report.TrendingLimit <= 0 {
		log.Printf("Warning: invalid TRENDING_LIMIT %d, using 5", cfg.Report.TrendingLimit)
		cfg.Report.TrendingLimit = 5
	}

	return cfg
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func (c *Config) String() string {
	return fmt.Sprintf("env=%s db=%s@%s:%s/%s", c.Server.Env, c.Database.User, c.Database.Host, c.Database.Port, c.Database.Database)
}
