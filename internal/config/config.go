// Package config provides configuration management for the notifier.
//
// Configuration is loaded from:
// 1. config.yaml file (optional)
// 2. Environment variables (standard names like DATABASE_URL, SCHEDULER_TIMEZONE)
// 3. Default values
//
// Import Path: fittrack.io/notifier/internal/config
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"
)

// Config is the root configuration structure.
type Config struct {
	Server       ServerConfig       `mapstructure:"server"`
	Database     DatabaseConfig     `mapstructure:"database"`
	Log          LogConfig          `mapstructure:"log"`
	River        RiverConfig        `mapstructure:"river"`
	Worker       WorkerConfig       `mapstructure:"worker"`
	Scheduler    SchedulerConfig    `mapstructure:"scheduler"`
	Notification NotificationConfig `mapstructure:"notification"`
}

// ServerConfig contains ops HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// DatabaseConfig contains PostgreSQL connection settings.
// One pgxpool is shared by the repository and River.
type DatabaseConfig struct {
	URL string `mapstructure:"url"`

	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Database string `mapstructure:"database"`
	SSLMode  string `mapstructure:"sslmode"`

	MaxConns        int32         `mapstructure:"max_conns"`
	MinConns        int32         `mapstructure:"min_conns"`
	MaxConnLifetime time.Duration `mapstructure:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `mapstructure:"max_conn_idle_time"`

	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// DSN returns the PostgreSQL connection string.
// Priority: DATABASE_URL > constructed from individual fields.
func (c DatabaseConfig) DSN() string {
	if c.URL != "" {
		return c.URL
	}
	sslmode := c.SSLMode
	if sslmode == "" {
		sslmode = "disable"
	}
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Database, sslmode,
	)
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json or console
}

// RiverConfig contains River Queue settings.
type RiverConfig struct {
	MaxWorkers                  int           `mapstructure:"max_workers"`
	CompletedJobRetentionPeriod time.Duration `mapstructure:"completed_job_retention_period"`
}

// WorkerConfig contains worker pool settings.
type WorkerConfig struct {
	GeneralPoolSize int `mapstructure:"general_pool_size"`
	// SweepPoolSize bounds how many users a sweep evaluates concurrently.
	SweepPoolSize int `mapstructure:"sweep_pool_size"`
}

// SchedulerConfig holds the daily trigger times and evaluator tuning.
// Cron expressions are five-field and interpreted in Timezone.
type SchedulerConfig struct {
	Enabled               bool          `mapstructure:"enabled"`
	Timezone              string        `mapstructure:"timezone"`
	WorkoutReminderCron   string        `mapstructure:"workout_reminder_cron"`
	NutritionReminderCron string        `mapstructure:"nutrition_reminder_cron"`
	GoalAchievementCron   string        `mapstructure:"goal_achievement_cron"`
	RecentWorkoutWindow   time.Duration `mapstructure:"recent_workout_window"`
	UserTimeout           time.Duration `mapstructure:"user_timeout"`
	// WriteTimeout bounds notification writes after evaluation. It runs
	// outside UserTimeout so state already changed is still notified.
	WriteTimeout          time.Duration `mapstructure:"write_timeout"`
}

// Location loads the reference timezone. Validate guarantees it loads.
func (c SchedulerConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NotificationConfig holds inbox retention settings.
type NotificationConfig struct {
	Retention   time.Duration `mapstructure:"retention"`
	CleanupCron string        `mapstructure:"cleanup_cron"`
}

// Load reads configuration from file and environment variables.
// No env prefix: SCHEDULER_TIMEZONE maps to scheduler.timezone.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/fittrack-notifier")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &cfg, nil
}

// Validate checks for configuration errors that would break the scheduler.
func (c *Config) Validate() error {
	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("scheduler.timezone %q: %w", c.Scheduler.Timezone, err)
	}

	crons := []struct {
		key  string
		expr string
	}{
		{"scheduler.workout_reminder_cron", c.Scheduler.WorkoutReminderCron},
		{"scheduler.nutrition_reminder_cron", c.Scheduler.NutritionReminderCron},
		{"scheduler.goal_achievement_cron", c.Scheduler.GoalAchievementCron},
		{"notification.cleanup_cron", c.Notification.CleanupCron},
	}
	for _, ce := range crons {
		if _, err := cron.ParseStandard(ce.expr); err != nil {
			return fmt.Errorf("%s %q: %w", ce.key, ce.expr, err)
		}
	}

	if c.Scheduler.RecentWorkoutWindow <= 0 {
		return fmt.Errorf("scheduler.recent_workout_window must be positive")
	}
	if c.Scheduler.UserTimeout <= 0 {
		return fmt.Errorf("scheduler.user_timeout must be positive")
	}
	if c.Scheduler.WriteTimeout <= 0 {
		return fmt.Errorf("scheduler.write_timeout must be positive")
	}
	if c.Worker.GeneralPoolSize <= 0 || c.Worker.SweepPoolSize <= 0 {
		return fmt.Errorf("worker pool sizes must be positive")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	// Server
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.shutdown_timeout", "30s")

	// Database
	v.SetDefault("database.url", "")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "fittrack")
	v.SetDefault("database.password", "")
	v.SetDefault("database.database", "fittrack")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.max_conns", 20)
	v.SetDefault("database.min_conns", 2)
	v.SetDefault("database.max_conn_lifetime", "1h")
	v.SetDefault("database.max_conn_idle_time", "10m")
	v.SetDefault("database.auto_migrate", false)

	// Log
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// River
	v.SetDefault("river.max_workers", 5)
	v.SetDefault("river.completed_job_retention_period", "24h")

	// Worker pools
	v.SetDefault("worker.general_pool_size", 16)
	v.SetDefault("worker.sweep_pool_size", 4)

	// Scheduler
	v.SetDefault("scheduler.enabled", true)
	v.SetDefault("scheduler.timezone", "UTC")
	v.SetDefault("scheduler.workout_reminder_cron", "0 8 * * *")
	v.SetDefault("scheduler.nutrition_reminder_cron", "0 11 * * *")
	v.SetDefault("scheduler.goal_achievement_cron", "0 18 * * *")
	v.SetDefault("scheduler.recent_workout_window", "168h")
	v.SetDefault("scheduler.user_timeout", "30s")
	v.SetDefault("scheduler.write_timeout", "10s")

	// Notification inbox
	v.SetDefault("notification.retention", "2160h")
	v.SetDefault("notification.cleanup_cron", "30 3 * * *")
}
