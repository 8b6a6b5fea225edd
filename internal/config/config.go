package config

import (
	"fmt"
	"github.com/go-sql-driver/mysql"
	"github.com/ilyakaznacheev/cleanenv"
	"log"
	"net"
	"os"
	"strconv"
	"time"
)

const defaultConfigPath = "./config/local.yaml"

type Config struct {
	HTTPServer `yaml:"http_server"`

	Env         string   `yaml:"env" env:"ENV" env-default:"prod"`
	DBUser      string   `yaml:"db_user" env:"DB_USER" env-required:"true"`
	DBPassword  string   `yaml:"db_password" env:"DB_PASSWORD"`
	DBHost      string   `yaml:"db_host" env:"DB_HOST" env-default:"localhost"`
	DBPort      int      `yaml:"db_port" env:"DB_PORT" env-default:"3306"`
	DBName      string   `yaml:"db_name" env:"DB_NAME" env-required:"true"`
	ParseTime   bool     `yaml:"parse_time" env-default:"true"`
	DBPool      DBPool   `yaml:"db_pool"`
	Traveler    Traveler `yaml:"traveler"`
	Analysis    Analysis `yaml:"analysis"`
	Cleanup     Cleanup  `yaml:"cleanup"`
	CORS        CORS     `yaml:"cors"`
	Log         Log      `yaml:"log"`
	FrontendDir string   `yaml:"frontend_dir" env-default:"./frontend-dist"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" env:"HTTP_ADDRESS" env-default:"localhost:5000"`
	Timeout         time.Duration `yaml:"timeout" env-default:"4s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
}

type DBPool struct {
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
}

// Traveler holds the classification policy. The completion spellings and the
// setup work center come from the shop's ERP conventions.
type Traveler struct {
	SetupWorkCenter    string        `yaml:"setup_work_center" env-default:"SM SETUPM"`
	CompletionStatuses []string      `yaml:"completion_statuses" env-default:"C,Complete,Closed"`
	TimeWindowDays     int           `yaml:"time_window_days" env-default:"365"`
	RequestTimeout     time.Duration `yaml:"request_timeout" env-default:"5s"`
}

type Analysis struct {
	APIKey    string        `yaml:"api_key" env:"ANTHROPIC_API_KEY"`
	Model     string        `yaml:"model" env-default:"claude-sonnet-4-20250514"`
	MaxTokens int64         `yaml:"max_tokens" env-default:"2000"`
	Timeout   time.Duration `yaml:"timeout" env-default:"60s"`
	BaseURL   string        `yaml:"base_url"`
}

type Cleanup struct {
	MaxJobs     int           `yaml:"max_jobs" env-default:"50"`
	Concurrency int           `yaml:"concurrency" env-default:"4"`
	Timeout     time.Duration `yaml:"timeout"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed_origins" env-default:"http://localhost:3000,http://localhost:5173"`
}

type Log struct {
	ErrorFile string `yaml:"error_file" env-default:"errors.log"`
}

// TimeWindow is the trailing window applied to time-log entries.
func (t Traveler) TimeWindow() time.Duration {
	return time.Duration(t.TimeWindowDays) * 24 * time.Hour
}

// CleanupTimeout bounds a whole sweep. Without an explicit cleanup.timeout it
// gives every batch of concurrent jobs one traveler request timeout.
func (c Config) CleanupTimeout() time.Duration {
	if c.Cleanup.Timeout > 0 {
		return c.Cleanup.Timeout
	}

	concurrency := max(c.Cleanup.Concurrency, 1)
	batches := (max(c.Cleanup.MaxJobs, 1) + concurrency - 1) / concurrency

	return time.Duration(batches) * c.Traveler.RequestTimeout
}

func Load(path string) (*Config, error) {
	const op = "config.Load"

	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("%s: cannot read config %s: %w", op, path, err)
	}

	if cfg.Traveler.TimeWindowDays <= 0 {
		return nil, fmt.Errorf("%s: traveler.time_window_days must be positive, got %d", op, cfg.Traveler.TimeWindowDays)
	}
	if len(cfg.Traveler.CompletionStatuses) == 0 {
		return nil, fmt.Errorf("%s: traveler.completion_statuses must not be empty", op)
	}

	return &cfg, nil
}

func MustConfig() *Config {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", configPath)
	}

	cfg, err := Load(configPath)
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}

	return cfg
}

// DSN builds the go-sql-driver/mysql data source name. DATE and DATETIME
// values are read in the process's local zone, the same zone the clock
// reports, so work dates keep their shop calendar day.
func (c Config) DSN() string {
	dsn := mysql.NewConfig()
	dsn.User = c.DBUser
	dsn.Passwd = c.DBPassword
	dsn.Net = "tcp"
	dsn.Addr = net.JoinHostPort(c.DBHost, strconv.Itoa(c.DBPort))
	dsn.DBName = c.DBName
	dsn.ParseTime = c.ParseTime
	dsn.Loc = time.Local

	return dsn.FormatDSN()
}
