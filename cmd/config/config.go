package config

import (
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Server     ServerConfig
	Database   DatabaseConfig
	Redis      RedisConfig
	Lock       LockConfig
	RabbitMQ   RabbitMQConfig
	Allocation AllocationConfig
	Order      OrderConfig
	Tracing    TracingConfig
}

type ServerConfig struct {
	Port            string        `envconfig:"SERVER_PORT" default:"8080"`
	ReadTimeout     time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"10s"`
	WriteTimeout    time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"10s"`
	IdleTimeout     time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"15s"`
	InternalAPIKey  string        `envconfig:"INTERNAL_API_KEY"`
}

type DatabaseConfig struct {
	Driver          string        `envconfig:"DB_DRIVER" default:"mysql"`
	DSN             string        `envconfig:"DB_DSN"`
	Host            string        `envconfig:"DB_HOST" default:"localhost"`
	Port            int           `envconfig:"DB_PORT" default:"3306"`
	User            string        `envconfig:"DB_USER" default:"root"`
	Password        string        `envconfig:"DB_PASSWORD"`
	Name            string        `envconfig:"DB_NAME" default:"stock_allocation"`
	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"30m"`
	// LockWaitTimeout bounds how long a transaction waits on a row lock.
	LockWaitTimeout time.Duration `envconfig:"DB_LOCK_WAIT_TIMEOUT" default:"5s"`
	AutoMigrate     bool          `envconfig:"DB_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	Enabled  bool   `envconfig:"REDIS_ENABLED" default:"false"`
	Host     string `envconfig:"REDIS_HOST" default:"localhost"`
	Port     int    `envconfig:"REDIS_PORT" default:"6379"`
	Password string `envconfig:"REDIS_PASSWORD"`
	DB       int    `envconfig:"REDIS_DB" default:"0"`
}

type LockConfig struct {
	Expiry     time.Duration `envconfig:"ORDER_LOCK_EXPIRY" default:"10s"`
	Tries      int           `envconfig:"ORDER_LOCK_TRIES" default:"20"`
	RetryDelay time.Duration `envconfig:"ORDER_LOCK_RETRY_DELAY" default:"50ms"`
}

type RabbitMQConfig struct {
	Enabled          bool   `envconfig:"RABBITMQ_ENABLED" default:"false"`
	Host             string `envconfig:"RABBITMQ_HOST" default:"localhost"`
	Port             int    `envconfig:"RABBITMQ_PORT" default:"5672"`
	User             string `envconfig:"RABBITMQ_USER" default:"guest"`
	Password         string `envconfig:"RABBITMQ_PASSWORD" default:"guest"`
	AuditExchange    string `envconfig:"RABBITMQ_AUDIT_EXCHANGE" default:"allocation_audit"`
	OrderEventsQueue string `envconfig:"RABBITMQ_ORDER_EVENTS_QUEUE" default:"order_events"`
}

type AllocationConfig struct {
	// MaxConflictRetries is how many times one call re-runs lot selection after an
	// optimistic conflict before giving up with a retryable error.
	MaxConflictRetries int           `envconfig:"ALLOCATION_MAX_CONFLICT_RETRIES" default:"3"`
	AuditTimeout       time.Duration `envconfig:"ALLOCATION_AUDIT_TIMEOUT" default:"2s"`
}

type OrderConfig struct {
	MaxRetries           int           `envconfig:"ORDER_MAX_RETRIES" default:"4"`
	RetryInitialInterval time.Duration `envconfig:"ORDER_RETRY_INITIAL_INTERVAL" default:"50ms"`
	RetryMaxInterval     time.Duration `envconfig:"ORDER_RETRY_MAX_INTERVAL" default:"1s"`
}

type TracingConfig struct {
	Enabled        bool    `envconfig:"TRACING_ENABLED" default:"false"`
	ServiceName    string  `envconfig:"TRACING_SERVICE_NAME" default:"stock-allocation"`
	JaegerEndpoint string  `envconfig:"TRACING_JAEGER_ENDPOINT" default:"http://localhost:14268/api/traces"`
	SampleRatio    float64 `envconfig:"TRACING_SAMPLE_RATIO" default:"1"`
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// GetDSN returns DB_DSN when set, otherwise a MySQL DSN built from the parts.
func (c *Config) GetDSN() string {
	if c.Database.DSN != "" {
		return c.Database.DSN
	}
	mc := mysql.NewConfig()
	mc.User = c.Database.User
	mc.Passwd = c.Database.Password
	mc.Net = "tcp"
	mc.Addr = fmt.Sprintf("%s:%d", c.Database.Host, c.Database.Port)
	mc.DBName = c.Database.Name
	mc.ParseTime = true
	// report matched rather than changed rows so compare-and-set updates see their row
	mc.ClientFoundRows = true
	mc.Params = map[string]string{
		"innodb_lock_wait_timeout": fmt.Sprintf("%d", int(c.Database.LockWaitTimeout.Seconds())),
	}
	return mc.FormatDSN()
}

func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/", c.RabbitMQ.User, c.RabbitMQ.Password, c.RabbitMQ.Host, c.RabbitMQ.Port)
}
