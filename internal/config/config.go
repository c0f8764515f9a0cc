package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/wb-go/wbf/retry"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Upload   UploadConfig   `yaml:"upload"`
	Export   ExportConfig   `yaml:"export"`
	Worker   WorkerConfig   `yaml:"worker"`
	Download DownloadConfig `yaml:"download"`
	MinIO    MinIOConfig    `yaml:"minio"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Retry    RetryConfig    `yaml:"retry"`
	Events   EventsConfig   `yaml:"events"`
}

type ServerConfig struct {
	Addr            string        `yaml:"addr" env:"SERVER_ADDR" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"SERVER_READ_TIMEOUT" env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"SERVER_WRITE_TIMEOUT" env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT" env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"SERVER_ALLOWED_ORIGINS" env-separator:"," env-default:"http://localhost:8080"`
}

type UploadConfig struct {
	MaxSize   int64 `yaml:"max_size" env:"UPLOAD_MAX_SIZE" env-default:"33554432"`
	MaxFiles  int   `yaml:"max_files" env:"UPLOAD_MAX_FILES" env-default:"64"`
	MaxPixels int64 `yaml:"max_pixels" env:"UPLOAD_MAX_PIXELS" env-default:"40000000"`
}

type ExportConfig struct {
	CardRadius    float64 `yaml:"card_radius" env:"EXPORT_CARD_RADIUS" env-default:"30"`
	CollageRadius float64 `yaml:"collage_radius" env:"EXPORT_COLLAGE_RADIUS" env-default:"15"`
}

type WorkerConfig struct {
	Concurrency int `yaml:"concurrency" env:"WORKER_CONCURRENCY" env-default:"4"`
}

type DownloadTarget string

const (
	TargetNone  DownloadTarget = "none"
	TargetDisk  DownloadTarget = "disk"
	TargetMinIO DownloadTarget = "minio"
)

type DownloadConfig struct {
	Target DownloadTarget `yaml:"target" env:"DOWNLOAD_TARGET" env-default:"disk"`
	Dir    string         `yaml:"dir" env:"DOWNLOAD_DIR" env-default:"./downloads"`
}

type MinIOConfig struct {
	Endpoint  string `yaml:"endpoint" env:"MINIO_ENDPOINT" env-default:"localhost:9000"`
	AccessKey string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
	Bucket    string `yaml:"bucket" env:"MINIO_BUCKET" env-default:"card-exports"`
	UseSSL    bool   `yaml:"use_ssl" env:"MINIO_USE_SSL" env-default:"false"`
}

type KafkaConfig struct {
	Enabled     bool     `yaml:"enabled" env:"KAFKA_ENABLED" env-default:"false"`
	Brokers     []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:"," env-default:"localhost:9092"`
	ExportTopic string   `yaml:"export_topic" env:"KAFKA_EXPORT_TOPIC" env-default:"card-exports"`
}

type RetryConfig struct {
	Attempts int           `yaml:"attempts" env:"RETRY_ATTEMPTS" env-default:"3"`
	Delay    time.Duration `yaml:"delay" env:"RETRY_DELAY" env-default:"200ms"`
	Backoff  float64       `yaml:"backoff" env:"RETRY_BACKOFF" env-default:"2"`
}

type EventsConfig struct {
	QueueSize   int `yaml:"queue_size" env:"EVENTS_QUEUE_SIZE" env-default:"64"`
	NoticeLimit int `yaml:"notice_limit" env:"EVENTS_NOTICE_LIMIT" env-default:"100"`
}

// MustLoad reads the YAML file named by CONFIG_PATH when it is set and falls
// back to the environment otherwise.
func MustLoad() (*Config, error) {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Worker.Concurrency <= 0 {
		return fmt.Errorf("worker concurrency must be positive, got %d", c.Worker.Concurrency)
	}
	if c.Upload.MaxSize <= 0 {
		return fmt.Errorf("upload max size must be positive, got %d", c.Upload.MaxSize)
	}
	if c.Upload.MaxPixels <= 0 {
		return fmt.Errorf("upload max pixels must be positive, got %d", c.Upload.MaxPixels)
	}
	if c.Export.CardRadius < 0 || c.Export.CollageRadius < 0 {
		return fmt.Errorf("export radius must not be negative")
	}
	if c.Events.QueueSize <= 0 {
		return fmt.Errorf("events queue size must be positive, got %d", c.Events.QueueSize)
	}

	switch c.Download.Target {
	case TargetNone, TargetDisk, TargetMinIO:
	default:
		return fmt.Errorf("unknown download target %q", c.Download.Target)
	}

	if c.Retry.Attempts < 1 {
		return fmt.Errorf("retry attempts must be at least 1, got %d", c.Retry.Attempts)
	}
	if c.Retry.Backoff < 1 {
		return fmt.Errorf("retry backoff must be at least 1, got %v", c.Retry.Backoff)
	}

	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka enabled without brokers")
	}

	return nil
}

func (c *Config) DefaultRetryStrategy() retry.Strategy {
	return retry.Strategy{
		Attempts: c.Retry.Attempts,
		Delay:    c.Retry.Delay,
		Backoff:  c.Retry.Backoff,
	}
}
