package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Http           HttpConfig
	Log            LogConfig
	Schedule       ScheduleConfig
	Infrastructure InfrastructureConfig
}

type HttpConfig struct {
	Addr string `env:"HTTP_ADDR" env-default:":5050"`
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" env-default:"info"`
	Format string `env:"LOG_FORMAT" env-default:"text"`
}

type ScheduleConfig struct {
	// Ссылка на xls, может быть задана позже через API
	DownloadURL  string        `env:"SCHEDULE_DOWNLOAD_URL"`
	FetchTimeout time.Duration `env:"SCHEDULE_FETCH_TIMEOUT" env-default:"30s"`
	ContentTypes []string      `env:"SCHEDULE_CONTENT_TYPES" env-separator:"," env-default:"application/vnd.ms-excel,application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"`
	Timezone     string        `env:"SCHEDULE_TIMEZONE" env-default:"Europe/Moscow"`

	CacheInvalidateDelay time.Duration `env:"SCHEDULE_CACHE_INVALIDATE_DELAY" env-default:"5m"`
	NamesTTL             time.Duration `env:"SCHEDULE_NAMES_TTL" env-default:"24h"`
	// 0 - без срока
	TreeTTL time.Duration `env:"SCHEDULE_TREE_TTL" env-default:"0s"`

	LessonsStartAt string `env:"SCHEDULE_LESSONS_START_AT" env-default:"07:30"`
	NotifyTopic    string `env:"SCHEDULE_NOTIFY_TOPIC" env-default:"common"`
}

type InfrastructureConfig struct {
	Db       DbConfig
	Redis    RedisConfig
	RabbitMQ RabbitMQConfig
}

type DbConfig struct {
	Dsn string `env:"DB_DSN"`
}

type RedisConfig struct {
	// пустой адрес - кеш в памяти процесса
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	Db       int    `env:"REDIS_DB" env-default:"0"`
	Prefix   string `env:"REDIS_PREFIX" env-default:"schedule"`
}

type RabbitMQConfig struct {
	// пустой адрес - уведомления только пишутся в лог
	Url      string `env:"RABBITMQ_URL"`
	Exchange string `env:"RABBITMQ_EXCHANGE" env-default:"notifications"`
}

// Location часовой пояс дат в расписании
func (c *ScheduleConfig) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// LessonsStart час и минута ежедневного уведомления
func (c *ScheduleConfig) LessonsStart() (int, int, error) {
	t, err := time.Parse("15:04", c.LessonsStartAt)
	if err != nil {
		return 0, 0, fmt.Errorf("parse SCHEDULE_LESSONS_START_AT %q: %w", c.LessonsStartAt, err)
	}
	return t.Hour(), t.Minute(), nil
}

func Load() (*Config, error) {
	// .env необязателен
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("read env: %w", err)
	}
	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}
