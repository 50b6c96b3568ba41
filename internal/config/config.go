package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

const (
	ChannelDriverRedis  = "redis"
	ChannelDriverMemory = "memory"
)

type config struct {
	Production    bool          `env:"PRODUCTION" envDefault:"false"`
	Port          string        `env:"PORT" envDefault:"8080"`
	ApiURL        string        `env:"API_URL" envDefault:"http://localhost:3250"`
	ApiToken      string        `env:"API_TOKEN" envDefault:""`
	ChannelDriver string        `env:"CHANNEL_DRIVER" envDefault:"redis"`
	ChannelTopic  string        `env:"CHANNEL_TOPIC" envDefault:"update-event"`
	RedisUrl      string        `env:"REDIS_URL" envDefault:"redis:6379"`
	RefreshPeriod time.Duration `env:"REFRESH_PERIOD" envDefault:"60s"`
	PostgresUrl   string        `env:"POSTGRES_URL" envDefault:""`
	MaxFileSize   int64         `env:"MAX_FILE_SIZE" envDefault:"5242880"`
}

var conf config

func init() {
	// .env is optional, real environment wins
	_ = godotenv.Load()

	if err := env.Parse(&conf); err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}

	switch conf.ChannelDriver {
	case ChannelDriverRedis, ChannelDriverMemory:
	default:
		panic(fmt.Sprintf("failed to load config: unknown channel driver %q", conf.ChannelDriver))
	}
}

func Production() bool {
	return conf.Production
}

func Port() string {
	return conf.Port
}

// ApiURL is the remote server base URL, without the /api suffix.
func ApiURL() string {
	return conf.ApiURL
}

func ApiToken() string {
	return conf.ApiToken
}

func ChannelDriver() string {
	return conf.ChannelDriver
}

func ChannelTopic() string {
	return conf.ChannelTopic
}

func RedisURL() string {
	return conf.RedisUrl
}

func RefreshPeriod() time.Duration {
	return conf.RefreshPeriod
}

func PostgresURL() string {
	return conf.PostgresUrl
}

func MaxFileSize() int64 {
	return conf.MaxFileSize
}
