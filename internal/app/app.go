package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix - префикс переменных окружения, например COMPLIA_API_URL
const EnvPrefix = "complia"

const (
	DefaultServerPort      = ":8080"
	DefaultAPIURL          = "http://127.0.0.1:8001/api"
	DefaultShutdownTimeout = 15 * time.Second
	DefaultFeedbackLimit   = 10
	DefaultFeedbackWindow  = time.Minute
	DefaultKafkaTopic      = "complia-ui-events"
)

type Config struct {
	ServerPort      string         `yaml:"srv_port" envconfig:"SRV_PORT"`
	APIURL          string         `yaml:"api_url" envconfig:"API_URL"`
	ShutdownTimeout time.Duration  `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT"`
	CfgFeedback     ConfigFeedback `yaml:"feedback" envconfig:"FEEDBACK"`
	CfgRedis        ConfigRedis    `yaml:"redis" envconfig:"REDIS"`
	CfgKafka        ConfigKafka    `yaml:"kafka" envconfig:"KAFKA"`
}

// ConfigFeedback - лимит отзывов с одного клиента.
// TrustForwardedFor включать только за своим прокси, иначе клиент сам выбирает ключ лимита.
type ConfigFeedback struct {
	Limit             int64         `yaml:"limit" envconfig:"LIMIT"`
	Window            time.Duration `yaml:"window" envconfig:"WINDOW"`
	TrustForwardedFor bool          `yaml:"trust_forwarded_for" envconfig:"TRUST_FORWARDED_FOR"`
}

// ConfigRedis - пустой Addr отключает ограничение частоты отзывов
type ConfigRedis struct {
	Addr     string `yaml:"addr" envconfig:"ADDR"`
	Password string `yaml:"password" envconfig:"PASSWORD"`
	DB       int    `yaml:"db" envconfig:"DB"`
}

// ConfigKafka - пустой список брокеров отключает публикацию событий
type ConfigKafka struct {
	Brokers []string `yaml:"brokers" envconfig:"BROKERS"`
	Topic   string   `yaml:"topic" envconfig:"TOPIC"`
}

func defaultConfig() Config {
	return Config{
		ServerPort:      DefaultServerPort,
		APIURL:          DefaultAPIURL,
		ShutdownTimeout: DefaultShutdownTimeout,
		CfgFeedback: ConfigFeedback{
			Limit:  DefaultFeedbackLimit,
			Window: DefaultFeedbackWindow,
		},
		CfgKafka: ConfigKafka{
			Topic: DefaultKafkaTopic,
		},
	}
}

// NewConfig собирает конфиг в три слоя: значения по умолчанию, yaml-файл, переменные окружения.
// Отсутствующий файл конфига ошибкой не считается.
func NewConfig(configPath string) (*Config, error) {
	c := defaultConfig()

	cfg, err := os.ReadFile(configPath)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, err
	default:
		if err = yaml.Unmarshal(cfg, &c); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
		}
	}

	if err = envconfig.Process(EnvPrefix, &c); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if c.APIURL == "" {
		c.APIURL = DefaultAPIURL
	}

	return &c, nil
}

func (c *Config) RedisEnabled() bool {
	return c.CfgRedis.Addr != ""
}

func (c *Config) KafkaEnabled() bool {
	return len(c.CfgKafka.Brokers) > 0
}
