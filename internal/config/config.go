package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

type FulfillmentConfig struct {
	Env                string `yaml:"env"`
	HTTPServer         `yaml:"http_server"`
	FulfillmentDB      `yaml:"fulfillment_db"`
	LogConfig          `yaml:"log_config"`
	IikoService        `yaml:"iiko-service"`
	YookassaService    `yaml:"yookassa-service"`
	KafkaService       `yaml:"kafka-service"`
	IntegrationCache   `yaml:"integration_cache"`
	NotificationWorker `yaml:"notification_worker"`
	Messengers         `yaml:"messengers"`
}

type HTTPServer struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type FulfillmentDB struct {
	Dsn string `yaml:"dsn"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	LogOutput string `yaml:"log_output"`
}

type IikoService struct {
	BaseURL    string `yaml:"base_url"`
	TimeoutMs  int    `yaml:"timeout_ms" env-default:"15000"`
	TokenTTLMs int    `yaml:"token_ttl_ms" env-default:"900000"`
}

// YookassaService holds the single global credential pair. The pull-based
// status sync authenticates with this pair even for payments created with
// per-restaurant credentials; kept as-is pending product clarification.
type YookassaService struct {
	BaseURL   string `yaml:"base_url" env-default:"https://api.yookassa.ru/v3"`
	ShopID    string `yaml:"shop_id"`
	SecretKey string `yaml:"secret_key"`
	TimeoutMs int    `yaml:"timeout_ms" env-default:"10000"`
}

type KafkaService struct {
	Host string `yaml:"host"`
	Port string `yaml:"port"`
}

type IntegrationCache struct {
	TTLSeconds int `yaml:"ttl_seconds" env-default:"300"`
}

type NotificationWorker struct {
	IntervalSeconds int `yaml:"interval_seconds" env-default:"60"`
	BatchSize       int `yaml:"batch_size" env-default:"50"`
}

type Messengers struct {
	TelegramBotToken string `yaml:"telegram_bot_token"`
	VkAccessToken    string `yaml:"vk_access_token"`
}

func MustLoad() *FulfillmentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("FULFILLMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("FULFILLMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg FulfillmentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
