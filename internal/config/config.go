package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Service holds the API process settings
type Service struct {
	Environment string `envconfig:"SERVICE_ENVIRONMENT" required:"true"`
	APIPort     string `envconfig:"SERVICE_API_PORT" default:"8080"`
	Host        string `envconfig:"SERVICE_HOST" default:"localhost:8080"`
}

// Firestore holds the document store settings
type Firestore struct {
	ProjectID       string `envconfig:"FIRESTORE_PROJECT_ID" required:"true"`
	CredentialsFile string `envconfig:"FIRESTORE_CREDENTIALS_FILE"`
}

// SQS holds the announcement queue settings
type SQS struct {
	Endpoint string `envconfig:"SQS_ENDPOINT"`
	QueueURL string `envconfig:"SQS_QUEUE_URL" required:"true"`
	Region   string `envconfig:"SQS_REGION" required:"true"`
}

// Feed holds the feed assembly settings
type Feed struct {
	PageSize int `envconfig:"FEED_PAGE_SIZE" default:"10"`
}

// Notifier holds the announcement worker settings
type Notifier struct {
	MaxMessages     int    `envconfig:"NOTIFIER_MAX_MESSAGES" default:"10"`
	WaitTimeSeconds int    `envconfig:"NOTIFIER_WAIT_TIME_SEC" default:"20"`
	BufferSize      int    `envconfig:"NOTIFIER_BUFFER_SIZE" default:"100"`
	HealthCheckPort string `envconfig:"NOTIFIER_HEALTH_CHECK_PORT" default:"8081"`
}

// Config is the full service configuration loaded from the environment
type Config struct {
	Service   Service
	Firestore Firestore
	SQS       SQS
	Feed      Feed
	Notifier  Notifier
}

// Load reads the configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
