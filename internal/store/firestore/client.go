package firestore

import (
	"context"
	"fmt"

	cloudfirestore "cloud.google.com/go/firestore"
	"go.uber.org/zap"
	"google.golang.org/api/option"

	"github.com/Jish22/ActivityFinderAPpReboot/internal/config"
)

// Client wraps the Firestore connection
type Client struct {
	client *cloudfirestore.Client
	config *config.Firestore
	log    *zap.Logger
}

// NewClient creates a new Firestore client with the given configuration
func NewClient(ctx context.Context, cfg *config.Firestore, log *zap.Logger) (*Client, error) {
	log.Info("Connecting to Firestore",
		zap.String("project_id", cfg.ProjectID))

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}

	client, err := cloudfirestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		log.Error("Failed to connect to Firestore", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to Firestore: %w", err)
	}

	log.Info("Firestore connection established successfully")

	return &Client{client: client, config: cfg, log: log}, nil
}

// Conn returns the underlying Firestore client
func (c *Client) Conn() *cloudfirestore.Client {
	return c.client
}

// Close closes the Firestore connection
func (c *Client) Close() error {
	return c.client.Close()
}
