package cmd

import (
	"time"
)

// Config carries all deployment settings for the fulfillment service.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	CatalogServiceURL      string
	NotificationServiceURL string
	InvoiceServiceURL      string

	AdminAPIKey          string
	CarrierWebhookSecret string

	// Simulated-carrier timing policy.
	DeliveryLead time.Duration
	ShipAfter    time.Duration
	DeliverAfter time.Duration
}
