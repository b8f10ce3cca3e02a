// Package notify implements the NotificationDispatcher port against the
// notification service's HTTP API. Delivery mechanics (email, SMS) are the
// remote service's concern; this adapter only hands requests over.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

const defaultRequestTimeout = 5 * time.Second

// Dispatcher is an HTTP client for the notification service.
type Dispatcher struct {
	baseURL    string
	httpClient *http.Client
}

// NewDispatcher creates a notification dispatcher for the given base URL.
func NewDispatcher(baseURL string) (*Dispatcher, error) {
	if baseURL == "" {
		return nil, errs.NewValueIsRequiredError("baseURL")
	}
	return &Dispatcher{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
	}, nil
}

// notificationRequest is the notification service's request format.
type notificationRequest struct {
	RecipientEmail string `json:"recipientEmail"`
	Kind           string `json:"kind"`
	Title          string `json:"title"`
	Body           string `json:"body"`
	CtaURL         string `json:"ctaUrl,omitempty"`
}

// Notify submits a notification request.
func (d *Dispatcher) Notify(ctx context.Context, notification ports.Notification) error {
	payload, err := json.Marshal(notificationRequest{
		RecipientEmail: notification.RecipientEmail,
		Kind:           notification.Kind,
		Title:          notification.Title,
		Body:           notification.Body,
		CtaURL:         notification.CtaURL,
	})
	if err != nil {
		return err
	}

	url := fmt.Sprintf("%s/api/v1/notifications", d.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("notification service returned status %d", resp.StatusCode)
	}

	return nil
}
