package notify

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const notifyTimeout = 10 * time.Second

// Notifier posts plain-text messages to a push endpoint such as an ntfy topic
type Notifier struct {
	endpoint string
	client   *http.Client
}

func New(endpoint string) *Notifier {
	return &Notifier{
		endpoint: endpoint,
		client:   &http.Client{Timeout: notifyTimeout},
	}
}

// Notify sends a notification message to the configured endpoint
func (n *Notifier) Notify(ctx context.Context, message string) error {
	if message == "" {
		return fmt.Errorf("message cannot be empty")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.endpoint, strings.NewReader(message))
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	req.Header.Set("Content-Type", "text/plain")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	return nil
}
