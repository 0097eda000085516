package heartbeat

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"status-leds/types"
)

const sendTimeout = 10 * time.Second

// Send posts one heartbeat for nodeName to endpoint
func Send(ctx context.Context, endpoint, nodeName string) error {
	form := url.Values{"m": {nodeName + " just checking in"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to send heartbeat: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{Timeout: sendTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send heartbeat: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("heartbeat failed with status code: %d", resp.StatusCode)
	}

	return nil
}

// Run sends a heartbeat right away and then every interval until ctx is cancelled
func Run(ctx context.Context, endpoint, nodeName string, interval time.Duration, logger *types.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if err := Send(ctx, endpoint, nodeName); err != nil {
			if ctx.Err() != nil {
				return
			}
			logger.WarnLog.Printf("Heartbeat error: %s", err.Error())
		} else {
			logger.DebugLog.Printf("Heartbeat sent")
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
