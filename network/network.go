package network

import (
	"context"
	"fmt"
	"net/http"
	"time"
)

const connectTimeout = 10 * time.Second

// CheckConnectivity verifies internet connectivity by making a request to a known endpoint
func CheckConnectivity(ctx context.Context, endpoint string) error {
	client := &http.Client{
		Timeout: connectTimeout,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fmt.Errorf("connectivity check failed: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("connectivity check failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("connectivity check failed with status code: %d", resp.StatusCode)
	}

	return nil
}
