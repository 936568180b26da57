package jobs

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"freight-booking-backend/internal/logger"
)

// KeepAlive pings the configured URL so that hosting platforms which idle
// inactive services keep the API warm.
func (jr *JobRunner) KeepAlive() {
	jr.runWithRecovery(JobKeepAlive, func() error {
		return jr.PingKeepAlive(context.Background())
	})
}

func (jr *JobRunner) PingKeepAlive(ctx context.Context) error {
	url := jr.config.Scheduler.KeepAliveURL
	if url == "" {
		return fmt.Errorf("keep-alive url is not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to build keep-alive request: %w", err)
	}
	req.Header.Set("User-Agent", "freight-booking-keepalive")

	logger.ExternalServiceCall("keep-alive", "GET", "url", url)
	resp, err := jr.client.Do(req)
	if err != nil {
		logger.ExternalServiceResult("keep-alive", "GET", err, "url", url)
		return fmt.Errorf("keep-alive request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("keep-alive returned status %d", resp.StatusCode)
		logger.ExternalServiceResult("keep-alive", "GET", err, "url", url)
		return err
	}
	logger.ExternalServiceResult("keep-alive", "GET", nil, "url", url, "status", resp.StatusCode)
	return nil
}
