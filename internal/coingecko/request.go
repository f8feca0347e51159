package coingecko

import (
	"context"
	"time"

	"go.uber.org/zap"

	"coinextractor/internal/extractor"
)

// get performs one GET against the provider and returns the raw body. Every
// transport failure and non-2xx status is logged here and returned as an
// *extractor.Error.
func (c *Client) get(ctx context.Context, endpoint, path string, pathParams, query map[string]string) ([]byte, error) {
	req := c.client.R().SetContext(ctx)
	if len(pathParams) > 0 {
		req.SetPathParams(pathParams)
	}
	if len(query) > 0 {
		req.SetQueryParams(query)
	}

	start := time.Now()
	resp, err := req.Get(path)
	elapsed := time.Since(start)

	if err != nil {
		c.recordRequest(endpoint, 0, elapsed)
		fetchErr := extractor.ClassifyTransportError(err)
		c.logger.Error("request failed",
			zap.String("endpoint", endpoint),
			zap.String("kind", string(fetchErr.Kind)),
			zap.Error(err))
		return nil, fetchErr
	}

	c.recordRequest(endpoint, resp.StatusCode(), elapsed)

	if !resp.IsSuccess() {
		fetchErr := extractor.ClassifyHTTPError(resp.StatusCode())
		c.logger.Error("request failed",
			zap.String("endpoint", endpoint),
			zap.String("kind", string(fetchErr.Kind)),
			zap.Int("status", resp.StatusCode()))
		return nil, fetchErr
	}

	c.logger.Debug("request completed",
		zap.String("endpoint", endpoint),
		zap.Int("status", resp.StatusCode()),
		zap.Duration("elapsed", elapsed))

	return resp.Bytes(), nil
}

func (c *Client) recordRequest(endpoint string, status int, elapsed time.Duration) {
	if c.metrics != nil {
		c.metrics.RecordRequest(endpoint, status, elapsed.Seconds())
	}
}
