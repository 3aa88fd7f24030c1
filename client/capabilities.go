package client

import (
	"context"
	"fmt"
	"io"
	"time"
)

// FetchCapabilities retrieves the capabilities document at url, retrying until the
// service answers or the wait time elapses. Progress is written to output.
func (c *CSWClient) FetchCapabilities(ctx context.Context, url string, wait time.Duration, output io.Writer) ([]byte, error) {
	fmt.Fprintf(output, "Connecting to catalogue service at %s", url)

	deadline := time.Now().Add(wait)
	for {
		fmt.Fprintf(output, ".")
		resp, err := c.SubmitGet(ctx, url, nil)
		if err == nil {
			fmt.Fprintln(output)
			if resp.StatusCode != 200 {
				return nil, fmt.Errorf("capabilities request returned status code %d", resp.StatusCode)
			}
			if len(resp.Body) == 0 {
				return nil, fmt.Errorf("capabilities request returned an empty entity")
			}
			fmt.Fprintf(output, "Capabilities document received (%d bytes)\n", len(resp.Body))
			return resp.Body, nil
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return nil, fmt.Errorf("timed out, result of last query was: %w", err)
		}
		select {
		case <-ctx.Done():
			fmt.Fprintln(output)
			return nil, ctx.Err()
		case <-time.After(time.Millisecond * 100):
		}
	}
}
