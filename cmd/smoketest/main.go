package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jlaasonen/precinct/internal/errors"
	"github.com/jlaasonen/precinct/internal/logging"
)

// checkPublicEndpoints hits the unauthenticated surface of a deployed
// instance: the health check and the most-wanted board.
func checkPublicEndpoints(ctx context.Context, baseURL string) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) //nolint:mnd // 10 seconds
	defer cancel()
	client := http.Client{}

	for _, path := range []string{"/api/healthy", "/api/most-wanted"} {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, baseURL+path, nil)
		if err != nil {
			return errors.Wrap(err, "create request", slog.String("path", path))
		}
		resp, err := client.Do(req)
		if err != nil {
			return errors.Wrap(err, "request", slog.String("path", path))
		}
		if resp.StatusCode != http.StatusOK {
			_ = resp.Body.Close()
			return errors.New("unexpected status",
				slog.String("path", path), slog.Int("status", resp.StatusCode))
		}
		var body map[string]any
		if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
			_ = resp.Body.Close()
			return errors.Wrap(err, "decode response", slog.String("path", path))
		}
		if err = resp.Body.Close(); err != nil {
			return errors.Wrap(err, "close response body")
		}
	}
	return nil
}

func main() {
	loggerHandler := logging.NewContextHandler(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource:   false,
		Level:       slog.LevelDebug,
		ReplaceAttr: nil,
	}))
	logger := slog.New(loggerHandler)
	ctx := context.Background()

	if len(os.Args) != 2 { //nolint:mnd // we expect only hostname to be passed as argument.
		logger.LogAttrs(ctx, slog.LevelError, "usage: smoketest <hostname>")
		os.Exit(1)
	}

	hostname := os.Args[1]
	url := fmt.Sprintf("https://%s", hostname)
	ctx = logging.WithAttrs(ctx, slog.String("hostname", url))

	if err := checkPublicEndpoints(ctx, url); err != nil {
		logger.LogAttrs(ctx, slog.LevelError, "error checking endpoints", errors.SlogError(err))
		os.Exit(1)
	}

	logger.LogAttrs(ctx, slog.LevelInfo, "Smoke test successful 🙌")
	os.Exit(0)
}
