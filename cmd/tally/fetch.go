package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/tydonelson/ranked-choice/irv"
)

func newFetchCmd() *cobra.Command {
	var baseURL, pollID, format string
	var timeout time.Duration

	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch results of a poll from a running server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
			defer cancel()

			results, err := fetchResults(ctx, http.DefaultClient, baseURL, pollID)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), results, format)
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "http://localhost:8080", "base URL of the API")
	cmd.Flags().StringVar(&pollID, "poll", "", "poll id")
	cmd.Flags().StringVar(&format, "format", formatJSON, "output format: json or table")
	cmd.Flags().DurationVar(&timeout, "timeout", 10*time.Second, "request timeout")
	_ = cmd.MarkFlagRequired("poll")

	return cmd
}

func fetchResults(ctx context.Context, client *http.Client, baseURL, pollID string) (*irv.PollResults, error) {
	endpoint := strings.TrimRight(baseURL, "/") + "/api/polls/" + url.PathEscape(pollID) + "/results"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("server returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var results irv.PollResults
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, fmt.Errorf("failed to decode results: %w", err)
	}
	return &results, nil
}
