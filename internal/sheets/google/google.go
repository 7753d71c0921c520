// Package google adapts the Google Sheets API to the sheets.RangeReader port.
package google

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"reminder/internal/sheets"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
}

var _ sheets.RangeReader = (*Client)(nil)

// New creates a read-only Sheets client for one spreadsheet, authenticating
// with the service-account credential file.
func New(ctx context.Context, spreadsheetID, credentialsFile string) (*Client, error) {
	spreadsheetID = strings.TrimSpace(spreadsheetID)
	if spreadsheetID == "" {
		return nil, fmt.Errorf("%w: missing spreadsheet ID", sheets.ErrAuth)
	}
	if strings.TrimSpace(credentialsFile) == "" {
		return nil, fmt.Errorf("%w: missing service account file", sheets.ErrAuth)
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsFile(credentialsFile),
		goption.WithScopes(gsheet.SpreadsheetsReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("%w: create sheets service: %v", sheets.ErrAuth, err)
	}

	slog.InfoContext(ctx, "Google Sheets client initialized",
		"spreadsheet_id", spreadsheetID,
		"scope", gsheet.SpreadsheetsReadonlyScope)

	return &Client{svc: svc, spreadsheetID: spreadsheetID}, nil
}

// ReadRange implements sheets.RangeReader.
func (c *Client) ReadRange(ctx context.Context, rng string) ([][]string, error) {
	if c.svc == nil {
		return nil, errors.New("sheets service not initialized")
	}
	start := time.Now()
	resp, err := c.svc.Spreadsheets.Values.Get(c.spreadsheetID, rng).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", sheets.ErrFetch, rng, err)
	}
	slog.DebugContext(ctx, "Range read",
		"range", rng,
		"rows", len(resp.Values),
		"duration_ms", time.Since(start).Milliseconds())

	out := make([][]string, len(resp.Values))
	for i, row := range resp.Values {
		out[i] = toStrings(row)
	}
	return out, nil
}

func toStrings(in []interface{}) []string {
	out := make([]string, len(in))
	for i, v := range in {
		out[i] = strings.TrimSpace(fmt.Sprint(v))
	}
	return out
}
