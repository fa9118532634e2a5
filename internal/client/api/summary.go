package api

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/easyflowhq/easyflow/internal/client/models"
)

// SummaryParams narrows the monthly summary query. Zero values mean "current
// period"; AllTime ignores year and month.
type SummaryParams struct {
	Year    int
	Month   int
	AllTime bool
}

func (c *Client) MonthlySummary(ctx context.Context, params SummaryParams) (*models.Summary, error) {
	query := url.Values{}
	if params.Year > 0 {
		query.Set("year", strconv.Itoa(params.Year))
	}
	if params.Month > 0 {
		query.Set("month", strconv.Itoa(params.Month))
	}
	if params.AllTime {
		query.Set("allTime", "true")
	}

	var resp models.Summary
	err := c.do(ctx, call{
		method: http.MethodGet,
		path:   "/api/summary/monthly",
		query:  query,
	}, &resp)
	if err != nil {
		return nil, err
	}
	return &resp, nil
}
