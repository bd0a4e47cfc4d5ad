package railapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/railtrack/railtrack/pkg/ctdf"
)

type TrainService struct {
	client *Client
}

func (s *TrainService) Search(ctx context.Context, query string, page int, limit int) (*Page[ctdf.TrainSearchResult], error) {
	params := pageQuery(page, limit)
	params.Set("q", query)

	return requestPage[ctdf.TrainSearchResult](ctx, s.client, "/trains/search", params)
}

func (s *TrainService) Details(ctx context.Context, trainNumber string) (*ctdf.Train, error) {
	return request[ctdf.Train](ctx, s.client, http.MethodGet, "/trains/"+url.PathEscape(trainNumber), nil, nil)
}

func (s *TrainService) Schedule(ctx context.Context, trainNumber string) (*ctdf.TrainSchedule, error) {
	return request[ctdf.TrainSchedule](ctx, s.client, http.MethodGet, "/trains/"+url.PathEscape(trainNumber)+"/schedule", nil, nil)
}

// LiveStatus returns a nil status with a nil error when the backend has no
// running information for the train on date.
func (s *TrainService) LiveStatus(ctx context.Context, trainNumber string, date string) (*ctdf.LiveTrainStatus, error) {
	return request[ctdf.LiveTrainStatus](ctx, s.client, http.MethodGet, "/trains/"+url.PathEscape(trainNumber)+"/live", url.Values{"date": []string{date}}, nil)
}

func (s *TrainService) RunningStatus(ctx context.Context, trainNumber string, date string) (*ctdf.RunningStatusSummary, error) {
	var query url.Values
	if date != "" {
		query = url.Values{"date": []string{date}}
	}

	return request[ctdf.RunningStatusSummary](ctx, s.client, http.MethodGet, "/trains/"+url.PathEscape(trainNumber)+"/status", query, nil)
}

func (s *TrainService) Between(ctx context.Context, from string, to string, date string, page int, limit int) (*Page[ctdf.TrainSearchResult], error) {
	params := pageQuery(page, limit)
	params.Set("from", from)
	params.Set("to", to)
	params.Set("date", date)

	return requestPage[ctdf.TrainSearchResult](ctx, s.client, "/trains/between/stations", params)
}
