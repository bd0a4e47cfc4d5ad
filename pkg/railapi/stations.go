package railapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/railtrack/railtrack/pkg/ctdf"
)

type StationService struct {
	client *Client
}

func (s *StationService) List(ctx context.Context, page int, limit int) (*Page[ctdf.Station], error) {
	return requestPage[ctdf.Station](ctx, s.client, "/stations", pageQuery(page, limit))
}

func (s *StationService) Search(ctx context.Context, query string, page int, limit int) (*Page[ctdf.StationSearchResult], error) {
	params := pageQuery(page, limit)
	params.Set("q", query)

	return requestPage[ctdf.StationSearchResult](ctx, s.client, "/stations/search", params)
}

func (s *StationService) Popular(ctx context.Context) ([]ctdf.StationSearchResult, error) {
	return requestList[ctdf.StationSearchResult](ctx, s.client, http.MethodGet, "/stations/popular", nil, nil)
}

func (s *StationService) ByCode(ctx context.Context, code string) (*ctdf.Station, error) {
	return request[ctdf.Station](ctx, s.client, http.MethodGet, "/stations/"+url.PathEscape(code), nil, nil)
}

func (s *StationService) Trains(ctx context.Context, code string, page int, limit int) (*Page[ctdf.StationTrain], error) {
	return requestPage[ctdf.StationTrain](ctx, s.client, "/stations/"+url.PathEscape(code)+"/trains", pageQuery(page, limit))
}

func (s *StationService) Arrivals(ctx context.Context, code string, limit int) ([]ctdf.StationArrival, error) {
	return requestList[ctdf.StationArrival](ctx, s.client, http.MethodGet, "/stations/"+url.PathEscape(code)+"/arrivals", limitQuery(limit), nil)
}

func (s *StationService) Departures(ctx context.Context, code string, limit int) ([]ctdf.StationDeparture, error) {
	return requestList[ctdf.StationDeparture](ctx, s.client, http.MethodGet, "/stations/"+url.PathEscape(code)+"/departures", limitQuery(limit), nil)
}

func limitQuery(limit int) url.Values {
	if limit <= 0 {
		limit = 10
	}

	return url.Values{"limit": []string{fmt.Sprint(limit)}}
}
