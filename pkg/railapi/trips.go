package railapi

import (
	"context"
	"net/http"
	"net/url"

	"github.com/railtrack/railtrack/pkg/ctdf"
)

type TripService struct {
	client *Client
}

// List filters by status unless it is empty or "all".
func (s *TripService) List(ctx context.Context, status string, page int, limit int) (*Page[ctdf.Trip], error) {
	query := pageQuery(page, limit)
	if status != "" && status != "all" {
		query.Set("status", status)
	}

	return requestPage[ctdf.Trip](ctx, s.client, "/trips", query)
}

func (s *TripService) Create(ctx context.Context, input ctdf.CreateTripInput) (*ctdf.Trip, error) {
	return request[ctdf.Trip](ctx, s.client, http.MethodPost, "/trips", nil, input)
}

func (s *TripService) Get(ctx context.Context, tripID string) (*ctdf.Trip, error) {
	return request[ctdf.Trip](ctx, s.client, http.MethodGet, "/trips/"+url.PathEscape(tripID), nil, nil)
}

func (s *TripService) Update(ctx context.Context, tripID string, input ctdf.UpdateTripInput) (*ctdf.Trip, error) {
	return request[ctdf.Trip](ctx, s.client, http.MethodPut, "/trips/"+url.PathEscape(tripID), nil, input)
}

func (s *TripService) Delete(ctx context.Context, tripID string) error {
	_, err := s.client.do(ctx, http.MethodDelete, "/trips/"+url.PathEscape(tripID), nil, nil)
	return err
}

func (s *TripService) LiveTracking(ctx context.Context, tripID string) (*ctdf.TripWithLiveStatus, error) {
	return request[ctdf.TripWithLiveStatus](ctx, s.client, http.MethodGet, "/trips/"+url.PathEscape(tripID)+"/live", nil, nil)
}

func (s *TripService) Complete(ctx context.Context, tripID string) (*ctdf.Trip, error) {
	return request[ctdf.Trip](ctx, s.client, http.MethodPost, "/trips/"+url.PathEscape(tripID)+"/complete", nil, nil)
}

func (s *TripService) ByPNR(ctx context.Context, pnr string) ([]ctdf.Trip, error) {
	if !ctdf.IsValidPNR(pnr) {
		return nil, ErrInvalidPNR
	}

	return requestList[ctdf.Trip](ctx, s.client, http.MethodGet, "/trips/pnr/"+pnr, nil, nil)
}
