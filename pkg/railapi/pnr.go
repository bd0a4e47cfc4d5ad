package railapi

import (
	"context"
	"net/http"

	"github.com/railtrack/railtrack/pkg/ctdf"
)

// PNRService validates every PNR locally before making a request.
type PNRService struct {
	client *Client
}

func (s *PNRService) Status(ctx context.Context, pnr string) (*ctdf.PNRStatus, error) {
	if !ctdf.IsValidPNR(pnr) {
		return nil, ErrInvalidPNR
	}

	return request[ctdf.PNRStatus](ctx, s.client, http.MethodGet, "/pnr/"+pnr, nil, nil)
}

func (s *PNRService) CheckMultiple(ctx context.Context, pnrs []string) ([]ctdf.PNRCheckResult, error) {
	for _, pnr := range pnrs {
		if !ctdf.IsValidPNR(pnr) {
			return nil, ErrInvalidPNR
		}
	}

	return requestList[ctdf.PNRCheckResult](ctx, s.client, http.MethodPost, "/pnr/check", nil, map[string][]string{"pnrs": pnrs})
}

func (s *PNRService) Passengers(ctx context.Context, pnr string) ([]ctdf.Passenger, error) {
	if !ctdf.IsValidPNR(pnr) {
		return nil, ErrInvalidPNR
	}

	return requestList[ctdf.Passenger](ctx, s.client, http.MethodGet, "/pnr/"+pnr+"/passengers", nil, nil)
}

// Refresh asks the backend to bypass its own cache.
func (s *PNRService) Refresh(ctx context.Context, pnr string) (*ctdf.PNRStatus, error) {
	if !ctdf.IsValidPNR(pnr) {
		return nil, ErrInvalidPNR
	}

	return request[ctdf.PNRStatus](ctx, s.client, http.MethodPost, "/pnr/"+pnr+"/refresh", nil, nil)
}
