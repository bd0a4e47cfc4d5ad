package railapi

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/railtrack/railtrack/pkg/ctdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresSession(t *testing.T) {
	client := newTestClient(t, Session{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)

		var input ctdf.LoginInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		assert.Equal(t, "9876543210", input.Phone)

		writeJSON(w, http.StatusOK, `{"success":true,"data":{"user":{"id":"u1","phone":"9876543210"},"token":"t","refreshToken":"r"}}`)
	})

	auth, err := client.Auth.Login(context.Background(), ctdf.LoginInput{Phone: "9876543210", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "u1", auth.User.ID)

	session, err := client.Tokens().Load()
	require.NoError(t, err)
	assert.Equal(t, "t", session.Token)
	assert.Equal(t, "r", session.RefreshToken)
	require.NotNil(t, session.User)
	assert.Equal(t, "u1", session.User.ID)
}

func TestLogoutClearsSessionOnFailure(t *testing.T) {
	client := newTestClient(t, Session{Token: "t", RefreshToken: "r"}, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"success":false,"error":"boom"}`)
	})

	require.NoError(t, client.Auth.Logout(context.Background()))

	session, err := client.Tokens().Load()
	require.NoError(t, err)
	assert.Empty(t, session.Token)
}

func TestInvalidPNRMakesNoRequest(t *testing.T) {
	client := newTestClient(t, Session{}, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request to %s", r.URL.Path)
	})

	ctx := context.Background()

	_, err := client.PNR.Status(ctx, "12345")
	assert.ErrorIs(t, err, ErrInvalidPNR)

	_, err = client.PNR.CheckMultiple(ctx, []string{"1234567890", "12345abcde"})
	assert.ErrorIs(t, err, ErrInvalidPNR)

	_, err = client.PNR.Passengers(ctx, "")
	assert.ErrorIs(t, err, ErrInvalidPNR)

	_, err = client.Trips.ByPNR(ctx, "123456789012")
	assert.ErrorIs(t, err, ErrInvalidPNR)
}

func TestPNRCheckMultiple(t *testing.T) {
	client := newTestClient(t, Session{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pnr/check", r.URL.Path)

		var body map[string][]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []string{"1234567890", "2345678901"}, body["pnrs"])

		writeJSON(w, http.StatusOK, `{"success":true,"data":[
			{"pnr":"1234567890","success":true,"data":{"pnr":"1234567890","trainNumber":"12951","passengers":[{"number":1,"bookingStatus":"WL/12","currentStatus":"CNF/B2/45"}]}},
			{"pnr":"2345678901","success":false,"error":"PNR flushed"}
		]}`)
	})

	results, err := client.PNR.CheckMultiple(context.Background(), []string{"1234567890", "2345678901"})
	require.NoError(t, err)
	require.Len(t, results, 2)

	require.NotNil(t, results[0].Data)
	assert.Equal(t, "CNF/B2/45", results[0].Data.Passengers[0].CurrentStatus)
	assert.False(t, results[1].Success)
	assert.Equal(t, "PNR flushed", results[1].Error)
}

func TestTripsListPagination(t *testing.T) {
	client := newTestClient(t, Session{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trips", r.URL.Path)
		assert.Equal(t, "upcoming", r.URL.Query().Get("status"))
		assert.Equal(t, "2", r.URL.Query().Get("page"))
		assert.Equal(t, "20", r.URL.Query().Get("limit"))

		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"id":"t1","trainNumber":"12951"},{"id":"t2","trainNumber":"12002"}],"pagination":{"page":2,"limit":20,"total":22,"hasMore":false}}`)
	})

	page, err := client.Trips.List(context.Background(), "upcoming", 2, 20)
	require.NoError(t, err)

	require.Len(t, page.Items, 2)
	assert.Equal(t, "t2", page.Items[1].ID)
	assert.Equal(t, 2, page.Pagination.Page)
	require.NotNil(t, page.Pagination.Total)
	assert.Equal(t, 22, *page.Pagination.Total)
	assert.False(t, page.Pagination.HasMore)
}

func TestTripsListAllOmitsStatus(t *testing.T) {
	client := newTestClient(t, Session{}, func(w http.ResponseWriter, r *http.Request) {
		assert.False(t, r.URL.Query().Has("status"))
		writeJSON(w, http.StatusOK, `{"success":true,"data":[],"pagination":{"page":1,"limit":20,"hasMore":false}}`)
	})

	page, err := client.Trips.List(context.Background(), "all", 1, 20)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestTripLiveTracking(t *testing.T) {
	client := newTestClient(t, Session{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trips/t1/live", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"trip":{"id":"t1","trainNumber":"12951","status":"live"},"liveStatus":null}}`)
	})

	tracking, err := client.Trips.LiveTracking(context.Background(), "t1")
	require.NoError(t, err)
	assert.Equal(t, ctdf.TripStatusLive, tracking.Trip.Status)
	assert.Nil(t, tracking.LiveStatus)
}

func TestTrainsBetween(t *testing.T) {
	client := newTestClient(t, Session{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/trains/between/stations", r.URL.Path)
		assert.Equal(t, "NDLS", r.URL.Query().Get("from"))
		assert.Equal(t, "BCT", r.URL.Query().Get("to"))
		assert.Equal(t, "2026-03-09", r.URL.Query().Get("date"))

		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"trainNumber":"12952","trainName":"Mumbai Rajdhani","classes":["1A","2A","3A"]}],"pagination":{"page":1,"limit":20,"hasMore":false}}`)
	})

	page, err := client.Trains.Between(context.Background(), "NDLS", "BCT", "2026-03-09", 1, 20)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, []string{"1A", "2A", "3A"}, page.Items[0].Classes)
}

func TestStationArrivalsDefaultLimit(t *testing.T) {
	client := newTestClient(t, Session{}, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/stations/NDLS/arrivals", r.URL.Path)
		assert.Equal(t, "10", r.URL.Query().Get("limit"))
		writeJSON(w, http.StatusOK, `{"success":true,"data":[{"trainNumber":"12952","trainName":"Mumbai Rajdhani","arrivalTime":null,"platform":"3","sourceStation":"BCT"}]}`)
	})

	arrivals, err := client.Stations.Arrivals(context.Background(), "NDLS", 0)
	require.NoError(t, err)
	require.Len(t, arrivals, 1)
	assert.Nil(t, arrivals[0].ArrivalTime)
	require.NotNil(t, arrivals[0].Platform)
	assert.Equal(t, "3", *arrivals[0].Platform)
}
