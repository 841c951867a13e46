package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/landackn/landbot/internal/lookup"
	"github.com/landackn/landbot/internal/model"
	"github.com/landackn/landbot/pkg/mapbox"
)

type staticResolver struct{ place *model.ResolvedPlace }

func (s staticResolver) Resolve(context.Context, string) (*model.ResolvedPlace, error) {
	return s.place, nil
}

type noGeocoder struct{}

func (noGeocoder) Geolocate(context.Context, string) (*mapbox.Feature, error) {
	return nil, mapbox.ErrLocationNotFound
}

type staticLands struct{ lands []model.Land }

func (s staticLands) LandsAt(context.Context, float64, float64) ([]model.Land, error) {
	return s.lands, nil
}

func testRouter() http.Handler {
	svc := lookup.New(
		staticResolver{place: &model.ResolvedPlace{
			Name: "Minneapolis", Region: "Minnesota",
			Latitude: 44.9778, Longitude: -93.2650,
			Type: model.TypePlace,
		}},
		noGeocoder{},
		staticLands{lands: []model.Land{{Name: "Wahpekute"}}},
	)
	return newRouter(svc)
}

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestLookupEndpoint(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/lookup",
		strings.NewReader(`{"query":"Minneapolis, MN"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Message, "In Minneapolis, Minnesota you are on Wahpekute land.")
}

func TestLookupEndpoint_BadBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/v1/lookup", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSMSWebhook(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhook/sms",
		strings.NewReader("Body=Minneapolis%2C+MN&From=%2B15555550100"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/xml; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<Response><Message>")
	assert.Contains(t, rec.Body.String(), "In Minneapolis, Minnesota you are on Wahpekute land.")
}

func TestSMSWebhook_EmptyBodyPrompts(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/webhook/sms", strings.NewReader("Body="))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please tell me the town and state you are in")
}
