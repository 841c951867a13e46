package lookup

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/landackn/landbot/internal/gazetteer"
	"github.com/landackn/landbot/internal/model"
	"github.com/landackn/landbot/internal/respond"
	"github.com/landackn/landbot/pkg/mapbox"
)

type fakeResolver struct {
	place *model.ResolvedPlace
	err   error
	calls int
}

func (f *fakeResolver) Resolve(_ context.Context, _ string) (*model.ResolvedPlace, error) {
	f.calls++
	return f.place, f.err
}

type fakeGeocoder struct {
	feature *mapbox.Feature
	err     error
	calls   int
}

func (f *fakeGeocoder) Geolocate(_ context.Context, _ string) (*mapbox.Feature, error) {
	f.calls++
	return f.feature, f.err
}

type fakeLandStore struct {
	lands []model.Land
	err   error
	calls int
}

func (f *fakeLandStore) LandsAt(_ context.Context, _, _ float64) ([]model.Land, error) {
	f.calls++
	return f.lands, f.err
}

func TestLookup_LocalMatch(t *testing.T) {
	gaz := &fakeResolver{place: &model.ResolvedPlace{
		Name: "Minneapolis", Region: "Minnesota",
		Latitude: 44.9778, Longitude: -93.2650,
		Type: model.TypePlace,
	}}
	geo := &fakeGeocoder{}
	land := &fakeLandStore{lands: []model.Land{
		{Name: "Wahpekute"},
		{Name: "Očeti Šakówiŋ (Sioux)"},
	}}

	svc := New(gaz, geo, land)
	got := svc.Lookup(context.Background(), "Minneapolis, MN")

	assert.Equal(t,
		"In Minneapolis, Minnesota you are on Wahpekute and Očeti Šakówiŋ (Sioux) land.\n"+respond.Suffix,
		got)
	assert.Zero(t, geo.calls, "local match must not reach the remote geocoder")
	assert.Equal(t, 1, land.calls)
}

func TestLookup_PostalMatch(t *testing.T) {
	gaz := &fakeResolver{place: &model.ResolvedPlace{
		Name: "99577", Region: "Alaska", Place: "Eagle River",
		Latitude: 61.3214, Longitude: -149.5682,
		Type: model.TypePostcode,
	}}
	geo := &fakeGeocoder{}
	land := &fakeLandStore{lands: []model.Land{{Name: "Dena'ina Ełnena"}}}

	svc := New(gaz, geo, land)
	got := svc.Lookup(context.Background(), "99577")

	assert.Equal(t, "In the area of 99577 you are on Dena'ina Ełnena land.\n"+respond.Suffix, got)
	assert.Zero(t, geo.calls)
}

func TestLookup_RemoteFallback(t *testing.T) {
	gaz := &fakeResolver{err: gazetteer.ErrNoMatch}
	geo := &fakeGeocoder{feature: &mapbox.Feature{
		Relevance: 1,
		PlaceType: []string{"place"},
		Text:      "Winnipeg",
		Center:    [2]float64{-97.1384, 49.8954},
		Context: []mapbox.ContextEntry{
			{ID: "region.1", Text: "Manitoba"},
			{ID: "country.2", Text: "Canada"},
		},
	}}
	land := &fakeLandStore{lands: []model.Land{{Name: "Anishinabewaki"}}}

	svc := New(gaz, geo, land)
	got := svc.Lookup(context.Background(), "Winnipeg")

	assert.Equal(t, "In Winnipeg, Manitoba you are on Anishinabewaki land.\n"+respond.Suffix, got)
	assert.Equal(t, 1, geo.calls)
}

func TestLookup_NotFound(t *testing.T) {
	gaz := &fakeResolver{err: gazetteer.ErrNoMatch}
	geo := &fakeGeocoder{err: mapbox.ErrLocationNotFound}
	land := &fakeLandStore{}

	svc := New(gaz, geo, land)
	got := svc.Lookup(context.Background(), "Blah")

	assert.Equal(t, "I could not find the location: Blah", got)
	assert.Zero(t, land.calls)
}

func TestLookup_NoLandsEchoesQuery(t *testing.T) {
	gaz := &fakeResolver{place: &model.ResolvedPlace{
		Name: "Reykjavík", Region: "Capital Region",
		Latitude: 64.1466, Longitude: -21.9426,
		Type: model.TypePlace,
	}}
	land := &fakeLandStore{}

	svc := New(gaz, &fakeGeocoder{}, land)
	got := svc.Lookup(context.Background(), "reykjavik iceland")

	assert.Equal(t, "Sorry, I don't have information about reykjavik iceland.\n"+respond.Suffix, got)
}

func TestLookup_CountrySkipsLandLookup(t *testing.T) {
	gaz := &fakeResolver{err: gazetteer.ErrNoMatch}
	geo := &fakeGeocoder{feature: &mapbox.Feature{
		Relevance: 1,
		PlaceType: []string{"country"},
		Text:      "Canada",
		Center:    [2]float64{-106.3468, 56.1304},
	}}
	land := &fakeLandStore{}

	svc := New(gaz, geo, land)
	got := svc.Lookup(context.Background(), "Canada")

	assert.Contains(t, got, "A country like Canada is a little too big")
	assert.Zero(t, land.calls, "oversized places must skip the land lookup")
}

func TestLookup_POISkipsLandLookup(t *testing.T) {
	gaz := &fakeResolver{err: gazetteer.ErrNoMatch}
	geo := &fakeGeocoder{feature: &mapbox.Feature{
		Relevance: 1,
		PlaceType: []string{"poi"},
		Text:      "Mall of America",
		Center:    [2]float64{-93.2422, 44.8549},
	}}
	land := &fakeLandStore{}

	svc := New(gaz, geo, land)
	got := svc.Lookup(context.Background(), "mall of america")

	assert.Contains(t, got, "I don't know how to find information about mall of america")
	assert.Zero(t, land.calls)
}

func TestLookup_ShortQueryPrompts(t *testing.T) {
	gaz := &fakeResolver{}
	svc := New(gaz, &fakeGeocoder{}, &fakeLandStore{})

	for _, q := range []string{"", "  ", "MN", " a "} {
		got := svc.Lookup(context.Background(), q)
		assert.Equal(t, respond.Prompt(), got, "query %q", q)
	}
	assert.Zero(t, gaz.calls, "short queries must not reach the gazetteer")
}

func TestLookup_MalformedZipPrompts(t *testing.T) {
	gaz := &fakeResolver{err: &gazetteer.InvalidPostalCodeError{Input: "123456"}}
	geo := &fakeGeocoder{}

	svc := New(gaz, geo, &fakeLandStore{})
	got := svc.Lookup(context.Background(), "123456")

	assert.Equal(t, respond.Prompt(), got)
	assert.Zero(t, geo.calls, "malformed ZIPs never reach the remote geocoder")
}

func TestLookup_GeocoderAPIError(t *testing.T) {
	gaz := &fakeResolver{err: gazetteer.ErrNoMatch}
	geo := &fakeGeocoder{err: &mapbox.APIError{StatusCode: 500, Message: "upstream down"}}

	svc := New(gaz, geo, &fakeLandStore{})
	got := svc.Lookup(context.Background(), "Minneapolis")

	assert.Equal(t, respond.Trouble(), got)
}

func TestLookup_GazetteerFailure(t *testing.T) {
	gaz := &fakeResolver{err: errors.New("conn closed")}
	geo := &fakeGeocoder{}

	svc := New(gaz, geo, &fakeLandStore{})
	got := svc.Lookup(context.Background(), "Minneapolis")

	assert.Equal(t, respond.Trouble(), got)
	assert.Zero(t, geo.calls, "store failures are not a fallback trigger")
}

func TestLookup_LandStoreFailure(t *testing.T) {
	gaz := &fakeResolver{place: &model.ResolvedPlace{
		Name: "Minneapolis", Region: "Minnesota",
		Latitude: 44.9778, Longitude: -93.2650,
		Type: model.TypePlace,
	}}
	land := &fakeLandStore{err: errors.New("terminating connection")}

	svc := New(gaz, &fakeGeocoder{}, land)
	got := svc.Lookup(context.Background(), "Minneapolis, MN")

	assert.Equal(t, respond.Trouble(), got)
}

func TestLookup_OutOfRangeCoordinates(t *testing.T) {
	gaz := &fakeResolver{err: gazetteer.ErrNoMatch}
	geo := &fakeGeocoder{feature: &mapbox.Feature{
		Relevance: 1,
		PlaceType: []string{"place"},
		Text:      "Nowhere",
		Center:    [2]float64{421.5, 95.2},
	}}
	land := &fakeLandStore{}

	svc := New(gaz, geo, land)
	got := svc.Lookup(context.Background(), "Nowhere")

	assert.Equal(t, "I could not find the location: Nowhere", got)
	assert.Zero(t, land.calls)
}
