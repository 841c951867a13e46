// Package model holds the shared domain types for location resolution.
package model

// PlaceType categorizes the kind of geographic entity a resolved place
// represents. The vocabulary follows the geocoding provider's place_type tags.
type PlaceType string

const (
	TypePostcode     PlaceType = "postcode"
	TypePlace        PlaceType = "place"
	TypeLocality     PlaceType = "locality"
	TypeNeighborhood PlaceType = "neighborhood"
	TypeAddress      PlaceType = "address"
	TypeRegion       PlaceType = "region"
	TypeCountry      PlaceType = "country"
	TypeDistrict     PlaceType = "district"
	TypePOI          PlaceType = "poi"
)

// ResolvedPlace is the output of location resolution: a named point with a
// place-type tag. It is either fully populated or resolution failed; partial
// records are never surfaced.
type ResolvedPlace struct {
	// Name is the display name: the city, the ZIP code itself for postal
	// matches, or the street line for addresses.
	Name string

	// Region is the containing administrative region's display name
	// (e.g. "Minnesota"), empty when unknown.
	Region string

	// RegionCode is the short region code (e.g. "MN"), empty when unknown.
	RegionCode string

	// Place is the containing city for address-level results, empty otherwise.
	Place string

	Latitude  float64
	Longitude float64
	Type      PlaceType
}

// Land is an indigenous territory record: a named polygonal region with an
// optional description. Reference data, read-only from this service's view.
type Land struct {
	Name        string
	Description string
}
