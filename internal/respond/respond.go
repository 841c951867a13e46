// Package respond renders the user-facing message for a resolved place and
// its overlapping lands. Each place type maps to exactly one response
// variant; every message ends with the fixed informational suffix.
package respond

import (
	"fmt"
	"strings"

	"github.com/landackn/landbot/internal/model"
)

const moreInfoLink = "bit.ly/landackn"

// Suffix is appended to every response.
const Suffix = "More info: " + moreInfoLink

// renderer is one response variant. The set of variants is closed: a place
// type maps to exactly one of them, with generic as the default.
type renderer interface {
	message() string
}

// Render builds the response for a resolved place and its lands. The original
// query text is echoed in the fallback variants, never the resolved display
// name.
func Render(query string, place model.ResolvedPlace, lands []model.Land) string {
	return classify(query, place, lands).message() + "\n" + Suffix
}

// NotFound renders the response for a query no resolver could match.
func NotFound(query string) string {
	return fmt.Sprintf("I could not find the location: %s", query)
}

// Trouble renders the response for an upstream service failure. The cause is
// logged by the caller, never shown to the user.
func Trouble() string {
	return "I'm having technical trouble right now. Please try again later.\n" + Suffix
}

// Prompt renders the response for an empty or malformed query.
func Prompt() string {
	return "Please tell me the town and state you are in. For example, 'Anchorage, AK'"
}

func classify(query string, place model.ResolvedPlace, lands []model.Land) renderer {
	switch place.Type {
	case model.TypeCountry, model.TypeRegion, model.TypeDistrict:
		return tooBig{placeType: string(place.Type), name: place.Name}
	case model.TypePOI:
		return poi{query: query}
	}

	// The remaining variants all name the lands; without any, the generic
	// apology is the answer regardless of place type.
	if len(lands) == 0 {
		return generic{query: query}
	}

	switch place.Type {
	case model.TypePostcode:
		return postcode{area: place.Name, lands: lands}
	case model.TypePlace, model.TypeLocality, model.TypeNeighborhood:
		return locality{place: place.Name, region: place.Region, lands: lands}
	case model.TypeAddress:
		return address{street: place.Name, place: place.Place, region: place.Region, lands: lands}
	default:
		return generic{query: query}
	}
}

type generic struct {
	query string
}

func (r generic) message() string {
	return fmt.Sprintf("Sorry, I don't have information about %s.", r.query)
}

// tooBig answers for places like countries and states.
type tooBig struct {
	placeType string
	name      string
}

func (r tooBig) message() string {
	return fmt.Sprintf(
		"A %s like %s is a little too big for this service. Try sending a city and state.",
		r.placeType, r.name,
	)
}

// poi answers for points of interest.
type poi struct {
	query string
}

func (r poi) message() string {
	return fmt.Sprintf(
		"I don't know how to find information about %s. Try sending a city and state.",
		r.query,
	)
}

// postcode answers for ZIP codes.
type postcode struct {
	area  string
	lands []model.Land
}

func (r postcode) message() string {
	return fmt.Sprintf("In the area of %s you are on %s land.", r.area, landString(r.lands))
}

// locality answers for cities, towns, and neighborhoods.
type locality struct {
	place  string
	region string
	lands  []model.Land
}

func (r locality) message() string {
	where := r.place
	if r.region != "" {
		where = r.place + ", " + r.region
	}
	return fmt.Sprintf("In %s you are on %s land.", where, landString(r.lands))
}

// address answers for street addresses.
type address struct {
	street string
	place  string
	region string
	lands  []model.Land
}

func (r address) message() string {
	where := r.street
	if r.place != "" {
		where = strings.Join([]string{r.street, r.place, r.region}, ", ")
	}
	return fmt.Sprintf("On %s you are on %s land.", where, landString(r.lands))
}

// landString joins land names for display: one name stands alone, two are
// joined with "and", three or more get an Oxford-comma list. The incoming
// order is preserved.
func landString(lands []model.Land) string {
	names := make([]string, len(lands))
	for i, l := range lands {
		names[i] = l.Name
	}

	switch len(names) {
	case 1:
		return names[0]
	case 2:
		return names[0] + " and " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", and " + names[len(names)-1]
	}
}
