package gazetteer

import (
	"regexp"
	"strings"
)

// nonWord matches every character that is not a letter, digit, or underscore.
var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// zipShaped matches anything that looks like it was meant to be a ZIP code:
// digits, optionally followed by a dashed suffix.
var zipShaped = regexp.MustCompile(`^\d+(?:-\d+)?$`)

// validZip matches a strict 5-digit ZIP with an optional +4 suffix.
var validZip = regexp.MustCompile(`^(\d{5})(?:-\d{4})?$`)

// NormalizeKey derives a matching key from free text: every non-word
// character is removed and the remainder is uppercased. Keys are never
// displayed. NormalizeKey is idempotent.
func NormalizeKey(text string) string {
	return strings.ToUpper(nonWord.ReplaceAllString(text, ""))
}

// abbrToState maps lowercase state abbreviations to lowercase full names.
var abbrToState = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
	"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
	"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho",
	"il": "illinois", "in": "indiana", "ia": "iowa", "ks": "kansas",
	"ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
	"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
	"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
	"nh": "new hampshire", "nj": "new jersey", "nm": "new mexico", "ny": "new york",
	"nc": "north carolina", "nd": "north dakota", "oh": "ohio", "ok": "oklahoma",
	"or": "oregon", "pa": "pennsylvania", "ri": "rhode island", "sc": "south carolina",
	"sd": "south dakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
	"vt": "vermont", "va": "virginia", "wa": "washington", "wv": "west virginia",
	"wi": "wisconsin", "wy": "wyoming", "dc": "district of columbia",
}

// stateToAbbr maps lowercase full names to lowercase abbreviations.
var stateToAbbr = func() map[string]string {
	m := make(map[string]string, len(abbrToState))
	for abbr, full := range abbrToState {
		m[full] = abbr
	}
	return m
}()

var tokenSplit = regexp.MustCompile(`[\s,]+`)

// keyCandidates derives the two normalized matching keys for a city/state
// query: one against the city + full state name form and one against the
// city + state code form. When the trailing token(s) spell a recognizable
// state, both representations are generated regardless of which one the user
// typed; otherwise both keys fall back to the normalized raw query.
func keyCandidates(query string) (nameKey, codeKey string) {
	tokens := tokenSplit.Split(strings.TrimSpace(query), -1)

	// Full state names span up to two tokens ("New Mexico").
	for n := 2; n >= 1; n-- {
		if len(tokens) <= n {
			continue
		}
		tail := strings.ToLower(strings.Join(tokens[len(tokens)-n:], " "))
		city := strings.Join(tokens[:len(tokens)-n], " ")

		if full, ok := abbrToState[tail]; ok {
			return NormalizeKey(city + full), NormalizeKey(city + tail)
		}
		if abbr, ok := stateToAbbr[tail]; ok {
			return NormalizeKey(city + tail), NormalizeKey(city + abbr)
		}
	}

	key := NormalizeKey(query)
	return key, key
}
