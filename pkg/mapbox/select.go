package mapbox

// typePriorities ranks place types so that well-defined inhabited places win
// over vague categories when relevance scores tie. Unknown types rank 0.
var typePriorities = map[string]int{
	"place":        10,
	"postcode":     10,
	"locality":     9,
	"address":      8,
	"region":       7,
	"country":      6,
	"district":     5,
	"neighborhood": 5,
	"poi":          4,
}

// BestFeature selects the best feature from an API result set by the
// composite key (relevance descending, type priority descending). It returns
// ErrLocationNotFound for an empty collection.
func BestFeature(features []Feature) (*Feature, error) {
	if len(features) == 0 {
		return nil, ErrLocationNotFound
	}

	best := 0
	for i := 1; i < len(features); i++ {
		if better(&features[i], &features[best]) {
			best = i
		}
	}
	return &features[best], nil
}

func better(a, b *Feature) bool {
	if a.Relevance != b.Relevance {
		return a.Relevance > b.Relevance
	}
	return typePriorities[a.PrimaryType()] > typePriorities[b.PrimaryType()]
}
