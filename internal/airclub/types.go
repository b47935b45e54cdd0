package airclub

import "strings"

// Country is an immutable upstream snapshot of one country.
type Country struct {
	Code     string `json:"countryCode"`
	Openness int    `json:"openness"`
}

// Airport is an immutable upstream snapshot of one airport. Upstream keys
// route listings by the numeric ID; IATA is what users type.
type Airport struct {
	ID          int     `json:"id"`
	IATA        string  `json:"iata"`
	Name        string  `json:"name"`
	CountryCode string  `json:"countryCode"`
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Population  float64 `json:"population"`
	Income      float64 `json:"incomeLevel"`
}

// Link is one existing route touching an airport; Capacity is its total
// seat count.
type Link struct {
	Capacity float64 `json:"capacity"`
}

// NormalizeIATA canonicalizes an IATA code for matching. Codes are
// compared case-insensitively everywhere, so normalize once at the
// boundary.
func NormalizeIATA(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// sanitize clamps upstream fields the scorer assumes are non-negative and
// canonicalizes the IATA code.
func (a *Airport) sanitize() {
	a.IATA = NormalizeIATA(a.IATA)
	if a.Population < 0 {
		a.Population = 0
	}
	if a.Income < 0 {
		a.Income = 0
	}
}
