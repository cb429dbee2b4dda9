package salary

import "math"

// Bracket is a half-open monthly USD range [Lo, Hi).
type Bracket struct {
	Key   string
	Label string
	Lo    float64
	Hi    float64
}

func (b Bracket) Contains(v float64) bool { return b.Lo <= v && v < b.Hi }

// Brackets in display order.
var Brackets = []Bracket{
	{Key: "under500", Label: "Under $500/mo", Lo: 0, Hi: 500},
	{Key: "500to1000", Label: "$500 - $1,000/mo", Lo: 500, Hi: 1000},
	{Key: "1000to2000", Label: "$1,000 - $2,000/mo", Lo: 1000, Hi: 2000},
	{Key: "2000to5000", Label: "$2,000 - $5,000/mo", Lo: 2000, Hi: 5000},
	{Key: "5000plus", Label: "$5,000+/mo", Lo: 5000, Hi: math.Inf(1)},
}

func LookupBracket(key string) (Bracket, bool) {
	for _, b := range Brackets {
		if b.Key == key {
			return b, true
		}
	}
	return Bracket{}, false
}
