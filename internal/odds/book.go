package odds

// DefaultMargin is the bookmaker overround applied to each side.
const DefaultMargin = 0.03

// Quote holds the two sides of a moneyline.
type Quote struct {
	Home int `json:"homeAmericanOdds"`
	Away int `json:"awayAmericanOdds"`
}

// Book prices a two-way market with a fixed margin.
type Book struct {
	margin float64
}

// NewBook returns a Book with the given margin; negative margins are treated as zero.
func NewBook(margin float64) Book {
	if margin < 0 {
		margin = 0
	}
	return Book{margin: margin}
}

// Margin reports the configured overround.
func (b Book) Margin() float64 {
	return b.margin
}

// Quote scales the fair home and away probabilities by (1 + margin) independently
// and converts each to American odds. The scaled pair sums above 1, so the two
// quotes are not complementary.
func (b Book) Quote(homeProb float64) Quote {
	scale := 1 + b.margin
	return Quote{
		Home: AmericanOdds(homeProb * scale),
		Away: AmericanOdds((1 - homeProb) * scale),
	}
}
