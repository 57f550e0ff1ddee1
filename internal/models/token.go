package models

// Token is a single positioned span of text on a page. Coordinates use
// a top-left origin: X0/X1 are the horizontal extent of the bounding
// box, Top the distance from the top edge of the page to the baseline.
type Token struct {
	Text string
	X0   float64
	X1   float64
	Top  float64
}

// Page holds one page's tokens plus its geometry. Token order carries
// no meaning; the engine's line builder imposes reading order.
type Page struct {
	Tokens []Token
	Width  float64
	Height float64
}
