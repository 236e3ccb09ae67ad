package game

// FruitKind names what a fruit looks like and how it behaves.
type FruitKind string

// Fruit kinds. Apples alternate red and green, the cherry is the timed bonus
// and food is the plain pellet of the walled variant.
const (
	AppleRed   FruitKind = "apple-red"
	AppleGreen FruitKind = "apple-green"
	Cherry     FruitKind = "cherry"
	Food       FruitKind = "food"
)

// Fruit is a consumable cell.
type Fruit struct {
	Point
	Kind    FruitKind `json:"kind"`
	Visible bool      `json:"visible"`
	Points  int       `json:"points"`
}

// At reports whether the fruit is visible on p.
func (f Fruit) At(p Point) bool {
	return f.Visible && f.Point.Equal(p)
}
