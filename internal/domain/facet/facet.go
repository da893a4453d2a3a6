package facet

// Gender is the audience a query or product targets.
type Gender string

// Gender constants.
const (
	Male   Gender = "male"
	Female Gender = "female"
	Unisex Gender = "unisex"
)

// IsValid checks if the gender is one of the supported values.
func (g Gender) IsValid() bool {
	return g == Male || g == Female || g == Unisex
}

// Opposes reports whether g and other are strictly opposite genders.
// Unisex opposes nothing.
func (g Gender) Opposes(other Gender) bool {
	return (g == Male && other == Female) || (g == Female && other == Male)
}

// Category is a clothing category.
type Category string

// Category constants.
const (
	FormalWear  Category = "formal wear"
	CasualWear  Category = "casual wear"
	Activewear  Category = "activewear"
	Outerwear   Category = "outerwear"
	Footwear    Category = "footwear"
	Accessories Category = "accessories"
)

// Occasion is the event an outfit is meant for.
type Occasion string

// Occasion constants.
const (
	Wedding Occasion = "wedding"
	Work    Occasion = "work"
	Party   Occasion = "party"
	Beach   Occasion = "beach"
)

// Color is a base color family.
type Color string

// Color constants.
const (
	Black  Color = "black"
	White  Color = "white"
	Blue   Color = "blue"
	Red    Color = "red"
	Green  Color = "green"
	Yellow Color = "yellow"
	Brown  Color = "brown"
	Gray   Color = "gray"
	Pink   Color = "pink"
	Purple Color = "purple"
)

// ContentLabel is the best-guess gender and category of a product chunk.
// Category is empty when no category keyword was found.
type ContentLabel struct {
	Gender   Gender   `json:"gender"`
	Category Category `json:"category,omitempty"`
}

// Contains reports whether tags holds t.
func Contains[T ~string](tags []T, t T) bool {
	for _, v := range tags {
		if v == t {
			return true
		}
	}
	return false
}

// OpposedBy reports whether any gender in query strictly opposes label.
func OpposedBy(query []Gender, label Gender) bool {
	for _, g := range query {
		if g.Opposes(label) {
			return true
		}
	}
	return false
}
