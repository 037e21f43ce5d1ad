// Package highlight classifies a translated regex pattern into display tokens.
package highlight

// Category is the display class of a token.
type Category int

const (
	CategoryPlain Category = iota
	CategoryGroup
	CategoryClass
	CategoryQuant
	CategoryAlt
	CategoryLiteral
)

var categoryNames = map[Category]string{
	CategoryPlain:   "plain",
	CategoryGroup:   "group",
	CategoryClass:   "class",
	CategoryQuant:   "quant",
	CategoryAlt:     "alt",
	CategoryLiteral: "literal",
}

// String returns the category name, which doubles as the markup class.
func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "plain"
}

// Unit is a piece of a plain token: a single alphanumeric literal or a run of
// filler text.
type Unit struct {
	Text     string
	Category Category
}

// Token is one classified span of the escaped pattern.
// Text is escaped markup text; Pos is its byte offset in the escaped pattern.
type Token struct {
	Text     string
	Category Category
	Pos      int
	Units    []Unit // only set for plain tokens
}
