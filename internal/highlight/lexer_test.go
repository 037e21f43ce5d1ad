package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/zjrosen/relens/internal/markup"
)

type tokKind struct {
	text string
	cat  Category
}

func kinds(tokens []Token) []tokKind {
	out := make([]tokKind, len(tokens))
	for i, tok := range tokens {
		out[i] = tokKind{tok.Text, tok.Category}
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []tokKind
	}{
		{
			name:  "non-capturing group with quantifier",
			input: "(?:ab|c){2,3}",
			want: []tokKind{
				{"(?:", CategoryGroup},
				{"ab", CategoryPlain},
				{"|", CategoryAlt},
				{"c", CategoryPlain},
				{")", CategoryGroup},
				{"{2,3}", CategoryQuant},
			},
		},
		{
			name:  "class and star",
			input: "[a-z]*x",
			want: []tokKind{
				{"[a-z]", CategoryClass},
				{"*", CategoryQuant},
				{"x", CategoryPlain},
			},
		},
		{
			name:  "escapes",
			input: `\d+\.`,
			want: []tokKind{
				{`\d`, CategoryLiteral},
				{"+", CategoryQuant},
				{`\.`, CategoryLiteral},
			},
		},
		{
			name:  "escaped angle bracket stays one literal",
			input: `\<a`,
			want: []tokKind{
				{`\&lt;`, CategoryLiteral},
				{"a", CategoryPlain},
			},
		},
		{
			name:  "unterminated class",
			input: "[abc",
			want: []tokKind{
				{"[", CategoryPlain},
				{"abc", CategoryPlain},
			},
		},
		{
			name:  "empty class and quantifier",
			input: "[]{}",
			want: []tokKind{
				{"[", CategoryPlain},
				{"]", CategoryPlain},
				{"{", CategoryPlain},
				{"}", CategoryPlain},
			},
		},
		{
			name:  "first closing bracket wins",
			input: "[a]]",
			want: []tokKind{
				{"[a]", CategoryClass},
				{"]", CategoryPlain},
			},
		},
		{
			name:  "trailing lone backslash",
			input: `a\`,
			want: []tokKind{
				{"a", CategoryPlain},
				{`\`, CategoryPlain},
			},
		},
		{
			name:  "lookahead opener is a plain group",
			input: "(?=a)",
			want: []tokKind{
				{"(", CategoryGroup},
				{"?", CategoryQuant},
				{"=a", CategoryPlain},
				{")", CategoryGroup},
			},
		},
		{
			name:  "empty",
			input: "",
			want:  []tokKind{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, kinds(Tokenize(tt.input)))
		})
	}
}

func TestTokenize_Positions(t *testing.T) {
	tokens := Tokenize("(a)|b")
	require.Len(t, tokens, 5)
	for i, want := range []int{0, 1, 2, 3, 4} {
		require.Equal(t, want, tokens[i].Pos)
	}
}

func TestTokenize_PlainUnits(t *testing.T) {
	tokens := Tokenize("a&b c")
	require.Len(t, tokens, 1)
	require.Equal(t, []Unit{
		{Text: "a", Category: CategoryLiteral},
		{Text: "&amp;", Category: CategoryPlain},
		{Text: "b", Category: CategoryLiteral},
		{Text: " ", Category: CategoryPlain},
		{Text: "c", Category: CategoryLiteral},
	}, tokens[0].Units)
}

func TestTokenize_EntityNeverSplit(t *testing.T) {
	tokens := Tokenize("x<y>")
	require.Len(t, tokens, 1)
	texts := make([]string, 0, len(tokens[0].Units))
	for _, u := range tokens[0].Units {
		texts = append(texts, u.Text)
	}
	require.Equal(t, []string{"x", "&lt;", "y", "&gt;"}, texts)
}

func TestTokenize_NonASCIIIsFiller(t *testing.T) {
	tokens := Tokenize("é1")
	require.Len(t, tokens, 1)
	require.Equal(t, []Unit{
		{Text: "é", Category: CategoryPlain},
		{Text: "1", Category: CategoryLiteral},
	}, tokens[0].Units)
}

func TestTokenize_Reconstructs(t *testing.T) {
	rapid.Check(t, func(r *rapid.T) {
		input := rapid.StringOf(rapid.RuneFrom([]rune(`()[]{}*+?|\&<>:ab1 é`))).Draw(r, "input")

		tokens := Tokenize(input)

		var b strings.Builder
		for _, tok := range tokens {
			b.WriteString(tok.Text)
			if tok.Category == CategoryPlain {
				var units strings.Builder
				for _, u := range tok.Units {
					units.WriteString(u.Text)
				}
				require.Equal(r, tok.Text, units.String())
			}
		}
		require.Equal(r, markup.Escape(input), b.String())
	})
}

func TestCategory_String(t *testing.T) {
	require.Equal(t, "group", CategoryGroup.String())
	require.Equal(t, "class", CategoryClass.String())
	require.Equal(t, "quant", CategoryQuant.String())
	require.Equal(t, "alt", CategoryAlt.String())
	require.Equal(t, "literal", CategoryLiteral.String())
	require.Equal(t, "plain", CategoryPlain.String())
	require.Equal(t, "plain", Category(99).String())
}
