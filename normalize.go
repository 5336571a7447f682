package calc

import "strings"

// Marker is the mode marker a calculator display may leave in its text.
// Normalize removes it.
const Marker = ';'

// glyphs maps display glyphs to the operators the lexer understands. The caret
// is already the power operator.
var glyphs = strings.NewReplacer(
	"×", "*",
	"÷", "/",
	"−", "-",
	string(Marker), "",
)

// Normalize rewrites calculator display glyphs in raw to ASCII operators and
// strips mode markers. Anything else is passed through for the lexer to accept
// or reject. Positions in errors from parsing the result refer to the
// normalized text.
func Normalize(raw string) string {
	return glyphs.Replace(raw)
}
