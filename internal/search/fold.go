package search

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/tbourn/go-table-order/internal/domain"
)

// apostrophes covers the many ways the Uzbek Latin o‘/g‘ and the tutuq
// belgisi get typed.
var apostrophes = strings.NewReplacer(
	"'", "",
	"‘", "",
	"’", "",
	"ʻ", "",
	"ʼ", "",
	"`", "",
	"´", "",
)

// Fold lower-cases s, removes combining marks and drops apostrophe
// variants. Casers and transformers are stateful, so both are built per call.
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return apostrophes.Replace(cases.Fold().String(out))
}

// MenuDocs builds one searchable document per menu item from its name,
// category and description.
func MenuDocs(items []domain.MenuItem) []Doc {
	docs := make([]Doc, 0, len(items))
	for _, it := range items {
		docs = append(docs, Doc{
			ID:   it.ID,
			Text: strings.Join([]string{it.Name, it.Category, it.Description}, " "),
		})
	}
	return docs
}
