package food

import "strings"

// Turkish letters folded to their ASCII neighbours before lowercasing, so
// "Çay" and "çay" both end up as "cay". Covering the uppercase forms here
// also sidesteps the dotted/dotless i pair, which strings.ToLower alone
// mangles (İ lowercases to i + combining dot).
var turkishFold = strings.NewReplacer(
	"ç", "c", "Ç", "c",
	"ğ", "g", "Ğ", "g",
	"ş", "s", "Ş", "s",
	"ü", "u", "Ü", "u",
	"ö", "o", "Ö", "o",
	"ı", "i", "İ", "i",
)

// Slugify derives the public URL key from a description: diacritics folded,
// lowercased, whitespace runs joined with single hyphens. It is idempotent;
// slugifying a slug returns the same slug.
func Slugify(description string) string {
	folded := strings.ToLower(turkishFold.Replace(description))
	return strings.Join(strings.Fields(folded), "-")
}
