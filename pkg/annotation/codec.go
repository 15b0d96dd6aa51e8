package annotation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/forecal/forecal/pkg/weather"
)

// unavailableText is appended when no weather data could be obtained. A
// parenthetical is always appended so that a later Strip removes it again.
const unavailableText = "weather unavailable"

// innermostParens matches a parenthesized group with no nested parens.
// Repeated replacement peels nested groups from the inside out.
var innermostParens = regexp.MustCompile(`\([^()]*\)`)

// emojiRanges covers the Unicode blocks this codec strips. Deliberately wider
// than what Compose emits: titles may carry emoji from other tools.
var emojiRanges = [][2]rune{
	{0x1F1E6, 0x1F1FF}, // regional indicators (flags)
	{0x1F300, 0x1F5FF}, // symbols and pictographs
	{0x1F600, 0x1F64F}, // emoticons
	{0x1F680, 0x1F6FF}, // transport and map
	{0x1F900, 0x1F9FF}, // supplemental symbols
	{0x1FA70, 0x1FAFF}, // extended symbols
	{0x2600, 0x26FF},   // miscellaneous symbols
	{0x2700, 0x27BF},   // dingbats
	{0x2B00, 0x2BFF},   // arrows and stars
	{0xFE0F, 0xFE0F},   // variation selector
}

// Strip removes every parenthesized substring and every emoji rune, then
// trims surrounding whitespace. Strip is idempotent.
func Strip(title string) string {
	stripped := title
	for {
		next := innermostParens.ReplaceAllString(stripped, "")
		if next == stripped {
			break
		}
		stripped = next
	}

	stripped = strings.Map(func(r rune) rune {
		for _, rng := range emojiRanges {
			if r >= rng[0] && r <= rng[1] {
				return -1
			}
		}
		return r
	}, stripped)

	return strings.TrimSpace(stripped)
}

// Compose appends the weather parenthetical to a clean title. The unavailable
// sentinel still produces a visible parenthetical, never a bare title, so the
// Strip/Compose round trip stays stable.
func Compose(clean string, d weather.Descriptor) string {
	if d.IsUnavailable() {
		return strings.TrimSpace(fmt.Sprintf("%s (%s)", clean, unavailableText))
	}
	return strings.TrimSpace(fmt.Sprintf("%s (%s, %d°C)", clean, d.Condition, d.TemperatureC))
}
