package podcast

import (
	"fmt"
	"hash/fnv"
	"strings"
)

const (
	SlugSourceLookup  = "lookup"
	SlugSourceDerived = "derived"
)

// SlugResult is a canonical location identifier plus how it was obtained.
type SlugResult struct {
	Slug   string
	Source string
}

// knownSlugs maps normalized location names to canonical slugs so the
// same landmark asked for in different languages lands on one subject.
var knownSlugs = map[string]string{
	"eiffel tower":             "eiffel-tower",
	"에펠탑":                      "eiffel-tower",
	"louvre":                   "louvre-museum",
	"louvre museum":            "louvre-museum",
	"루브르 박물관":                  "louvre-museum",
	"british museum":           "british-museum",
	"대영박물관":                    "british-museum",
	"colosseum":                "colosseum",
	"콜로세움":                     "colosseum",
	"gyeongbokgung":            "gyeongbokgung-palace",
	"gyeongbokgung palace":     "gyeongbokgung-palace",
	"경복궁":                      "gyeongbokgung-palace",
	"national museum of korea": "national-museum-korea",
	"국립중앙박물관":                  "national-museum-korea",
	"sagrada familia":          "sagrada-familia",
	"사그라다 파밀리아":                "sagrada-familia",
}

// ResolveSlug turns free-text user input into a stable slug. Known
// locations hit the lookup table; everything else gets a derived slug so
// repeat requests for the same text converge on the same subject.
func ResolveSlug(freeText string) SlugResult {
	key := strings.ToLower(strings.TrimSpace(freeText))
	if slug, ok := knownSlugs[key]; ok {
		return SlugResult{Slug: slug, Source: SlugSourceLookup}
	}
	return SlugResult{Slug: deriveSlug(key), Source: SlugSourceDerived}
}

func deriveSlug(normalized string) string {
	var b strings.Builder
	lastHyphen := true
	for _, r := range normalized {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			lastHyphen = false
		case r == ' ' || r == '-' || r == '_' || r == '.':
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	slug := strings.Trim(b.String(), "-")
	if len(slug) >= 2 {
		return slug
	}
	// Non-Latin input strips to nothing; hash it so the slug stays
	// stable across requests.
	h := fnv.New32a()
	h.Write([]byte(normalized))
	return fmt.Sprintf("location-%08x", h.Sum32())
}
