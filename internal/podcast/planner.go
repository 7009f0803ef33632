package podcast

import (
	"fmt"
	"strings"
)

// Chapter is one planned section of an episode. Chapters are transient:
// the planner produces them, a single generation run consumes them, and
// only the resulting segments and timeline are persisted.
type Chapter struct {
	ChapterIndex   int
	Title          string
	Description    string
	TargetDuration int
	ContentFocus   []string
	TransitionText string
}

// Subject identifies what an episode is about.
type Subject struct {
	LocationName string
	Slug         string
	Language     string
	Context      LocationContext
}

// LocationContext carries optional hints from the caller about the
// location. Kind selects the chapter template.
type LocationContext struct {
	City    string
	Country string
	Kind    string
}

const (
	KindMuseum   = "museum"
	KindTemple   = "temple"
	KindShopping = "shopping"
	KindNature   = "nature"
	KindGeneral  = "general"
)

// targetChapterDuration is the planning budget per body chapter, in
// seconds. Actual chapter length is whatever the dialogue adds up to.
const targetChapterDuration = 690

type chapterTemplate struct {
	title       string
	description string
	focus       []string
}

var kindTemplates = map[string][]chapterTemplate{
	KindMuseum: {
		{"Permanent Collection Highlights", "the signature works every visitor comes for", []string{"flagship artworks", "artist backstories", "how to read the works"}},
		{"Hidden Corners and Special Exhibitions", "what the crowds walk past", []string{"rotating exhibitions", "overlooked galleries", "curator favorites"}},
		{"The Building Itself", "architecture and the spaces between the art", []string{"architectural history", "notable rooms", "views and vantage points"}},
	},
	KindTemple: {
		{"Sacred Grounds", "the main halls and what happens in them", []string{"main hall", "rituals and ceremonies", "etiquette for visitors"}},
		{"Stories in the Stones", "history, legends, and symbolism", []string{"founding legends", "symbolic details", "historical turning points"}},
	},
	KindShopping: {
		{"The Main Drag", "the streets and stalls that define the district", []string{"signature shops", "street food", "haggling culture"}},
		{"Local Finds", "what residents actually buy here", []string{"local specialties", "side alleys", "best times to visit"}},
	},
	KindNature: {
		{"The Landscape", "how this place came to look the way it does", []string{"geology and formation", "flora and fauna", "seasonal character"}},
		{"Trails and Viewpoints", "the routes worth your legs", []string{"main routes", "viewpoints", "safety and timing"}},
	},
	KindGeneral: {
		{"What You're Looking At", "the essential story of this place", []string{"origin story", "defining features", "famous moments"}},
		{"Beyond the Postcard", "details and context most visitors miss", []string{"lesser-known facts", "local perspective", "how it fits the city"}},
	},
}

// DetectKind guesses a location kind from its name when the caller does
// not supply one.
func DetectKind(locationName string) string {
	name := strings.ToLower(locationName)
	switch {
	case strings.Contains(name, "museum") || strings.Contains(name, "gallery") || strings.Contains(name, "박물관") || strings.Contains(name, "미술관"):
		return KindMuseum
	case strings.Contains(name, "temple") || strings.Contains(name, "shrine") || strings.Contains(name, "cathedral") || strings.Contains(name, "palace") || strings.Contains(name, "궁") || strings.Contains(name, "사찰"):
		return KindTemple
	case strings.Contains(name, "market") || strings.Contains(name, "shopping") || strings.Contains(name, "시장"):
		return KindShopping
	case strings.Contains(name, "park") || strings.Contains(name, "mountain") || strings.Contains(name, "falls") || strings.Contains(name, "beach") || strings.Contains(name, "산") || strings.Contains(name, "공원"):
		return KindNature
	}
	return KindGeneral
}

// PlanChapters builds the ordered chapter list for a subject: an intro at
// index 0, kind-specific body chapters, and an outro when the body is
// substantial enough to need a send-off.
func PlanChapters(sub Subject) []Chapter {
	kind := sub.Context.Kind
	if _, ok := kindTemplates[kind]; !ok {
		kind = DetectKind(sub.LocationName)
	}
	templates := kindTemplates[kind]

	chapters := []Chapter{
		{
			ChapterIndex:   0,
			Title:          fmt.Sprintf("Welcome to %s", sub.LocationName),
			Description:    "setting the scene before stepping inside",
			TargetDuration: targetChapterDuration / 2,
			ContentFocus:   []string{"first impressions", "why this place matters", "what this guide covers", "practical orientation"},
			TransitionText: fmt.Sprintf("Now let's step into the first major area of %s.", sub.LocationName),
		},
	}

	for i, tpl := range templates {
		transition := fmt.Sprintf("Let's keep moving through %s.", sub.LocationName)
		chapters = append(chapters, Chapter{
			ChapterIndex:   i + 1,
			Title:          tpl.title,
			Description:    tpl.description,
			TargetDuration: targetChapterDuration,
			ContentFocus:   tpl.focus,
			TransitionText: transition,
		})
	}

	if len(templates) >= 2 {
		chapters = append(chapters, Chapter{
			ChapterIndex:   len(templates) + 1,
			Title:          "Before You Go",
			Description:    "closing thoughts and a proper send-off",
			TargetDuration: targetChapterDuration / 2,
			ContentFocus:   []string{"recap of highlights", "final tips", "farewell"},
		})
	}

	return chapters
}
