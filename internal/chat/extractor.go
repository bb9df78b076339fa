package chat

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"tripplanner/internal/catalog"
	"tripplanner/internal/domain"
)

const (
	defaultDurationDays = 3
	maxDurationDays     = 14
)

var planningKeywords = []string{"plan", "trip", "itinerary", "visit", "travel to", "going to"}

var defaultInterests = []string{"sightseeing", "food", "culture"}

// interestVocabulary maps words found in a message to a normalised interest.
var interestVocabulary = map[string]string{
	"food":         "food",
	"eat":          "food",
	"restaurant":   "food",
	"culture":      "culture",
	"history":      "history",
	"historic":     "history",
	"museum":       "museums",
	"museums":      "museums",
	"art":          "art",
	"nature":       "nature",
	"park":         "nature",
	"hike":         "nature",
	"shopping":     "shopping",
	"shop":         "shopping",
	"nightlife":    "nightlife",
	"bars":         "nightlife",
	"tech":         "tech",
	"architecture": "architecture",
	"views":        "sightseeing",
	"sightseeing":  "sightseeing",
}

var (
	durationPattern = regexp.MustCompile(`(\d+)\s*-?\s*(?:day|days|night|nights)\b`)
	weekPattern     = regexp.MustCompile(`\b(?:a|one)\s+week\b`)
	weekendPattern  = regexp.MustCompile(`\bweekend\b`)
	budgetPattern   = regexp.MustCompile(`(?:\$\s?(\d+(?:\.\d+)?))|(?:budget(?:\s+of)?\s+(\d+(?:\.\d+)?))`)
	wordPattern     = regexp.MustCompile(`[a-z]+`)
)

// Reply is the outcome of reading one user message.
type Reply struct {
	Text             string
	RequiresPlanning bool
	Preferences      *domain.Preferences
}

// Extractor turns free text into a reply and, when possible, structured preferences.
type Extractor interface {
	Extract(ctx context.Context, message string, hints map[string]any) (Reply, error)
}

// DestinationSource lists the destinations that can actually be planned.
type DestinationSource interface {
	Destinations() []catalog.Destination
}

// KeywordExtractor recognises planning intent and preferences with simple
// keyword and pattern matching.
type KeywordExtractor struct {
	destinations []destinationMatcher
	logger       *zap.Logger
}

type destinationMatcher struct {
	name    string
	pattern *regexp.Regexp
}

// NewKeywordExtractor builds matchers for every destination name and alias in src.
func NewKeywordExtractor(src DestinationSource, logger *zap.Logger) *KeywordExtractor {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &KeywordExtractor{logger: logger}
	for _, d := range src.Destinations() {
		names := append([]string{d.Name}, d.Aliases...)
		quoted := make([]string, len(names))
		for i, n := range names {
			quoted[i] = regexp.QuoteMeta(strings.ToLower(n))
		}
		e.destinations = append(e.destinations, destinationMatcher{
			name:    d.Name,
			pattern: regexp.MustCompile(`\b(?:` + strings.Join(quoted, "|") + `)\b`),
		})
	}
	return e
}

// Extract reads message and optional hint overrides ("destination",
// "duration_days", "budget"). Planning is only requested once a known
// destination has been identified.
func (e *KeywordExtractor) Extract(ctx context.Context, message string, hints map[string]any) (Reply, error) {
	lower := strings.ToLower(message)

	wantsPlan := false
	for _, kw := range planningKeywords {
		if strings.Contains(lower, kw) {
			wantsPlan = true
			break
		}
	}

	destination := e.matchDestination(lower)
	if v, ok := hints["destination"].(string); ok && v != "" {
		destination = e.matchDestination(strings.ToLower(v))
	}

	if destination == "" {
		e.logger.Debug("No destination recognised", zap.Bool("wants_plan", wantsPlan))
		return Reply{Text: "I'm your AI travel assistant! Where would you like to explore?"}, nil
	}

	prefs := &domain.Preferences{
		Destination:  destination,
		DurationDays: parseDuration(lower),
		Interests:    parseInterests(lower),
		Budget:       parseBudget(lower),
	}
	if days, ok := intFromHints(hints, "duration_days"); ok {
		prefs.DurationDays = clampDays(days)
	}
	if budget, ok := floatFromHints(hints, "budget"); ok {
		prefs.Budget = &budget
	}

	text := fmt.Sprintf("I'd be happy to help you plan a trip to %s! "+
		"To fine-tune the itinerary, tell me how many days you're staying, "+
		"what you're into (food, culture, nature, tech...) and whether you have a budget in mind.", destination)
	if wantsPlan {
		text = fmt.Sprintf("Here's a %d-day plan for %s. Drag attractions to reorder them, "+
			"remove anything that doesn't fit, or ask me to discover more places.", prefs.DurationDays, destination)
	}

	return Reply{
		Text:             text,
		RequiresPlanning: wantsPlan,
		Preferences:      prefs,
	}, nil
}

func (e *KeywordExtractor) matchDestination(lower string) string {
	for _, d := range e.destinations {
		if d.pattern.MatchString(lower) {
			return d.name
		}
	}
	return ""
}

func parseDuration(lower string) int {
	if m := durationPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			return clampDays(n)
		}
	}
	if weekPattern.MatchString(lower) {
		return 7
	}
	if weekendPattern.MatchString(lower) {
		return 2
	}
	return defaultDurationDays
}

func clampDays(n int) int {
	switch {
	case n < 1:
		return 1
	case n > maxDurationDays:
		return maxDurationDays
	}
	return n
}

func parseInterests(lower string) []string {
	seen := make(map[string]bool)
	var interests []string
	for _, word := range wordPattern.FindAllString(lower, -1) {
		interest, ok := interestVocabulary[word]
		if !ok || seen[interest] {
			continue
		}
		seen[interest] = true
		interests = append(interests, interest)
	}
	if len(interests) == 0 {
		return append([]string(nil), defaultInterests...)
	}
	return interests
}

func parseBudget(lower string) *float64 {
	m := budgetPattern.FindStringSubmatch(lower)
	if m == nil {
		return nil
	}
	raw := m[1]
	if raw == "" {
		raw = m[2]
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}

// intFromHints accepts JSON numbers (float64), ints and numeric strings.
func intFromHints(hints map[string]any, key string) (int, bool) {
	f, ok := floatFromHints(hints, key)
	if !ok {
		return 0, false
	}
	return int(math.Round(f)), true
}

func floatFromHints(hints map[string]any, key string) (float64, bool) {
	switch v := hints[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		return f, err == nil
	}
	return 0, false
}

var _ Extractor = (*KeywordExtractor)(nil)
