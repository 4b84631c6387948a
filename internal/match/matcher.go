package match

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/google/uuid"
)

// Config holds the tuning constants for one matching mode. The auto
// trigger and the interactive scan share the same scoring code and differ
// only in these values.
type Config struct {
	// NameThreshold prunes a pair early when the item names are too
	// dissimilar, unless CategoryBoost > 0 and the categories match.
	NameThreshold float64
	// FinalThreshold is applied to the weighted final score (0..1 scale);
	// pairs at or below it are dropped.
	FinalThreshold float64
	// BoostFactor is added to the text score once per identification-mark
	// token found verbatim in the candidate text.
	BoostFactor float64
	// CategoryBoost is added to the text score when categories are equal.
	// Zero disables category handling entirely.
	CategoryBoost float64
	NameWeight    float64
	TextWeight    float64
	// HighConfidence marks candidates at or above this percent score.
	HighConfidence int
}

// AutoTrigger is tuned for recall: it runs unattended after every new
// report, so it keeps loose thresholds and rewards matching details.
var AutoTrigger = Config{
	NameThreshold:  0.3,
	FinalThreshold: 0.2,
	BoostFactor:    0.15,
	CategoryBoost:  0.2,
	NameWeight:     0.6,
	TextWeight:     0.4,
	HighConfidence: 70,
}

// Interactive is tuned for precision: an operator reviews the results of
// an exhaustive on-demand scan, so weak pairs are not worth showing.
var Interactive = Config{
	NameThreshold:  0.5,
	FinalThreshold: 0.4,
	BoostFactor:    0.1,
	CategoryBoost:  0,
	NameWeight:     0.6,
	TextWeight:     0.4,
	HighConfidence: 70,
}

// Item is the matcher's view of a report: a name, a category and the
// concatenated descriptive text. BoostTokens carries the lost report's
// identification-mark tokens; it stays empty on the found side.
type Item struct {
	ID          uuid.UUID
	Name        string
	Category    string
	Text        string
	BoostTokens []string
}

// Candidate is one surviving scored pair. Scores are integer percents.
type Candidate struct {
	Item            Item
	NameScore       int
	TextScore       int
	FinalScore      int
	BoostedKeywords []string
	HighConfidence  bool
}

var wordSplit = regexp.MustCompile(`\W+`)

// BoostTokens extracts the identification-mark tokens used for the
// keyword boost: lower-cased, split on non-word runes, short noise
// tokens dropped.
func BoostTokens(mark string) []string {
	if mark == "" {
		return nil
	}
	parts := wordSplit.Split(strings.ToLower(mark), -1)
	tokens := make([]string, 0, len(parts))
	for _, p := range parts {
		if len(p) > 2 {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// FindCandidates scores one report against a corpus of opposite-type
// reports and returns the surviving pairs ranked by final score
// descending. Ties keep corpus order. Pure: no side effects.
func FindCandidates(report Item, corpus []Item, cfg Config) []Candidate {
	name := strings.ToLower(report.Name)
	text := strings.ToLower(report.Text)

	results := make([]Candidate, 0)
	for _, other := range corpus {
		otherName := strings.ToLower(other.Name)
		otherText := strings.ToLower(other.Text)

		categoryMatch := false
		if cfg.CategoryBoost > 0 && report.Category != "" && other.Category != "" {
			categoryMatch = strings.EqualFold(report.Category, other.Category)
		}

		nameScore := Similarity(name, otherName)
		if nameScore < cfg.NameThreshold && !categoryMatch {
			continue
		}

		textScore := Similarity(text, otherText)
		if categoryMatch {
			textScore = math.Min(textScore+cfg.CategoryBoost, 1.0)
		}

		// Identification-mark tokens live on the lost side only; match
		// them against the opposite text whichever side this report is.
		var boosted []string
		for _, tok := range report.BoostTokens {
			if strings.Contains(otherText, tok) {
				boosted = append(boosted, tok)
			}
		}
		for _, tok := range other.BoostTokens {
			if strings.Contains(text, tok) {
				boosted = append(boosted, tok)
			}
		}
		if len(boosted) > 0 {
			textScore = math.Min(textScore+cfg.BoostFactor*float64(len(boosted)), 1.0)
		}

		finalScore := nameScore*cfg.NameWeight + textScore*cfg.TextWeight
		finalPercent := int(math.Round(finalScore * 100))
		if float64(finalPercent) <= cfg.FinalThreshold*100 {
			continue
		}

		results = append(results, Candidate{
			Item:            other,
			NameScore:       int(math.Round(nameScore * 100)),
			TextScore:       int(math.Round(textScore * 100)),
			FinalScore:      finalPercent,
			BoostedKeywords: boosted,
			HighConfidence:  finalPercent >= cfg.HighConfidence,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].FinalScore > results[j].FinalScore
	})
	return results
}
