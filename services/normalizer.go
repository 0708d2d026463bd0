package services

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

var (
	// acronymBoundary splits "HTMLParser" into "HTML" + "Parser"
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	// camelBoundary splits "costFor" into "cost" + "For"
	camelBoundary = regexp.MustCompile(`([a-z\d])([A-Z])`)

	wordSeparators = strings.NewReplacer("_", " ", "-", " ")
)

// SchemaNormalizer converts raw column labels into lower snake case.
type SchemaNormalizer struct{}

// NewSchemaNormalizer creates a SchemaNormalizer.
func NewSchemaNormalizer() *SchemaNormalizer {
	return &SchemaNormalizer{}
}

// Normalize maps every label to its canonical form, keeping order. Two labels
// that end up with the same canonical name are a fatal ErrSchemaCollision.
func (n *SchemaNormalizer) Normalize(labels []string) ([]string, error) {
	out := make([]string, len(labels))
	owner := make(map[string]int, len(labels))

	for i, label := range labels {
		canonical := n.NormalizeLabel(label)
		if canonical == "" {
			return nil, fmt.Errorf("%w: column %d (%q)", ErrEmptyColumnLabel, i, label)
		}
		if j, taken := owner[canonical]; taken {
			return nil, fmt.Errorf("%w: %q and %q both normalize to %q",
				ErrSchemaCollision, labels[j], label, canonical)
		}
		owner[canonical] = i
		out[i] = canonical
	}
	return out, nil
}

// NormalizeLabel converts one label:
//
//	"Restaurant ID"        -> "restaurant_id"
//	"Average Cost for two" -> "average_cost_for_two"
//	"hasOnlineDelivery"    -> "has_online_delivery"
func (n *SchemaNormalizer) NormalizeLabel(label string) string {
	titled := titleize(label)
	joined := strings.ReplaceAll(titled, " ", "")
	return underscore(joined)
}

// titleize produces a whitespace-normalized title form where every word
// starts with an upper-case letter and continues in lower case.
func titleize(label string) string {
	s := norm.NFKC.String(label)
	s = acronymBoundary.ReplaceAllString(s, "${1} ${2}")
	s = camelBoundary.ReplaceAllString(s, "${1} ${2}")
	s = wordSeparators.Replace(s)

	// cases.Caser keeps state, so one per call.
	caser := cases.Title(language.Und)
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = caser.String(w)
	}
	return strings.Join(words, " ")
}

func underscore(s string) string {
	s = acronymBoundary.ReplaceAllString(s, "${1}_${2}")
	s = camelBoundary.ReplaceAllString(s, "${1}_${2}")
	return strings.ToLower(s)
}
