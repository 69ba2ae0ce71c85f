package content

import (
	"cmp"
	"slices"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/goliatone/go-sitecontent/internal/runtimeconfig"
	"github.com/goliatone/go-sitecontent/pkg/interfaces"
)

// Comparator orders two posts; a negative result sorts a first.
type Comparator func(a, b interfaces.Post) int

// NewComparator returns the comparator for a section order. Unknown orders
// fall back to runtimeconfig.OrderDate. The comparator owns a collator and
// must not be shared between goroutines.
func NewComparator(order string) Comparator {
	titles := collate.New(language.English)
	byDate := func(a, b interfaces.Post) int {
		return compareDateFirst(a, b, titles)
	}
	if strings.EqualFold(strings.TrimSpace(order), runtimeconfig.OrderWeight) {
		return func(a, b interfaces.Post) int {
			return compareWeightFirst(a, b, byDate)
		}
	}
	return byDate
}

// SortPosts sorts posts in place with the comparator for order. The sort is
// stable.
func SortPosts(posts []interfaces.Post, order string) {
	compare := NewComparator(order)
	slices.SortStableFunc(posts, func(a, b interfaces.Post) int {
		return compare(a, b)
	})
}

func sortResults(results []interfaces.PostResult, order string) {
	compare := NewComparator(order)
	slices.SortStableFunc(results, func(a, b interfaces.PostResult) int {
		return compare(a.Post, b.Post)
	})
}

// compareDateFirst puts dated posts first (newest first), then orders undated
// posts that both carry a weight by ascending weight, then by title.
func compareDateFirst(a, b interfaces.Post, titles *collate.Collator) int {
	switch {
	case a.HasDate() && b.HasDate():
		// ISO dates order lexically
		if c := strings.Compare(b.Date, a.Date); c != 0 {
			return c
		}
	case a.HasDate():
		return -1
	case b.HasDate():
		return 1
	case a.HasWeight() && b.HasWeight():
		if c := cmp.Compare(a.WeightValue(), b.WeightValue()); c != 0 {
			return c
		}
	}

	if c := titles.CompareString(a.Title, b.Title); c != 0 {
		return c
	}
	return strings.Compare(a.Slug, b.Slug)
}

// compareWeightFirst puts weighted posts first (lightest first) and falls back
// to byDate for ties and for posts without a weight.
func compareWeightFirst(a, b interfaces.Post, byDate Comparator) int {
	switch {
	case a.HasWeight() && b.HasWeight():
		if c := cmp.Compare(a.WeightValue(), b.WeightValue()); c != 0 {
			return c
		}
	case a.HasWeight():
		return -1
	case b.HasWeight():
		return 1
	}
	return byDate(a, b)
}
