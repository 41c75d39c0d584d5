package digest

import (
	"sort"
	"time"

	"intelhub/config"
	"intelhub/store"
	"intelhub/types"
)

// Compose builds the digest document for one department from candidate
// articles that are already window-filtered. It keeps articles for the
// department scoring at or above minScore, ranks them by score (stable, so
// ties keep their ingestion-recency order), and truncates to the top items.
//
// The result always renders, even with zero qualifying articles; the
// document then carries a single placeholder row.
func Compose(department string, candidates []types.Article, dateLabel string, minScore, windowHours int) types.Digest {
	selected := make([]types.Article, 0, len(candidates))
	for _, a := range candidates {
		if a.Analysis.Department == department && a.Analysis.Score >= minScore {
			selected = append(selected, a)
		}
	}

	sort.SliceStable(selected, func(i, j int) bool {
		return selected[i].Analysis.Score > selected[j].Analysis.Score
	})

	if len(selected) > config.DigestMaxItems {
		selected = selected[:config.DigestMaxItems]
	}

	items := make([]types.DigestItem, 0, len(selected))
	for _, a := range selected {
		items = append(items, types.DigestItem{Title: a.Title, URL: a.URL})
	}

	return types.Digest{
		ID:          store.DigestDocID(dateLabel, department),
		Date:        dateLabel,
		Department:  department,
		MinScore:    minScore,
		WindowHours: windowHours,
		CreatedAt:   time.Now().UTC(),
		Items:       items,
		HTML:        Render(department, selected, dateLabel),
	}
}
