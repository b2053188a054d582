package replay

import (
	"sort"

	"github.com/arvidhagen/replaykit/internal/model"
)

// MergeBreadcrumbs collects every breadcrumb entry across the given
// events and merges them into one chronologically sorted breadcrumbs
// entry. Returns nil when no event carries breadcrumbs. The sort is
// stable, so breadcrumbs with equal timestamps keep event order.
func MergeBreadcrumbs(events ...model.Event) *model.Entry {
	var crumbs []model.Breadcrumb
	for _, ev := range events {
		for _, entry := range ev.Entries {
			if entry.Type == model.EntryBreadcrumbs {
				crumbs = append(crumbs, entry.Breadcrumbs...)
			}
		}
	}
	if len(crumbs) == 0 {
		return nil
	}
	sort.SliceStable(crumbs, func(i, j int) bool {
		return crumbs[i].Timestamp < crumbs[j].Timestamp
	})
	entry := model.NewBreadcrumbsEntry(crumbs)
	return &entry
}
