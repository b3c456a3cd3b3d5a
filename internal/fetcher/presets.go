package fetcher

import "context"

// Preset constraints used by the interactive commands. PopularFloor and
// RecentCutoff are exported because the CLI flags --popular and --recent
// apply the same presets to a one-shot search.
const (
	// nameSearchLimit keeps name lookups short; a substring query rarely
	// needs more than a screenful.
	nameSearchLimit = 20

	// taskDownloadFloor hides barely used models from task listings unless
	// the caller asks for everything.
	taskDownloadFloor = 1000

	// PopularFloor is the download count a model needs to appear in the
	// popular listing.
	PopularFloor = 10000

	// RecentCutoff is the creation date floor for the recent listing.
	RecentCutoff = "2024-01-01"
)

// SearchByName finds models whose name contains the given substring.
func (s *ModelSearcher) SearchByName(ctx context.Context, name string) []Record {
	return s.Search(ctx, Filters{Query: name, Limit: nameSearchLimit})
}

// SearchByTask lists models for one pipeline task. Unless includeAll is set,
// models with fewer than 1000 downloads are dropped.
func (s *ModelSearcher) SearchByTask(ctx context.Context, task string, includeAll bool) []Record {
	f := Filters{Task: task}
	if !includeAll {
		f.MinDownloads = taskDownloadFloor
	}
	return s.Search(ctx, f)
}

// SearchByOrg lists models published under one hub namespace.
func (s *ModelSearcher) SearchByOrg(ctx context.Context, org string) []Record {
	return s.Search(ctx, Filters{Organization: org})
}

// Popular lists widely downloaded models, optionally restricted to a task.
func (s *ModelSearcher) Popular(ctx context.Context, task string) []Record {
	return s.Search(ctx, Filters{Task: task, Sort: SortDownloads, MinDownloads: PopularFloor})
}

// Recent lists models created since 2024, newest first, optionally
// restricted to a task.
func (s *ModelSearcher) Recent(ctx context.Context, task string) []Record {
	return s.Search(ctx, Filters{Task: task, Sort: SortCreated, CreatedAfter: RecentCutoff})
}
