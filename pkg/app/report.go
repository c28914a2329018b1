package app

import (
	"context"
	"sort"
	"time"
)

// ReportItem is one chapter completed inside the report window.
type ReportItem struct {
	Chapter     string
	Position    int
	CompletedAt time.Time
}

// ReportSection groups completed chapters by book.
type ReportSection struct {
	BookID  string
	Title   string
	Author  string
	Entries []ReportItem
}

// ReportResult encapsulates a reading report for a time window.
type ReportResult struct {
	Since    time.Time
	Until    time.Time
	Sections []ReportSection
	Total    int
}

// Report returns chapters completed between the provided bounds, grouped by
// book. Sections are ordered by their most recent completion, newest first;
// chapters inside a section keep their book order.
func (s *Service) Report(ctx context.Context, since, until time.Time) (ReportResult, error) {
	if since.After(until) {
		since, until = until, since
	}
	books, err := s.Books(ctx)
	if err != nil {
		return ReportResult{}, err
	}

	result := ReportResult{Since: since, Until: until}
	latest := make(map[string]time.Time)
	for _, b := range books {
		section := ReportSection{BookID: b.ID, Title: b.Title, Author: b.Author}
		for i, c := range b.Chapters {
			if !c.Completed || c.CompletedDate == nil {
				continue
			}
			at := c.CompletedDate.Time
			if at.Before(since) || at.After(until) {
				continue
			}
			section.Entries = append(section.Entries, ReportItem{
				Chapter:     c.Name,
				Position:    i,
				CompletedAt: at,
			})
			if at.After(latest[b.ID]) {
				latest[b.ID] = at
			}
		}
		if len(section.Entries) == 0 {
			continue
		}
		result.Total += len(section.Entries)
		result.Sections = append(result.Sections, section)
	}

	sort.SliceStable(result.Sections, func(i, j int) bool {
		return latest[result.Sections[i].BookID].After(latest[result.Sections[j].BookID])
	})
	return result, nil
}
