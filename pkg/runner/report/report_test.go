package report

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"tableflip.dev/shelf/pkg/app"
	"tableflip.dev/shelf/pkg/book"
	"tableflip.dev/shelf/pkg/store"
)

var now = time.Date(2025, time.March, 10, 12, 0, 0, 0, time.UTC)

func seeded(t *testing.T) *app.Service {
	t.Helper()
	p, err := store.Load(store.PathConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	recent := book.Stamp(now.Add(-48 * time.Hour))
	old := book.Stamp(now.Add(-30 * 24 * time.Hour))
	b := &book.Book{
		ID:     "dune",
		Title:  "Dune",
		Author: "Frank Herbert",
		Chapters: []book.Chapter{
			{Name: "Prologue", Completed: true, CompletedDate: &old},
			{Name: "Arrakis", Completed: true, CompletedDate: &recent},
			{Name: "Chapter 3"},
		},
	}
	if err := p.Append(context.Background(), b); err != nil {
		t.Fatalf("append: %v", err)
	}
	return &app.Service{Persistence: p}
}

func TestReportWindow(t *testing.T) {
	var out bytes.Buffer
	r := Report{Last: "1w", Out: &out, Now: func() time.Time { return now }, Service: seeded(t)}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	s := out.String()
	if !strings.Contains(s, "Arrakis") {
		t.Fatalf("expected recent chapter; out=%q", s)
	}
	if strings.Contains(s, "Prologue") {
		t.Fatalf("expected old chapter to be excluded; out=%q", s)
	}
}

func TestReportJSON(t *testing.T) {
	var out bytes.Buffer
	r := Report{Last: "2mo", JSON: true, Out: &out, Now: func() time.Time { return now }, Service: seeded(t)}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("report: %v", err)
	}
	var got struct {
		Window string
		Total  int
	}
	if err := json.Unmarshal(out.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v; out=%q", err, out.String())
	}
	if got.Window != "2mo" || got.Total != 2 {
		t.Fatalf("unexpected report %+v", got)
	}
}

func TestReportInvalidWindow(t *testing.T) {
	r := Report{Last: "soon", Out: &bytes.Buffer{}, Service: seeded(t)}
	if err := r.Do(context.Background()); err == nil {
		t.Fatalf("expected invalid window error")
	}
}
