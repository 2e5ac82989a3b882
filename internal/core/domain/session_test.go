package domain

import (
	"testing"
	"time"
)

func TestSplitTags(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want []string
	}{
		{"simple", "yoga,relax", []string{"yoga", "relax"}},
		{"trims whitespace", " morning , flow ", []string{"morning", "flow"}},
		{"drops empty segments", "a,,b,", []string{"a", "b"}},
		{"empty input", "", []string{}},
		{"only commas", ",,,", []string{}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitTags(tc.in)
			if len(got) != len(tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("expected %v, got %v", tc.want, got)
				}
			}
		})
	}
}

func TestSession_MarkPublished_StampsOnce(t *testing.T) {
	s := &Session{Status: StatusDraft}

	first := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s.MarkPublished(first)

	if s.Status != StatusPublished {
		t.Fatalf("expected published status, got %s", s.Status)
	}
	if s.PublishedAt == nil || !s.PublishedAt.Equal(first) {
		t.Fatalf("expected publishedAt %v, got %v", first, s.PublishedAt)
	}

	second := first.Add(48 * time.Hour)
	s.MarkPublished(second)

	if !s.PublishedAt.Equal(first) {
		t.Fatalf("publishedAt changed on re-publish: %v", s.PublishedAt)
	}
}

func TestSession_MarkDraft(t *testing.T) {
	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	s := &Session{Status: StatusPublished}
	s.MarkDraft(now)

	if s.Status != StatusDraft {
		t.Fatalf("expected draft status, got %s", s.Status)
	}
	if !s.LastSaved.Equal(now) {
		t.Fatalf("expected lastSaved %v, got %v", now, s.LastSaved)
	}
}
