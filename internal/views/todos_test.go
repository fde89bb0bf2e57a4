package views

import (
	"strings"
	"testing"
)

func TestRenderTodoListMarksCompletedRows(t *testing.T) {
	out := RenderTodoList(ListData{
		Fetched: true,
		Focused: true,
		Rows: []TodoRow{
			{ID: 1, Body: "Buy milk", Selected: true},
			{ID: 2, Body: "Walk dog", Completed: true},
		},
	})
	if !strings.Contains(out, "[ ] #1 Buy milk") {
		t.Fatalf("pending row missing: %q", out)
	}
	if !strings.Contains(out, "[x] #2") || !strings.Contains(out, "Walk dog") {
		t.Fatalf("completed row missing: %q", out)
	}
}

func TestRenderTodoListEmptyStates(t *testing.T) {
	cases := []struct {
		data ListData
		want string
	}{
		{ListData{}, "nothing loaded yet"},
		{ListData{Loading: true}, "loading todos"},
		{ListData{Fetched: true}, "no todos"},
		{ListData{Fetched: true, Err: "boom"}, "last fetch failed: boom"},
	}
	for _, tc := range cases {
		if out := RenderTodoList(tc.data); !strings.Contains(out, tc.want) {
			t.Fatalf("RenderTodoList(%+v) = %q, want %q", tc.data, out, tc.want)
		}
	}
}

func TestRenderFormShowsSubmitting(t *testing.T) {
	if out := RenderForm(FormData{Input: "draft"}); !strings.Contains(out, "Add") {
		t.Fatalf("expected add button, got %q", out)
	}
	if out := RenderForm(FormData{Input: "draft", Submitting: true}); !strings.Contains(out, "Adding") {
		t.Fatalf("expected submitting label, got %q", out)
	}
}

func TestRenderTabsNumbersFilters(t *testing.T) {
	out := RenderTabs([]TabData{{Label: "All", Active: true}, {Label: "Pending"}, {Label: "Completed"}})
	for _, want := range []string{"1 All", "2 Pending", "3 Completed"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing tab %q in %q", want, out)
		}
	}
}

func TestRenderAppIncludesSections(t *testing.T) {
	out := RenderApp(AppData{
		Header:       "todoui",
		LeftPane:     "left",
		RightPane:    "right",
		StatusLine:   "status: ready",
		Notification: "[info] Added: #1",
		Footer:       "keys",
	})
	for _, want := range []string{"todoui", "left", "right", "status: ready", "[info] Added: #1", "keys"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in app view", want)
		}
	}
}

func TestRenderMarkdownFallsBackOnEmpty(t *testing.T) {
	if out := RenderMarkdown("   "); out != "" {
		t.Fatalf("expected empty output, got %q", out)
	}
	if out := RenderMarkdown("**bold** text"); !strings.Contains(out, "bold") {
		t.Fatalf("expected rendered text, got %q", out)
	}
}

func TestRenderHeaderNamesTab(t *testing.T) {
	out := RenderHeader(HeaderData{Title: "todoui", Filter: "Completed", Shown: 4})
	if out != "todoui | Completed tab | 4 shown" {
		t.Fatalf("unexpected header %q", out)
	}
}
