package tui

import (
	"strings"
	"testing"
)

func TestViewQuitting(t *testing.T) {
	model, _ := newTestModel()
	model.quitting = true

	if view := model.View(); view != "" {
		t.Errorf("View() when quitting = %q, want empty", view)
	}
}

func TestViewLoading(t *testing.T) {
	model, _ := newTestModel()

	view := model.View()
	if !strings.Contains(view, "Loading /work") {
		t.Errorf("View() when loading = %q", view)
	}
}

func TestViewReady(t *testing.T) {
	model, _ := newTestModel()
	model = resized(t, model, 80, 24)
	model.lastUpdate = "10:00:00"
	model.watching = true

	view := model.View()
	for _, want := range []string{"/work", "1,234 entries", "watching", "10:00:00", "listing at 80 columns", "q: quit"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() should contain %q, got:\n%s", want, view)
		}
	}
}

func TestViewFooterShowsScrollPosition(t *testing.T) {
	model, _ := newTestModel()
	model = resized(t, model, 80, 4)
	model.viewport.SetContent(strings.Repeat("line\n", 20))

	if !strings.Contains(model.renderFooter(), "%") {
		t.Errorf("renderFooter() = %q, want a scroll percentage", model.renderFooter())
	}
}
