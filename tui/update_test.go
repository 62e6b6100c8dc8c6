package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestHandleKeyMsgQuit(t *testing.T) {
	for _, msg := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		model, _ := newTestModel()
		result, cmd := model.handleKeyMsg(msg)

		newModel, ok := result.(Model)
		if !ok {
			t.Fatal("handleKeyMsg() should return a Model")
		}
		if !newModel.quitting {
			t.Errorf("handleKeyMsg(%s).quitting should be true", msg.String())
		}
		if cmd == nil {
			t.Errorf("handleKeyMsg(%s) should return tea.Quit cmd", msg.String())
		}
	}
}

func TestHandleKeyMsgReload(t *testing.T) {
	model, lister := newTestModel()
	model = resized(t, model, 80, 24)

	result, _ := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	if _, ok := result.(Model); !ok {
		t.Fatal("handleKeyMsg() should return a Model")
	}
	if lister.reloads != 1 {
		t.Errorf("Reload() called %d times, want 1", lister.reloads)
	}
}

func TestHandleKeyMsgBeforeReady(t *testing.T) {
	model, _ := newTestModel()
	result, cmd := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	if _, ok := result.(Model); !ok || cmd != nil {
		t.Error("scroll keys before the first size should do nothing")
	}
}

func TestHandleKeyMsgScrolls(t *testing.T) {
	model, _ := newTestModel()
	model = resized(t, model, 80, 4)
	model.viewport.SetContent("1\n2\n3\n4\n5\n6\n7\n8\n9\n10")

	result, _ := model.handleKeyMsg(tea.KeyMsg{Type: tea.KeyDown})
	model = result.(Model)
	if model.viewport.YOffset != 1 {
		t.Errorf("YOffset = %d after scrolling down, want 1", model.viewport.YOffset)
	}
}
