package tui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/akasprzok/cubeplot/internal/cube"
	"github.com/akasprzok/cubeplot/internal/dashboard"
	tea "github.com/charmbracelet/bubbletea"
)

func demoComposer() *dashboard.Composer {
	def := dashboard.DefaultDefinition()
	dates := dashboard.DefaultDateRange()
	return dashboard.NewComposer(dashboard.NewDemoClient(def, dates, dashboard.DefaultDemoSeed), def)
}

func loaded(t *testing.T, c *dashboard.Composer) Model {
	t.Helper()
	m := NewModel(c, time.Second)
	m.width = 100
	updated, _ := m.Update(loadedMsg{dashboard: c.Load(context.Background())})
	return updated.(Model)
}

func TestNewModelShowsPlaceholders(t *testing.T) {
	m := NewModel(demoComposer(), time.Second)

	if m.state != StateLoading {
		t.Errorf("state = %v, want StateLoading", m.state)
	}
	card, ok := m.ActiveCard()
	if !ok || card.ID != dashboard.SalesCardID {
		t.Errorf("ActiveCard() = %v, %v, want %s", card.ID, ok, dashboard.SalesCardID)
	}
	if !strings.Contains(m.View(), "₹125.49") {
		t.Errorf("View() missing placeholder total:\n%s", m.View())
	}
}

func TestUpdateLoaded(t *testing.T) {
	m := loaded(t, demoComposer())

	if m.state != StateReady {
		t.Errorf("state = %v, want StateReady", m.state)
	}
	if !strings.Contains(m.View(), "₹1.3L") {
		t.Errorf("View() missing loaded total:\n%s", m.View())
	}
	if !strings.Contains(m.View(), "This Month") {
		t.Error("View() missing legend")
	}
}

func TestTabNavigation(t *testing.T) {
	m := loaded(t, demoComposer())

	tests := []struct {
		key  tea.KeyMsg
		want string
	}{
		{key: tea.KeyMsg{Type: tea.KeyTab}, want: dashboard.QuantityCardID},
		{key: tea.KeyMsg{Type: tea.KeyRight}, want: dashboard.TopCitiesCardID},
		{key: tea.KeyMsg{Type: tea.KeyTab}, want: dashboard.SKUTableCardID},
		{key: tea.KeyMsg{Type: tea.KeyTab}, want: dashboard.CityTableCardID},
		{key: tea.KeyMsg{Type: tea.KeyTab}, want: dashboard.SalesCardID},
		{key: tea.KeyMsg{Type: tea.KeyShiftTab}, want: dashboard.CityTableCardID},
		{key: tea.KeyMsg{Type: tea.KeyLeft}, want: dashboard.SKUTableCardID},
	}

	var model tea.Model = m
	for _, tt := range tests {
		model, _ = model.Update(tt.key)
		card, _ := model.(Model).ActiveCard()
		if card.ID != tt.want {
			t.Errorf("after %s ActiveCard() = %s, want %s", tt.key, card.ID, tt.want)
		}
	}
}

func TestGaugeTab(t *testing.T) {
	m := loaded(t, demoComposer()).selectTab(2)

	view := m.View()
	for _, want := range []string{"Top Cities", "New Delhi", "Others", "-3.3%"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}

func TestTableTabFilterOwnsKeys(t *testing.T) {
	m := loaded(t, demoComposer()).selectTab(3)

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'/'}})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})

	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Fatal("q quit while the filter was focused")
		}
	}
	card, _ := model.(Model).ActiveCard()
	if card.ID != dashboard.SKUTableCardID {
		t.Errorf("ActiveCard() = %s, want %s", card.ID, dashboard.SKUTableCardID)
	}
}

func TestQuit(t *testing.T) {
	m := loaded(t, demoComposer())
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatal("Update(q) returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Update(q) did not quit")
	}
}

func TestFailedLoadKeepsPlaceholders(t *testing.T) {
	client := &cube.MockClient{
		LoadFunc: func(context.Context, []cube.Query) ([]cube.Result, error) {
			return nil, errors.New("connection refused")
		},
	}
	c := dashboard.NewComposer(client, dashboard.DefaultDefinition())
	m := loaded(t, c)

	view := m.View()
	if !strings.Contains(view, "₹125.49") {
		t.Errorf("View() missing placeholder total:\n%s", view)
	}
	if !strings.Contains(view, "connection refused") {
		t.Errorf("View() missing error:\n%s", view)
	}
}

func TestLoadCommand(t *testing.T) {
	m := NewModel(demoComposer(), time.Second)
	msg := m.load()()
	lm, ok := msg.(loadedMsg)
	if !ok {
		t.Fatalf("load() returned %T, want loadedMsg", msg)
	}
	if len(lm.dashboard.Views) != 5 {
		t.Errorf("loaded %d views, want 5", len(lm.dashboard.Views))
	}
}
