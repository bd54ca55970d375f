package ui

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/stories/internal/catalog"
	"github.com/five82/stories/internal/persist"
	"github.com/five82/stories/internal/query"
	"github.com/five82/stories/internal/results"
)

const testEndpoint = "http://hn.test/api/v1/search?query="

type fetchFunc func(ctx context.Context, rawURL string) ([]catalog.Record, error)

func (f fetchFunc) Fetch(ctx context.Context, rawURL string) ([]catalog.Record, error) {
	return f(ctx, rawURL)
}

type harness struct {
	kv     *persist.MemoryStore
	store  *results.Store
	ctrl   *query.Controller
	calls  []string
	opened []string
	fail   bool
}

func story(id, title, link string) catalog.Record {
	return catalog.Record{ID: id, Fields: map[string]any{
		"objectID": id,
		"title":    title,
		"url":      link,
		"author":   "pg",
	}}
}

func newHarness(t *testing.T, schema catalog.Schema, logPath string) (*harness, Model) {
	t.Helper()
	return newHarnessWith(t, persist.NewMemoryStore(), schema, logPath)
}

func newHarnessWith(t *testing.T, kv *persist.MemoryStore, schema catalog.Schema, logPath string) (*harness, Model) {
	t.Helper()
	h := &harness{kv: kv, store: results.NewStore()}

	term, err := persist.NewValue(h.kv, persist.KeySearch, "React")
	require.NoError(t, err)
	themePref, err := persist.NewValue(h.kv, persist.KeyTheme, "")
	require.NoError(t, err)
	h.ctrl = query.NewController(term, testEndpoint)

	client := fetchFunc(func(ctx context.Context, rawURL string) ([]catalog.Record, error) {
		h.calls = append(h.calls, rawURL)
		if h.fail {
			return nil, errors.New("network down")
		}
		return []catalog.Record{
			story("1", "First", "https://example.com/1"),
			story("2", "Second", "https://example.com/2"),
			story("3", "Third", ""),
		}, nil
	})

	m := New(Options{
		Controller:   h.ctrl,
		Orchestrator: query.NewOrchestrator(h.store, client, nil),
		Results:      h.store,
		Schema:       schema,
		Theme:        themePref,
		LogPath:      logPath,
		OpenURL: func(u string) error {
			h.opened = append(h.opened, u)
			return nil
		},
	})
	return h, m
}

// collect runs cmd and any batched commands, returning their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

// settle feeds fetch and log results produced by cmd back into the model.
func settle(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for _, msg := range collect(cmd) {
		switch msg.(type) {
		case fetchResultMsg, logLinesMsg, openResultMsg:
			m, _ = update(t, m, msg)
		}
	}
	return m
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func started(t *testing.T, h *harness, m Model) Model {
	t.Helper()
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	return settle(t, m, m.Init())
}

func TestModel_InitFetchesPersistedTerm(t *testing.T) {
	kv := persist.NewMemoryStore()
	require.NoError(t, kv.Set(persist.KeySearch, "Design"))
	h, m := newHarnessWith(t, kv, catalog.Stories, "")
	assert.Equal(t, "Design", m.input.Value())

	cmd := m.Init()
	assert.True(t, h.store.State().IsLoading, "FetchStart is dispatched before the command runs")
	assert.Empty(t, h.calls)

	m = settle(t, m, cmd)
	assert.Equal(t, []string{testEndpoint + "Design"}, h.calls)
	assert.Len(t, m.snapshot.Data, 3)
	assert.True(t, m.input.Focused(), "the search input starts focused")
}

func TestModel_TypingPersistsButDoesNotFetch(t *testing.T) {
	h, m := newHarness(t, catalog.Stories, "")
	m = started(t, h, m)
	require.Len(t, h.calls, 1)

	for range "React" {
		m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyBackspace})
	}
	m, _ = update(t, m, keyRunes("G"))
	m, _ = update(t, m, keyRunes("o"))

	stored, ok, err := h.kv.Get(persist.KeySearch)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "Go", stored)
	assert.Len(t, h.calls, 1, "typing must not fetch")
	assert.False(t, h.store.State().IsLoading)
	assert.Equal(t, testEndpoint+"React", h.ctrl.CommittedURL())
}

func TestModel_EnterSubmits(t *testing.T) {
	h, m := newHarness(t, catalog.Stories, "")
	m = started(t, h, m)
	require.NoError(t, h.ctrl.SetDraftTerm("Go lang"))

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, h.store.State().IsLoading)
	assert.False(t, m.input.Focused())

	m = settle(t, m, cmd)
	assert.Equal(t, []string{testEndpoint + "React", testEndpoint + "Go+lang"}, h.calls)
	assert.False(t, m.snapshot.IsLoading)

	// An unchanged term still fetches again.
	m, cmd = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	settle(t, m, cmd)
	assert.Len(t, h.calls, 3)
}

func TestModel_DismissRemovesSelectedRow(t *testing.T) {
	h, m := newHarness(t, catalog.Stories, "")
	m = started(t, h, m)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	m, _ = update(t, m, keyRunes("j"))
	m, _ = update(t, m, keyRunes("x"))

	data := h.store.State().Data
	require.Len(t, data, 2)
	assert.Equal(t, "1", data[0].ID)
	assert.Equal(t, "3", data[1].ID)
	assert.Equal(t, 1, m.selectedRow)

	m, _ = update(t, m, keyRunes("G"))
	m, _ = update(t, m, keyRunes("d"))
	assert.Len(t, h.store.State().Data, 1)
	assert.Equal(t, 0, m.selectedRow, "selection stays inside the list")
	assert.Len(t, h.calls, 1, "dismissing never refetches")
}

func TestModel_OpenSelectedLink(t *testing.T) {
	h, m := newHarness(t, catalog.Stories, "")
	m = started(t, h, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, cmd := update(t, m, keyRunes("o"))
	require.NotNil(t, cmd)
	m = settle(t, m, cmd)
	assert.Equal(t, []string{"https://example.com/1"}, h.opened)

	m, _ = update(t, m, keyRunes("G"))
	m, cmd = update(t, m, keyRunes("o"))
	assert.Nil(t, cmd)
	assert.Equal(t, "No link for this result", m.notice)
}

func TestModel_ErrorShowsNoticeInsteadOfList(t *testing.T) {
	h, m := newHarness(t, catalog.Stories, "")
	m = started(t, h, m)
	h.fail = true

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.View(), "Loading ...")
	m = settle(t, m, cmd)

	view := m.View()
	assert.Contains(t, view, "Something went wrong ...")
	assert.NotContains(t, view, "First")
	assert.Len(t, h.store.State().Data, 3, "stale data is kept")
}

func TestModel_ViewListsColumns(t *testing.T) {
	h, m := newHarness(t, catalog.Stories, "")
	m = started(t, h, m)

	view := m.View()
	assert.Contains(t, view, "Title")
	assert.Contains(t, view, "Author")
	assert.Contains(t, view, "First")
	assert.Contains(t, view, "Results (3)")
	assert.Contains(t, m.renderHeader(), "Results: 3")
	assert.Equal(t, 100, lipgloss.Width(m.renderCommandBar()), "command bar fills the terminal width")
}

func TestModel_CycleThemePersists(t *testing.T) {
	h, m := newHarness(t, catalog.Stories, "")
	m = started(t, h, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = update(t, m, keyRunes("T"))
	assert.Equal(t, "Kanagawa", m.theme.Name)
	stored, _, err := h.kv.Get(persist.KeyTheme)
	require.NoError(t, err)
	assert.Equal(t, "Kanagawa", stored)
}

func TestModel_LogView(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "stories.log")
	line := "2026-10-18T09:12:01.004Z\tinfo\tfetch succeeded\t{\"records\": 3}\n"
	require.NoError(t, os.WriteFile(logPath, []byte(line), 0o644))

	h, m := newHarness(t, catalog.Stories, logPath)
	m = started(t, h, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, cmd := update(t, m, keyRunes("L"))
	assert.Equal(t, ViewLogs, m.currentView)
	m = settle(t, m, cmd)
	assert.Contains(t, m.View(), "fetch succeeded")

	m, _ = update(t, m, keyRunes("L"))
	assert.Equal(t, ViewResults, m.currentView)
}

func TestModel_QuitKeys(t *testing.T) {
	h, m := newHarness(t, catalog.Stories, "")
	m = started(t, h, m)

	// q is text while the input has focus.
	m, _ = update(t, m, keyRunes("q"))
	assert.Equal(t, "Reactq", m.input.Value())

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}

func TestModel_HelpOverlay(t *testing.T) {
	h, m := newHarness(t, catalog.Books, "")
	m = started(t, h, m)
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	m, _ = update(t, m, keyRunes("?"))
	assert.Contains(t, m.View(), "Keyboard Shortcuts")
	m, _ = update(t, m, keyRunes("j"))
	assert.False(t, m.showHelp)
}
