// Package ui provides the Bubble Tea terminal interface for stories.
//
// # Layout
//
//	stories  stories  Results: 20  09:12:01        header
//	 Search: React                                 search input
//	┌────────────── Results (20) ──────────────┐
//	│Title                  Author   Comments  │   result list, or the
//	│...                                       │   loading/error notice
//	└──────────────────────────────────────────┘
//	/ Edit search  x/d Dismiss result  ...         command bar
//
// # Fetching
//
// The search input starts focused and holds the persisted draft term.
// Typing updates and persists the draft through query.Controller but never
// fetches. Enter commits the draft: the orchestrator dispatches FetchStart
// synchronously inside Update and the network call runs as a tea.Cmd whose
// fetchResultMsg is completed back on the update loop. Init commits the
// persisted term once in the same way.
//
// While a fetch is in flight the list is replaced by "Loading ..." with a
// spinner; after a failure it is replaced by "Something went wrong ...".
// The previous records stay in the store and reappear only after the next
// successful fetch replaces them.
//
// # Results
//
// Rows show the columns of the active catalog.Schema. x or d dismisses the
// selected record locally, and o opens its link in the system browser
// (http and https only).
//
// # Extras
//
// L toggles a view of the tail of the application log, T cycles the theme
// (persisted under persist.KeyTheme) and ? shows the key bindings.
package ui
