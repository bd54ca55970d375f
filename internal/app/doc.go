// Package app is the composition root for stories.
//
// Run loads configuration, opens the logger and the key-value state store,
// builds the result store, catalog client, query controller and fetch
// orchestrator, then hands them to the Bubble Tea program. The program runs
// in an errgroup next to a watcher that quits it when the context is
// cancelled (SIGINT or SIGTERM from cmd/stories).
//
//	config.Load ─> logging.New ─> persist.Open ─> persist.NewValue
//	     │
//	     └─> catalog.NewClient ─> results.NewStore ─> query.NewOrchestrator
//	                                                   │
//	                         query.NewController ──────┴─> ui.NewProgram
//
// A state store that cannot be opened is replaced by an in-memory one and
// a warning is logged; the session still starts with the default term.
//
// Search is the headless path used by "stories search". It runs exactly
// one fetch cycle through the same orchestrator and prints the result set
// as a table or JSON. It keeps the term in memory, so the persisted draft
// of the interactive session is not overwritten.
package app
