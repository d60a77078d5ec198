// Package ui implements an interactive terminal interface using bubbletea's Elm architecture.
//
// The TUI provides a multi-view workflow for song generation:
//  1. [FormView] : Fill in title, style, and lyrics (drafts and the saved style prompt are preloaded)
//  2. [GeneratingView] : Spinner plus live status line while the backend job is polled
//  3. [DetailView] : Display the finished song, reloaded from its detail endpoint
//  4. [LibraryView] : Browse previously generated songs
//  5. [ErrorView] : Show the failure and offer a retry
//
// The (view) [Model] implements bubbletea/Elm's standard Init/Update/View pattern, receiving messages via the Msg union type.
// Status updates flow through a channel from the polling goroutine, providing non-blocking loading text during generation.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with contextual help displayed via charmbracelet/bubbles/help.
package ui
