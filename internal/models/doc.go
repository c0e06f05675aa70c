// package models defines the data model shared by the WatchCall backend,
// the collaborator client, and the TUI.
package models
