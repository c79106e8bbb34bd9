// Package cli provides the interactive packadmin console.
//
// It wires configuration, the remote client, the local mutation journal,
// the inventory service and a REPL. Typical flow: load every collection,
// start a background connectivity watcher, then execute user commands
// against one active list view at a time.
//
// Key features:
//   - List views: packs, items, transactions, dashboard (category rollup)
//   - Search, sort and page through the active view
//   - Create packs, add items and images, record sales
//   - Credential-confirmed deletes of items and transactions
//   - Image review with multi-select batch delete
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli
