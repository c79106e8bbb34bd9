// Package listview turns a record collection into the page the console
// shows: filter, then sort, then paginate. Every stage is a pure function
// of its inputs, so a view can be recomputed from scratch after each
// refresh of the underlying record store.
//
//	page, err := listview.Render(packs, "acme", listview.SortConfig{Key: "price"}, 0, 10, listview.PackKeys)
//
// State keeps the per-view query, sort configuration and page index the
// REPL mutates between renders.
package listview
