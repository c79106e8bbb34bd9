package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	ShowView(ctx context.Context, name string) error
	Categories(ctx context.Context) error
	Refresh(ctx context.Context) error
	Search(ctx context.Context, query string) error
	Sort(ctx context.Context, key string) error
	Page(ctx context.Context, number string) error
	Next(ctx context.Context) error
	Prev(ctx context.Context) error

	AddPack(ctx context.Context) error
	AddItem(ctx context.Context, packID string) error
	Sell(ctx context.Context, packID string) error
	AddImages(ctx context.Context, packID string) error

	OpenImages(ctx context.Context, packID string) error
	SelectImage(ctx context.Context, imageID string) error
	DeleteImages(ctx context.Context) error
	CloseImages(ctx context.Context) error

	DeleteItem(ctx context.Context, id string) error
	DeleteTransaction(ctx context.Context, id string) error
	Journal(ctx context.Context, limit string) error
}

const helpText = `Views:     packs, items, transactions, dashboard, categories, refresh
Browse:    search [text], sort <key>, page <n>, next (n), prev (p)
Packs:     addpack, additem <pack>, sell <pack>, addimages <pack>
Images:    images <pack>, select <image>, delimages, closeimages
Delete:    delitem <id>, deltx <id>
Other:     journal [limit], help, exit`

// runREPL reads commands line by line and dispatches them to a.
//
// The first token is the command, the second (if any) its argument; for
// "search" the rest of the line is the query and an empty query clears
// the filter. The loop exits on scanner EOF or on "exit" / "quit".
//
// Errors returned by command handlers are ignored here; handlers report
// to the user and log on their own.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("pa> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "packs", "items", "transactions", "dashboard":
			_ = a.ShowView(ctx, cmd)

		case "categories":
			_ = a.Categories(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "search":
			_ = a.Search(ctx, strings.Join(parts[1:], " "))

		case "sort":
			if arg == "" {
				printlnFn("Usage: sort <key>")
				continue
			}
			_ = a.Sort(ctx, arg)

		case "page":
			if arg == "" {
				printlnFn("Usage: page <n>")
				continue
			}
			_ = a.Page(ctx, arg)

		case "n", "next":
			_ = a.Next(ctx)

		case "p", "prev":
			_ = a.Prev(ctx)

		case "addpack":
			_ = a.AddPack(ctx)

		case "additem":
			_ = a.AddItem(ctx, arg)

		case "sell":
			_ = a.Sell(ctx, arg)

		case "addimages":
			_ = a.AddImages(ctx, arg)

		case "images":
			_ = a.OpenImages(ctx, arg)

		case "select":
			if arg == "" {
				printlnFn("Usage: select <image id>")
				continue
			}
			_ = a.SelectImage(ctx, arg)

		case "delimages":
			_ = a.DeleteImages(ctx)

		case "closeimages":
			_ = a.CloseImages(ctx)

		case "delitem", "deltx":
			if arg == "" {
				printlnFn("Usage:", cmd, "<id>")
				continue
			}
			if cmd == "delitem" {
				_ = a.DeleteItem(ctx, arg)
			} else {
				_ = a.DeleteTransaction(ctx, arg)
			}

		case "journal":
			_ = a.Journal(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
