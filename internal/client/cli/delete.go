package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/dmitrijs2005/packadmin/internal/client/client"
	"github.com/dmitrijs2005/packadmin/internal/client/guard"
	"github.com/dmitrijs2005/packadmin/internal/common"
)

func (a *App) DeleteItem(ctx context.Context, idArg string) error {
	return a.confirmDelete(ctx, a.inventory.ItemGuard(), idArg)
}

func (a *App) DeleteTransaction(ctx context.Context, idArg string) error {
	return a.confirmDelete(ctx, a.inventory.TransactionGuard(), idArg)
}

// confirmDelete runs the credential confirmation of g for the record id.
// A rejected credential keeps the confirmation open and the user may retry.
func (a *App) confirmDelete(ctx context.Context, g *guard.Guard, idArg string) error {
	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "ID must be a number")
		return fmt.Errorf("%w: %s", errBadNumber, idArg)
	}
	if err := g.Select(id); err != nil {
		return err
	}
	defer g.Cancel()

	fmt.Fprintf(a.out, "Deleting from %s: %d\n", g.Name(), id)
	for {
		pw, err := GetPassword(a.out, "Password")
		if err != nil {
			return err
		}
		err = g.SetCredential(string(pw))
		common.WipeByteArray(pw)
		if err != nil {
			return err
		}

		err = g.Submit(ctx)
		if err == nil {
			fmt.Fprintln(a.out, "Deleted")
			return nil
		}

		var re *client.RejectedError
		if !errors.As(err, &re) {
			fmt.Fprintln(a.out, "Operation failed")
			return err
		}
		fmt.Fprintln(a.out, g.FieldError())

		if again, _ := GetConfirmation(a.reader, "Try again?", a.out); !again {
			return err
		}
	}
}
