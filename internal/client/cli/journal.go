package cli

import (
	"context"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"
)

const defaultJournalLimit = 20

// Journal prints the most recent local mutation records.
func (a *App) Journal(ctx context.Context, limitArg string) error {
	limit := defaultJournalLimit
	if limitArg != "" {
		n, err := strconv.Atoi(limitArg)
		if err != nil || n <= 0 {
			fmt.Fprintln(a.out, "Limit must be a positive number")
			return fmt.Errorf("%w: %s", errBadNumber, limitArg)
		}
		limit = n
	}

	entries, err := a.inventory.Journal(ctx, limit)
	if err != nil {
		a.logger.Error(ctx, "error reading journal", "error", err)
		fmt.Fprintln(a.out, "Journal unavailable")
		return err
	}
	if len(entries) == 0 {
		fmt.Fprintln(a.out, "Journal is empty")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tOPERATION\tTARGET\tOUTCOME\tMESSAGE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.Local().Format(time.DateTime), e.Op, e.Target, e.Outcome, e.Message)
	}
	return tw.Flush()
}
