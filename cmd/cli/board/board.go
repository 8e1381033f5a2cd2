package board

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jlaasonen/precinct/internal/repositories"
	"github.com/jlaasonen/precinct/internal/sqlite"
)

var Group = &cobra.Group{
	ID:    "board",
	Title: "Public board operations",
}

func init() {
	MostWanted.Flags().String("db", "./precinct.sqlite", "path to the SQLite database")
}

var MostWanted = &cobra.Command{
	Use:     "most-wanted",
	GroupID: "board",
	Short:   "Print the most-wanted board",
	Long:    `Lists intensive-pursuit suspects with their bounties, highest reward first`,
	Run: func(cmd *cobra.Command, args []string) {
		dbURL, err := cmd.Flags().GetString("db")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid db flag: %v\n", err)
			return
		}

		ctx := context.Background()
		logger := slog.New(slog.NewTextHandler(io.Discard, nil))
		dbs, err := sqlite.NewDatabase(ctx, dbURL, logger)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "open database: %v\n", err)
			return
		}
		defer func() {
			_ = dbs.Close()
		}()

		suspects := repositories.NewSuspectRepository(dbs, logger)
		entries, err := suspects.MostWanted(ctx)
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "read most wanted: %v\n", err)
			return
		}
		if len(entries) == 0 {
			fmt.Println("no suspects under intensive pursuit")
			return
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "NAME\tCASE\tLEVEL\tDANGER\tREWARD")
		for _, e := range entries {
			_, _ = fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\n",
				e.FullName, e.CaseNumber, e.CrimeLevel, e.DangerScore, e.RewardAmount)
		}
		_ = w.Flush()
	},
}
