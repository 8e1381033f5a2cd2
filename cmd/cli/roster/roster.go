package roster

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/repositories"
	"github.com/jlaasonen/precinct/internal/sqlite"
	"github.com/jlaasonen/precinct/internal/workflow"
)

var Group = &cobra.Group{
	ID:    "roster",
	Title: "Roster operations",
}

func init() {
	Seed.Flags().String("db", "./precinct.sqlite", "path to the SQLite database")
	Seed.Flags().Int("citizens", 20, "number of demo citizens to register")
}

// Seed fills an empty database with one member per rank and a handful of
// citizens so the API can be exercised locally.
var Seed = &cobra.Command{
	Use:     "seed",
	GroupID: "roster",
	Short:   "Seed the department roster",
	Long:    `Enlists one member per rank and registers demo citizens with fake identities`,
	Run: func(cmd *cobra.Command, args []string) {
		dbURL, err := cmd.Flags().GetString("db")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid db flag: %v\n", err)
			return
		}
		citizens, err := cmd.Flags().GetInt("citizens")
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "invalid citizens flag: %v\n", err)
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

		persons := repositories.NewPersonRepository(dbs, logger)
		members := repositories.NewMemberRepository(dbs, logger)

		ranks := []workflow.Role{
			workflow.RoleCadet,
			workflow.RoleOfficer,
			workflow.RoleDetective,
			workflow.RoleSergeant,
			workflow.RoleCaptain,
			workflow.RolePoliceChief,
			workflow.RoleJudge,
		}
		for i, role := range ranks {
			nationalID := uuid.NewString()
			personID, err := persons.Upsert(ctx, &models.Person{
				NationalID:  nationalID,
				FullName:    gofakeit.Name(),
				PhoneNumber: gofakeit.Phone(),
			})
			if err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "register %s: %v\n", role, err)
				return
			}
			badge := fmt.Sprintf("B-%04d", i+1)
			if _, err := members.Enlist(ctx, personID, badge, role); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "enlist %s: %v\n", role, err)
				return
			}
			fmt.Printf("%-12s badge %s national ID %s\n", role, badge, nationalID)
		}

		for range citizens {
			if _, err := persons.Upsert(ctx, &models.Person{
				NationalID:  uuid.NewString(),
				FullName:    gofakeit.Name(),
				PhoneNumber: gofakeit.Phone(),
			}); err != nil {
				_, _ = fmt.Fprintf(os.Stderr, "register citizen: %v\n", err)
				return
			}
		}
		fmt.Printf("registered %d citizens\n", citizens)
	},
}
