package repositories

import (
	"context"
	"log/slog"

	"github.com/jlaasonen/precinct/internal/models"
	"github.com/jlaasonen/precinct/internal/sqlite"
)

type PersonRepository struct {
	dbs    *sqlite.Database
	logger *slog.Logger
}

func NewPersonRepository(dbs *sqlite.Database, logger *slog.Logger) *PersonRepository {
	return &PersonRepository{
		dbs:    dbs,
		logger: logger.With("source", "PersonRepository"),
	}
}

func (r *PersonRepository) Get(ctx context.Context, id int64) (*models.Person, error) {
	var person models.Person
	stmt := `SELECT id, national_id, full_name, phone_number FROM persons WHERE id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &person, stmt, id); err != nil {
		return nil, notFound(err, "read person")
	}
	return &person, nil
}

func (r *PersonRepository) GetByNationalID(ctx context.Context, nationalID string) (*models.Person, error) {
	var person models.Person
	stmt := `SELECT id, national_id, full_name, phone_number FROM persons WHERE national_id = ?`
	if err := r.dbs.ReadOnly.GetContext(ctx, &person, stmt, nationalID); err != nil {
		return nil, notFound(err, "read person by national id")
	}
	return &person, nil
}

// Upsert registers a citizen, updating the name and phone number if the
// national ID is already known.
func (r *PersonRepository) Upsert(ctx context.Context, person *models.Person) (int64, error) {
	stmt := `INSERT INTO persons (national_id, full_name, phone_number)
	VALUES (?, ?, ?)
	ON CONFLICT (national_id) DO UPDATE SET full_name = excluded.full_name, phone_number = excluded.phone_number
	RETURNING id`
	var id int64
	if err := r.dbs.ReadWrite.GetContext(ctx, &id, stmt, person.NationalID, person.FullName, person.PhoneNumber); err != nil {
		return 0, notFound(err, "upsert person")
	}
	return id, nil
}
