package models

import (
	"time"

	"github.com/jlaasonen/precinct/internal/workflow"
)

// BailPayment tracks a bail request from sergeant approval through the
// external payment gateway. Paid is terminal.
type BailPayment struct {
	ID               int64               `db:"id" json:"id"`
	SuspectID        int64               `db:"suspect_id" json:"suspect_id"`
	Amount           int64               `db:"amount" json:"amount"`
	Status           workflow.BailStatus `db:"status" json:"status"`
	ApprovedByID     *int64              `db:"approved_by" json:"approved_by"`
	PaymentReference string              `db:"payment_reference" json:"payment_reference"`
	CreatedAt        time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `db:"updated_at" json:"updated_at"`
}
