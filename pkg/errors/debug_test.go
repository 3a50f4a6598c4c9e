package errors

import (
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

func TestDumpExtractsPgxError(t *testing.T) {
	cause := &pgconn.PgError{
		Code:           "23505",
		ConstraintName: "sales_pkey",
		TableName:      "sales",
		Message:        "duplicate key value violates unique constraint",
	}
	d := Dump(Wrap(CodeDependency, cause, "insert sale"))

	if d.Code != CodeDependency {
		t.Fatalf("unexpected code %s", d.Code)
	}
	if d.PGCode != "23505" || d.PGConstraint != "sales_pkey" || d.PGTable != "sales" {
		t.Fatalf("pgx details not extracted: %+v", d)
	}
}

func TestDumpExtractsPqError(t *testing.T) {
	cause := &pq.Error{
		Code:       "42P01",
		Table:      "goose_db_version",
		Message:    "relation does not exist",
		Constraint: "",
	}
	d := Dump(Wrap(CodeDependency, cause, "goose status"))

	if d.PGCode != "42P01" || d.PGTable != "goose_db_version" {
		t.Fatalf("pq details not extracted: %+v", d)
	}
	if d.PGMessage != "relation does not exist" {
		t.Fatalf("unexpected pg message %q", d.PGMessage)
	}
}

func TestDumpPlainErrorHasNoPGFields(t *testing.T) {
	d := Dump(New(CodeValidation, "product is required"))
	if d.PGCode != "" || d.PGTable != "" {
		t.Fatalf("unexpected PG fields on plain error: %+v", d)
	}
}
