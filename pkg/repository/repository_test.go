package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/JaimeStill/vigil/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
)

func TestMapError(t *testing.T) {
	other := errors.New("some other error")
	foreignKey := &pgconn.PgError{Code: "23503"}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"other pg error", foreignKey, foreignKey},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := repository.MapError(tt.err, errNotFound, errDuplicate); got != tt.want {
				t.Errorf("MapError(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}

func TestWithTxCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT status FROM incidents").
		WillReturnRows(sqlmock.NewRows([]string{"status"}).AddRow("pending review"))
	mock.ExpectCommit()

	got, err := repository.WithTx(context.Background(), db, func(tx *sql.Tx) (string, error) {
		return repository.QueryOne(context.Background(), tx, "SELECT status FROM incidents WHERE id = $1", []any{1},
			func(s repository.Scanner) (string, error) {
				var v string
				return v, s.Scan(&v)
			})
	})
	if err != nil {
		t.Fatalf("WithTx: unexpected error %v", err)
	}
	if got != "pending review" {
		t.Errorf("WithTx = %q, want pending review", got)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestWithTxRollsBack(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	cause := errors.New("scan failed")

	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err = repository.WithTx(context.Background(), db, func(tx *sql.Tx) (int, error) {
		return 0, cause
	})
	if !errors.Is(err, cause) {
		t.Errorf("WithTx: got %v, want %v", err, cause)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestExecExpectOne(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE incidents").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE incidents").WillReturnResult(sqlmock.NewResult(0, 0))

	ctx := context.Background()
	if err := repository.ExecExpectOne(ctx, db, "UPDATE incidents SET status = $1", "x"); err != nil {
		t.Errorf("one row: unexpected error %v", err)
	}
	if err := repository.ExecExpectOne(ctx, db, "UPDATE incidents SET status = $1", "x"); !errors.Is(err, sql.ErrNoRows) {
		t.Errorf("zero rows: got %v, want sql.ErrNoRows", err)
	}
}
