package storage

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"github.com/hammamikhairi/barmate/internal/domain"
)

func TestSQLiteStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := NewSQLiteStore(ctx, filepath.Join(t.TempDir(), "nested", "barmate.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	defer s.Close()

	roundTrip(t, NewAdapter(s, DriverSQLite, "", testLogger()))

	if err := s.Delete(ctx, "barmate.recipes"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "barmate.recipes"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestPostgresStoreWithMock(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	restore := OverrideSQLOpen(func(driver, dsn string) (*sql.DB, error) {
		if driver != "pgx" {
			t.Errorf("driver = %q, want pgx", driver)
		}
		return db, nil
	})
	defer restore()

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS state").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT payload FROM state WHERE bucket").
		WithArgs("barmate.recipes").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}))
	mock.ExpectExec("INSERT INTO state").
		WithArgs("barmate.recipes", []byte(`[]`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT payload FROM state WHERE bucket").
		WithArgs("barmate.ingredients").
		WillReturnRows(sqlmock.NewRows([]string{"payload"}).AddRow([]byte(`[{"id":"a","name":"Gin","amount":3}]`)))
	mock.ExpectClose()

	s, err := NewPostgresStore(ctx, "postgres://example/barmate")
	if err != nil {
		t.Fatalf("NewPostgresStore: %v", err)
	}
	a := NewAdapter(s, DriverPostgres, "", testLogger())

	if got := a.LoadRecipes(ctx); len(got) != 0 {
		t.Fatalf("expected empty recipes, got %v", got)
	}
	a.SaveRecipes(ctx, nil)
	got := a.LoadIngredients(ctx)
	if len(got) != 1 || got[0].Name != "Gin" || got[0].Amount != 3 {
		t.Fatalf("unexpected ingredients %v", got)
	}

	if err := a.Close(); err != nil {
		t.Fatal(err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestPostgresStoreRequiresDSN(t *testing.T) {
	if _, err := NewPostgresStore(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty dsn")
	}
}
