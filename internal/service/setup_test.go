package service

import (
	"database/sql"
	"testing"

	"github.com/alexanderramin/tempo/internal/db"
	"github.com/alexanderramin/tempo/internal/repository"
	"github.com/alexanderramin/tempo/internal/testutil"
)

type testRepos struct {
	db       *sql.DB
	clients  *repository.SQLiteClientRepo
	sessions *repository.SQLiteSessionRepo
	uow      db.UnitOfWork
}

func setupRepos(t *testing.T) testRepos {
	t.Helper()
	database := testutil.NewTestDB(t)
	return testRepos{
		db:       database,
		clients:  repository.NewSQLiteClientRepo(database),
		sessions: repository.NewSQLiteSessionRepo(database),
		uow:      testutil.NewTestUoW(database),
	}
}
