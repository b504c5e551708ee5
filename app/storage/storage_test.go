package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-pkgz/testutils/containers"
	"github.com/stretchr/testify/suite"

	"github.com/umputun/tg-guard/app/storage/engine"
)

// StorageTestSuite runs storage tests against sqlite and, with TEST_PG set, against postgres
type StorageTestSuite struct {
	suite.Suite
	ctx         context.Context
	dbs         map[string]*engine.SQL
	pgContainer *containers.PostgresTestContainer
	sqliteFile  string
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}

func (s *StorageTestSuite) SetupSuite() {
	s.ctx = context.Background()
	s.dbs = make(map[string]*engine.SQL)

	// file-based sqlite, in-memory one is per connection
	s.sqliteFile = filepath.Join(s.T().TempDir(), "guard.db")
	sqliteDB, err := engine.NewSqlite(s.sqliteFile, "gr1")
	s.Require().NoError(err)
	s.dbs["sqlite"] = sqliteDB

	if !testing.Short() && os.Getenv("TEST_PG") != "" {
		s.T().Log("starting postgres container")
		s.pgContainer = containers.NewPostgresTestContainerWithDB(s.ctx, s.T(), "test")
		pgDB, err := engine.NewPostgres(s.ctx, s.pgContainer.ConnectionString(), "gr1")
		s.Require().NoError(err)
		s.dbs["postgres"] = pgDB
	}
}

func (s *StorageTestSuite) TearDownSuite() {
	for _, db := range s.dbs {
		db.Close()
	}
	if s.pgContainer != nil {
		s.NoError(s.pgContainer.Close(s.ctx))
	}
}

// SetupTest drops all tables to start each test from a clean state
func (s *StorageTestSuite) SetupTest() {
	for _, db := range s.dbs {
		for _, table := range []string{"chats", "bans"} {
			_, err := db.Exec("DROP TABLE IF EXISTS " + table)
			s.Require().NoError(err)
		}
	}
}

// forEachDB runs the test function for every available database
func (s *StorageTestSuite) forEachDB(fn func(name string, db *engine.SQL)) {
	for name, db := range s.dbs {
		s.Run(name, func() { fn(name, db) })
	}
}
