package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/vytor/heptareview/internal/db"
	"github.com/vytor/heptareview/internal/repository/repotest"
	"github.com/vytor/heptareview/internal/repository/sqlite"
	"github.com/vytor/heptareview/internal/testutil"
)

func newRepos(driver string) func(t *testing.T) repotest.Repos {
	return func(t *testing.T) repotest.Repos {
		database := testutil.NewTestDBWithDriver(t, driver)
		return repotest.Repos{
			Cards:    sqlite.NewCardRepository(database.DB),
			Reviews:  sqlite.NewReviewRepository(database.DB),
			Subjects: sqlite.NewSubjectRepository(database.DB),
		}
	}
}

func TestRepositories_MattnDriver(t *testing.T) {
	suite.Run(t, &repotest.Suite{New: newRepos(db.DriverCGO)})
}

func TestRepositories_ModerncDriver(t *testing.T) {
	suite.Run(t, &repotest.Suite{New: newRepos(db.DriverPureGo)})
}
