package sqlite_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/vytor/ghlookup/internal/models"
	"github.com/vytor/ghlookup/internal/repository"
	"github.com/vytor/ghlookup/internal/repository/sqlite"
	"github.com/vytor/ghlookup/internal/testutil"
)

type LookupRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.LookupRepository
}

func (s *LookupRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewLookupRepository(s.db)
}

func (s *LookupRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *LookupRepositorySuite) seed(lookups ...models.Lookup) {
	for _, l := range lookups {
		_, err := s.repo.Insert(context.Background(), l)
		s.Require().NoError(err)
	}
}

func (s *LookupRepositorySuite) TestInsertAndGet() {
	ctx := context.Background()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	id, err := s.repo.Insert(ctx, models.Lookup{
		Username:   "octocat",
		Found:      true,
		Trigger:    models.TriggerEnter,
		LookedUpAt: at,
	})
	s.Require().NoError(err)
	s.Assert().Greater(id, int64(0))

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().Equal("octocat", got.Username)
	s.Assert().True(got.Found)
	s.Assert().Equal(models.TriggerEnter, got.Trigger)
	s.Assert().True(at.Equal(got.LookedUpAt))
}

func (s *LookupRepositorySuite) TestInsert_DefaultsTimestamp() {
	ctx := context.Background()
	before := time.Now().Add(-time.Second)

	id, err := s.repo.Insert(ctx, models.Lookup{Username: "ghost", Trigger: models.TriggerLive})
	s.Require().NoError(err)

	got, err := s.repo.Get(ctx, id)
	s.Require().NoError(err)
	s.Assert().False(got.Found)
	s.Assert().True(got.LookedUpAt.After(before))
}

func (s *LookupRepositorySuite) TestGet_NotFound() {
	got, err := s.repo.Get(context.Background(), 99999)
	s.Assert().ErrorIs(err, sql.ErrNoRows)
	s.Assert().Nil(got)
}

func (s *LookupRepositorySuite) TestList_NewestFirst() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	s.seed(
		models.Lookup{Username: "a", Found: true, Trigger: models.TriggerLive, LookedUpAt: base},
		models.Lookup{Username: "b", Found: true, Trigger: models.TriggerLive, LookedUpAt: base.Add(time.Minute)},
		models.Lookup{Username: "c", Found: false, Trigger: models.TriggerLive, LookedUpAt: base.Add(2 * time.Minute)},
	)

	got, err := s.repo.List(context.Background(), models.LookupFilter{})
	s.Require().NoError(err)
	s.Require().Len(got, 3)
	s.Assert().Equal([]string{"c", "b", "a"}, []string{got[0].Username, got[1].Username, got[2].Username})
}

func (s *LookupRepositorySuite) TestList_Filters() {
	s.seed(
		models.Lookup{Username: "Octocat", Found: true, Trigger: models.TriggerClick},
		models.Lookup{Username: "octocat", Found: false, Trigger: models.TriggerLive},
		models.Lookup{Username: "hubot", Found: true, Trigger: models.TriggerAPI},
	)
	ctx := context.Background()

	byName, err := s.repo.List(ctx, models.LookupFilter{Username: "OCTOCAT"})
	s.Require().NoError(err)
	s.Assert().Len(byName, 2, "username match ignores case")

	found, err := s.repo.List(ctx, models.LookupFilter{Found: testutil.Ptr(true)})
	s.Require().NoError(err)
	s.Assert().Len(found, 2)

	both, err := s.repo.List(ctx, models.LookupFilter{Username: "octocat", Found: testutil.Ptr(false)})
	s.Require().NoError(err)
	s.Require().Len(both, 1)
	s.Assert().Equal(models.TriggerLive, both[0].Trigger)
}

func (s *LookupRepositorySuite) TestList_Pagination() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s.seed(models.Lookup{Username: "user", Trigger: models.TriggerLive, LookedUpAt: base.Add(time.Duration(i) * time.Minute)})
	}

	page, err := s.repo.List(context.Background(), models.LookupFilter{Limit: 2, Offset: 2})
	s.Require().NoError(err)
	s.Require().Len(page, 2)
	s.Assert().True(page[0].LookedUpAt.Equal(base.Add(2 * time.Minute)))
}

func (s *LookupRepositorySuite) TestList_EmptyIsNotNil() {
	got, err := s.repo.List(context.Background(), models.LookupFilter{})
	s.Require().NoError(err)
	s.Assert().NotNil(got)
	s.Assert().Empty(got)
}

func (s *LookupRepositorySuite) TestCount() {
	s.seed(
		models.Lookup{Username: "octocat", Found: true, Trigger: models.TriggerLive},
		models.Lookup{Username: "ghost", Found: false, Trigger: models.TriggerLive},
	)
	ctx := context.Background()

	total, err := s.repo.Count(ctx, models.LookupFilter{})
	s.Require().NoError(err)
	s.Assert().Equal(2, total)

	missed, err := s.repo.Count(ctx, models.LookupFilter{Found: testutil.Ptr(false)})
	s.Require().NoError(err)
	s.Assert().Equal(1, missed)
}

func TestLookupRepositorySuite(t *testing.T) {
	suite.Run(t, new(LookupRepositorySuite))
}
