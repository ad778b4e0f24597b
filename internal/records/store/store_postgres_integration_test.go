//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"applicant-records/internal/records/models"
	"applicant-records/internal/records/store"
	"applicant-records/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.GetManager().GetPostgres(s.T())
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncateDocuments(context.Background()))
}

func (s *PostgresStoreSuite) TestNoteStoreContract() {
	runNoteStoreContract(s.T(), store.NewPostgresNoteStore(s.postgres.DB))
}

func (s *PostgresStoreSuite) TestFindReadsExistingCollections() {
	ctx := context.Background()
	s.postgres.InsertDocument(ctx, s.T(), models.CollectionEducation.String(),
		models.Education{ApplicantID: "a1", EducationID: "ed1", Degree: "BSc"})
	s.postgres.InsertDocument(ctx, s.T(), models.CollectionEducation.String(),
		models.Education{ApplicantID: "a2", EducationID: "ed2"})
	s.postgres.InsertDocument(ctx, s.T(), models.CollectionSkills.String(),
		models.Skill{ApplicantID: "a1", SkillID: "s1"})

	records := store.NewPostgresRecords(s.postgres.DB, nil)

	got, err := records.Education.Find(ctx, store.ByApplicant("a1"))
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(models.Text("BSc"), got[0].Degree)

	all, err := records.Education.Find(ctx, store.Filter{})
	s.Require().NoError(err)
	s.Len(all, 2, "collections must not leak into each other")

	none, err := records.WorkExperience.Find(ctx, store.ByApplicant("a1"))
	s.Require().NoError(err)
	s.NotNil(none)
	s.Empty(none)
}
