// AngelaMos | 2026
// hubingest_test.go

package hubingest

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carterperez-dev/tenanthub/internal/core"
	"github.com/carterperez-dev/tenanthub/internal/plan"
	"github.com/carterperez-dev/tenanthub/internal/project"
)

type stubProjects struct {
	planType string
}

func (s stubProjects) Owner(_ context.Context, userID string) (*project.Owner, error) {
	if userID != "u1" {
		return nil, project.ErrOwnerNotFound
	}
	o := &project.Owner{ID: "u1", Email: "u1@x.com"}
	if s.planType != "" {
		t := s.planType
		o.SubscriptionType = &t
		o.SubscriptionStatus = string(plan.StatusActive)
	}
	return o, nil
}

func (stubProjects) ResolveByName(_ context.Context, userID, name string) (*project.Project, error) {
	if userID == "u1" && name == "alpha" {
		return &project.Project{ID: "p1", ProjectName: "alpha", CreatedBy: "u1"}, nil
	}
	return nil, project.ErrProjectNotFound
}

func newMockService(t *testing.T, projects Projects) (*Service, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewService(NewRepository(sqlx.NewDb(db, "pgx")), projects), mock
}

func TestCreateWritesIngestAndReference(t *testing.T) {
	svc, mock := newMockService(t, stubProjects{planType: "Organization"})
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO hub_ingests")).
		WithArgs(sqlmock.AnyArg(), "events", "u1", "p1", "Organization").
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_hub_ingests")).
		WithArgs("u1", sqlmock.AnyArg(), "events", "alpha", "Organization").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	h, err := svc.Create(context.Background(), "u1", CreateHubIngestRequest{
		Name:        " events ",
		ProjectName: "alpha",
	})
	require.NoError(t, err)
	assert.Equal(t, "events", h.Name)
	assert.Equal(t, "Organization", h.SubscriptionType)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateRollsBackWhenReferenceFails(t *testing.T) {
	svc, mock := newMockService(t, stubProjects{})
	now := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO hub_ingests")).
		WithArgs(sqlmock.AnyArg(), "events", "u1", "p1", plan.NoPlanLabel).
		WillReturnRows(sqlmock.NewRows([]string{"created_at", "updated_at"}).AddRow(now, now))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO user_hub_ingests")).
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	_, err := svc.Create(context.Background(), "u1", CreateHubIngestRequest{
		Name:        "events",
		ProjectName: "alpha",
	})
	require.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUnknownProject(t *testing.T) {
	svc, mock := newMockService(t, stubProjects{})

	_, err := svc.Create(context.Background(), "u1", CreateHubIngestRequest{
		Name:        "events",
		ProjectName: "missing",
	})
	assert.ErrorIs(t, err, project.ErrProjectNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestListForUserAccess(t *testing.T) {
	svc, mock := newMockService(t, stubProjects{})

	_, err := svc.ListForUser(context.Background(), "u2", false, "u1")
	assert.ErrorIs(t, err, core.ErrForbidden)

	cols := []string{"id", "name", "user_id", "project_id", "project_name",
		"subscription_type", "created_at", "updated_at"}
	mock.ExpectQuery(regexp.QuoteMeta("FROM hub_ingests")).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow("h1", "events", "u1", "p1", "alpha", "Free", time.Now(), time.Now()))

	ingests, err := svc.ListForUser(context.Background(), "admin", true, "u1")
	require.NoError(t, err)
	require.Len(t, ingests, 1)
	assert.Equal(t, "alpha", ingests[0].ProjectName)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissing(t *testing.T) {
	svc, mock := newMockService(t, stubProjects{})
	id := uuid.NewString()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM user_hub_ingests")).
		WithArgs(id).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM hub_ingests")).
		WithArgs(id, "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	assert.ErrorIs(t, svc.Delete(context.Background(), "u1", id), ErrHubIngestNotFound)
	assert.ErrorIs(t, svc.Delete(context.Background(), "u1", "nope"), ErrHubIngestNotFound)
	require.NoError(t, mock.ExpectationsWereMet())
}
