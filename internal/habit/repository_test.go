package habit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/saulo-duarte/habits-lambda/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var habitColumns = []string{"id", "user_id", "name", "frequency", "goal", "reminder_at", "archived", "created_at", "updated_at"}

func TestFindByID_NotFound(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := NewRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "habits" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(habitColumns))

	_, err := repo.FindByID(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestFindByID_Found(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := NewRepository(db)

	id := uuid.New()
	userID := uuid.New()
	now := time.Date(2026, time.October, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`SELECT \* FROM "habits" WHERE id = \$1`).
		WillReturnRows(sqlmock.NewRows(habitColumns).
			AddRow(id.String(), userID.String(), "Read", "daily", 20, nil, false, now, now))

	h, err := repo.FindByID(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, h.ID)
	assert.Equal(t, userID, h.UserID)
	assert.Equal(t, FrequencyDaily, h.Frequency)
	require.NotNil(t, h.Goal)
	assert.Equal(t, 20, *h.Goal)
	assert.False(t, h.Archived)
}

func TestListActiveByUser_FiltersArchived(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := NewRepository(db)

	userID := uuid.New()
	mock.ExpectQuery(`SELECT \* FROM "habits" WHERE user_id = \$1 AND archived = \$2`).
		WithArgs(userID, false).
		WillReturnRows(sqlmock.NewRows(habitColumns))

	habits, err := repo.ListActiveByUser(context.Background(), userID)
	require.NoError(t, err)
	assert.Empty(t, habits)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchive_NoRowsIsNotFound(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE "habits" SET "archived"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Archive(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestArchive_Success(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(`UPDATE "habits" SET "archived"=\$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Archive(context.Background(), uuid.New()))
	require.NoError(t, mock.ExpectationsWereMet())
}

// The SET list is anchored so a write to archived, user_id or created_at
// fails the expectation.
const updateEditableSQL = `^UPDATE "habits" SET "name"=\$1,"frequency"=\$2,"goal"=\$3,"reminder_at"=\$4,"updated_at"=\$5 WHERE \(?id = \$6 AND user_id = \$7\)?$`

func TestUpdate_WritesOnlyEditableColumns(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := NewRepository(db)

	goal := 5
	h := &Habit{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Name:      "Read more",
		Frequency: FrequencyWeekly,
		Goal:      &goal,
		Archived:  false,
	}

	mock.ExpectExec(updateEditableSQL).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Update(context.Background(), h))
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NoRowsIsNotFound(t *testing.T) {
	db, mock := testutil.NewGormMock(t)
	repo := NewRepository(db)

	mock.ExpectExec(updateEditableSQL).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &Habit{ID: uuid.New(), UserID: uuid.New(), Name: "Gone", Frequency: FrequencyDaily})
	assert.True(t, errors.Is(err, ErrNotFound))
	require.NoError(t, mock.ExpectationsWereMet())
}
