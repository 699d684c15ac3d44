package repositories

import (
	"context"
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagRepository_ListAndCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	repo := NewTagRepository(mock)

	mock.ExpectQuery("SELECT id, name FROM tags ORDER BY name").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).
			AddRow(int64(1), "economy").
			AddRow(int64(2), "golang"))
	mock.ExpectQuery("INSERT INTO tags").
		WithArgs("science").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name"}).AddRow(int64(3), "science"))

	tags, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, tags, 2)

	tag, err := repo.Create(context.Background(), "science")
	require.NoError(t, err)
	assert.Equal(t, int64(3), tag.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTagRepository_CountExistingEmpty(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	count, err := NewTagRepository(mock).CountExisting(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
