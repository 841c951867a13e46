package lands

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLandsAt_MultipleResultsPreserveOrder(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`ST_Contains`).
		WithArgs(-93.27, 44.98).
		WillReturnRows(pgxmock.NewRows([]string{"name", "description"}).
			AddRow("Wahpekute", "").
			AddRow("Očeti Šakówiŋ (Sioux)", "The Seven Council Fires"))

	store := NewPostgresStore(mock)
	lands, err := store.LandsAt(context.Background(), -93.27, 44.98)
	require.NoError(t, err)
	require.Len(t, lands, 2)
	assert.Equal(t, "Wahpekute", lands[0].Name)
	assert.Equal(t, "Očeti Šakówiŋ (Sioux)", lands[1].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLandsAt_EmptyIsNotAnError(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`ST_Contains`).
		WithArgs(0.0, 0.0).
		WillReturnRows(pgxmock.NewRows([]string{"name", "description"}))

	store := NewPostgresStore(mock)
	lands, err := store.LandsAt(context.Background(), 0, 0)
	require.NoError(t, err)
	assert.Empty(t, lands)
}

func TestLandsAt_LonLatArgumentOrder(t *testing.T) {
	// The point is built as ST_MakePoint(lon, lat); a swap would put every
	// query in the wrong hemisphere.
	assert.Contains(t, landsAtSQL, "ST_MakePoint($1, $2)")
	assert.Contains(t, landsAtSQL, "4326")
}
