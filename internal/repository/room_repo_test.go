package repository

import (
	"os"
	"path/filepath"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListRoomStatesSelectsEstadoColumn(t *testing.T) {
	conn, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer conn.Close()

	mock.ExpectQuery("SELECT id, estado FROM estados_habitacion").
		WillReturnRows(sqlmock.NewRows([]string{"id", "estado"}).
			AddRow(1, "disponible").
			AddRow(2, "mantenimiento"))

	repo := NewRoomRepository(conn)
	states, err := repo.ListRoomStates()
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, "disponible", states[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The estados_habitacion queries name the column `estado`; the migration has
// to declare the same column or every room listing breaks at runtime.
func TestRoomStateSchemaDeclaresEstadoColumn(t *testing.T) {
	ddl, err := os.ReadFile(filepath.Join("..", "..", "migrations", "001_init.sql"))
	require.NoError(t, err)

	block := regexp.MustCompile(`(?s)CREATE TABLE IF NOT EXISTS estados_habitacion \(.*?\);`).
		Find(ddl)
	require.NotNil(t, block)
	assert.Contains(t, string(block), "estado TEXT NOT NULL")
	assert.NotContains(t, string(block), "nombre")
}
