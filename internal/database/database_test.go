package database

import (
	"io"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"ElectionSeed/internal/config"
	"ElectionSeed/internal/model"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestOpenSQLiteMigrates(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver:   DriverSQLite,
		DSN:      filepath.Join(t.TempDir(), "election.db"),
		LogLevel: "silent",
	}
	db, err := Open(cfg, quietLogger())
	require.NoError(t, err)

	for _, table := range []interface{}{&model.Block{}, &model.CandidateVote{}, &model.PartyVote{}, &model.ImportRun{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasTable("Votes_Shosenkyo"))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(config.DatabaseConfig{Driver: "oracle", DSN: "x"}, quietLogger())
	assert.Error(t, err)
}

func TestAdminTarget(t *testing.T) {
	u, err := url.Parse("postgres://u:p@localhost:5432/election?sslmode=disable")
	require.NoError(t, err)
	assert.Equal(t, "election", adminTarget(u))
	assert.Equal(t, "/postgres", u.Path)
	assert.Equal(t, "sslmode=disable", u.RawQuery)

	u, err = url.Parse("postgres://localhost/postgres")
	require.NoError(t, err)
	assert.Empty(t, adminTarget(u))
}

func TestGormLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, gormLogLevel("silent"))
	assert.Equal(t, logger.Info, gormLogLevel("info"))
	assert.Equal(t, logger.Warn, gormLogLevel(""))
}
