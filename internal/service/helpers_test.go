package service

import (
	"io"
	"path/filepath"
	"testing"

	"ElectionSeed/internal/database"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const hokkaido1 = `,,北海道１区
,,開票所名,合計,札幌市中央区,札幌市北区
,,有権者数,500,200,300
,,投票者数,250,100,150
,,有効票,240,96,144
当,,山田太郎,自由民主党,前,55歳,150,60,90
,,佐藤一郎,無,新,40歳,90,36,54
`

const hokkaidoBlock = `北海道ブロック,北海道,比例票
政党名,得票数,得票率(%),札幌市中央区,札幌市中央区(%),札幌市北区,札幌市北区(%)
自由民主党,300,40.0,100,38.5,200,41.2
立憲民主党,250,33.3,120,46.3,130,26.8
`

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "election.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.Migrate(db))
	return db
}
