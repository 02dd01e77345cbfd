// Package testutil stellt Hilfen für Tests gegen eine In-Memory-Datenbank bereit.
package testutil

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"storefront/models"
)

// driverName ist SQLite mit einem LOWER, das wie PostgreSQL auch
// Nicht-ASCII-Buchstaben umwandelt. Das eingebaute LOWER von SQLite kennt
// nur ASCII.
const driverName = "sqlite3_unicode_lower"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("lower", strings.ToLower, true)
		},
	})
}

// NewDB öffnet eine frische In-Memory-SQLite-Datenbank mit allen Tabellen.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.New(sqlite.Config{DriverName: driverName, DSN: ":memory:"}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	// Jede Verbindung hätte sonst ihre eigene, leere In-Memory-DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models.All()...), "failed to migrate test database")
	return db
}
