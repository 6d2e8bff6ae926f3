package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createUserTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE users (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		anonimax_id TEXT UNIQUE NOT NULL,
		is_verified BOOLEAN NOT NULL DEFAULT 0,
		is_admin BOOLEAN NOT NULL DEFAULT 0,
		verification_token TEXT,
		reset_token TEXT,
		reset_token_expires DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		anonimax_id TEXT UNIQUE NOT NULL,
		session_id TEXT,
		crypto_address TEXT,
		crypto_network TEXT,
		state TEXT,
		description TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createListingTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE listings (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		anonimax_id TEXT NOT NULL,
		title TEXT NOT NULL,
		content TEXT NOT NULL,
		category TEXT NOT NULL,
		state TEXT NOT NULL,
		status TEXT NOT NULL,
		payment_status TEXT NOT NULL,
		expires_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createPaymentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE payments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		listing_id TEXT,
		amount REAL NOT NULL,
		currency TEXT NOT NULL,
		network TEXT NOT NULL,
		type TEXT NOT NULL,
		status TEXT NOT NULL,
		tx_hash TEXT,
		verified_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createFavoriteTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE favorites (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		target_anonimax_id TEXT NOT NULL,
		custom_name TEXT,
		custom_description TEXT,
		created_at DATETIME,
		UNIQUE (user_id, target_anonimax_id)
	);`)
}
