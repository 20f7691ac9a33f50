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
		username TEXT UNIQUE NOT NULL,
		password_hash TEXT NOT NULL,
		full_name TEXT,
		bio TEXT,
		avatar_url TEXT,
		is_active BOOLEAN,
		is_verified BOOLEAN,
		verified_at DATETIME,
		last_password_reset_sent_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createProfileTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE profiles (
		id TEXT PRIMARY KEY,
		user_id TEXT UNIQUE NOT NULL,
		page_title TEXT,
		theme TEXT,
		background_color TEXT,
		text_color TEXT,
		button_style TEXT,
		meta_description TEXT,
		custom_domain TEXT UNIQUE,
		is_public BOOLEAN,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLinkTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE links (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		link_type TEXT NOT NULL,
		social_platform TEXT,
		title TEXT NOT NULL,
		url TEXT NOT NULL,
		description TEXT,
		thumbnail_url TEXT,
		position INTEGER NOT NULL,
		is_active BOOLEAN NOT NULL,
		click_count INTEGER NOT NULL,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createEmailVerificationTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE email_verification_tokens (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token TEXT UNIQUE NOT NULL,
		expires_at DATETIME NOT NULL,
		used BOOLEAN NOT NULL,
		created_at DATETIME
	);`)
}

func createPasswordResetTokenTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE email_password_reset_tokens (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		token TEXT UNIQUE NOT NULL,
		expires_at DATETIME NOT NULL,
		used BOOLEAN NOT NULL,
		created_at DATETIME
	);`)
}
