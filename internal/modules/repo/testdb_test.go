package repo

import (
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fieldtrace-io/fieldtrace/internal/infra/db"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

// newTestDB opens an in-memory sqlite database with the full schema.
// The asset tables are created with raw DDL because their postgres
// default (gen_random_uuid) does not parse on sqlite; tests assign IDs
// explicitly instead.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	// A named shared-cache memory DB keeps gorm's connection pool on one
	// database while still isolating tests from each other.
	dsn := "file:" + strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()) + "?mode=memory&cache=shared"
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	ddl := []string{
		`CREATE TABLE sites (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			code TEXT NOT NULL UNIQUE,
			location TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`,
		`CREATE TABLE product_catalog (
			id TEXT PRIMARY KEY,
			category TEXT,
			equipment_type TEXT,
			product_name TEXT NOT NULL,
			product_number TEXT NOT NULL,
			created_at DATETIME
		)`,
		`CREATE TABLE asset_photos (
			id TEXT PRIMARY KEY,
			asset_id TEXT NOT NULL,
			asset_table TEXT NOT NULL,
			site_id TEXT NOT NULL,
			type TEXT NOT NULL,
			object_key TEXT NOT NULL,
			meta TEXT,
			created_at DATETIME
		)`,
	}
	for _, c := range model.Categories() {
		ddl = append(ddl, `CREATE TABLE `+c.Table()+` (
			id TEXT PRIMARY KEY,
			site_id TEXT NOT NULL,
			survey_date TEXT,
			equipment_type TEXT,
			product_name TEXT,
			product_number TEXT,
			serial_number TEXT,
			tag_number TEXT,
			tag_status TEXT,
			remarks TEXT,
			created_at DATETIME,
			updated_at DATETIME
		)`)
	}
	for _, stmt := range ddl {
		if err := gdb.Exec(stmt).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}
	if err := db.CreateLookupViews(gdb); err != nil {
		t.Fatalf("create views: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})
	return gdb
}
