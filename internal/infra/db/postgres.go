package db

import (
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/fieldtrace-io/fieldtrace/internal/config"
	"github.com/fieldtrace-io/fieldtrace/internal/modules/model"
)

func NewPostgres(cfg *config.Config) (*gorm.DB, error) {
	gdb, err := gorm.Open(postgres.Open(cfg.DB.DSN), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(cfg.DB.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DB.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.DB.ConnMaxLifetime)

	if err := Migrate(gdb); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return gdb, nil
}

// Migrate creates the fixed tables plus the five per-category asset
// tables, then (re)creates the read-only lookup views the dropdowns
// are populated from.
func Migrate(gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(
		&model.User{},
		&model.Site{},
		&model.AssetPhoto{},
		&model.CatalogProduct{},
	); err != nil {
		return err
	}
	for _, c := range model.Categories() {
		if err := gdb.Table(c.Table()).AutoMigrate(&model.AssetRow{}); err != nil {
			return err
		}
	}
	return CreateLookupViews(gdb)
}

// CreateLookupViews builds v_equipment_types, v_product_names and
// v_tag_statuses over the five asset tables. DROP+CREATE is used
// instead of CREATE OR REPLACE so the same statements run on the
// sqlite test database.
func CreateLookupViews(gdb *gorm.DB) error {
	equipParts := make([]string, 0, 5)
	productParts := make([]string, 0, 5)
	tagParts := make([]string, 0, 5)
	for _, c := range model.Categories() {
		equipParts = append(equipParts, fmt.Sprintf(
			"SELECT DISTINCT '%s' AS category, equipment_type FROM %s WHERE equipment_type <> ''",
			c, c.Table()))
		productParts = append(productParts, fmt.Sprintf(
			"SELECT DISTINCT '%s' AS category, equipment_type, product_name FROM %s WHERE product_name <> ''",
			c, c.Table()))
		tagParts = append(tagParts, fmt.Sprintf(
			"SELECT tag_status FROM %s WHERE tag_status <> ''", c.Table()))
	}

	views := map[string]string{
		"v_equipment_types": strings.Join(equipParts, " UNION ALL "),
		"v_product_names":   strings.Join(productParts, " UNION ALL "),
		"v_tag_statuses": fmt.Sprintf("SELECT DISTINCT tag_status FROM (%s) AS t",
			strings.Join(tagParts, " UNION ALL ")),
	}
	for name, query := range views {
		if err := gdb.Exec("DROP VIEW IF EXISTS " + name).Error; err != nil {
			return err
		}
		if err := gdb.Exec(fmt.Sprintf("CREATE VIEW %s AS %s", name, query)).Error; err != nil {
			return err
		}
	}
	return nil
}
