package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationFilesExist(t *testing.T) {
	migrationsDir := "../../migrations"

	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		t.Fatal("Migrations directory does not exist")
	}

	expectedMigrations := []string{
		"00001_create_roles_table.sql",
		"00002_create_users_table.sql",
		"00003_create_refresh_tokens_table.sql",
		"00004_create_categories_table.sql",
		"00005_create_products_table.sql",
		"00006_create_reviews_table.sql",
		"00007_create_updated_at_trigger.sql",
	}

	for _, migration := range expectedMigrations {
		path := filepath.Join(migrationsDir, migration)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			t.Errorf("Migration file %s does not exist", migration)
		}
	}
}

func TestMigrationFilesHaveUpAndDown(t *testing.T) {
	migrationsDir := "../../migrations"

	files, err := os.ReadDir(migrationsDir)
	if err != nil {
		t.Fatalf("Failed to read migrations directory: %v", err)
	}

	sqlFileCount := 0
	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		sqlFileCount++
		content, err := os.ReadFile(filepath.Join(migrationsDir, file.Name()))
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", file.Name(), err)
			continue
		}

		contentStr := string(content)

		if !strings.Contains(contentStr, "-- +goose Up") {
			t.Errorf("Migration file %s missing '-- +goose Up' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose Down") {
			t.Errorf("Migration file %s missing '-- +goose Down' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose StatementBegin") {
			t.Errorf("Migration file %s missing '-- +goose StatementBegin' directive", file.Name())
		}
		if !strings.Contains(contentStr, "-- +goose StatementEnd") {
			t.Errorf("Migration file %s missing '-- +goose StatementEnd' directive", file.Name())
		}
	}

	if sqlFileCount == 0 {
		t.Error("No SQL migration files found")
	}
}

func TestMigrationFilesCreateExpectedTables(t *testing.T) {
	migrationsDir := "../../migrations"

	expectedTables := map[string]string{
		"roles":          "00001_create_roles_table.sql",
		"users":          "00002_create_users_table.sql",
		"refresh_tokens": "00003_create_refresh_tokens_table.sql",
		"categories":     "00004_create_categories_table.sql",
		"products":       "00005_create_products_table.sql",
		"reviews":        "00006_create_reviews_table.sql",
	}

	for tableName, migrationFile := range expectedTables {
		path := filepath.Join(migrationsDir, migrationFile)
		content, err := os.ReadFile(path)
		if err != nil {
			t.Errorf("Failed to read migration file %s: %v", migrationFile, err)
			continue
		}

		contentStr := string(content)

		createTableStmt := "CREATE TABLE IF NOT EXISTS " + tableName
		if !strings.Contains(contentStr, createTableStmt) {
			t.Errorf("Migration file %s does not create table %s", migrationFile, tableName)
		}

		dropTableStmt := "DROP TABLE IF EXISTS " + tableName
		if !strings.Contains(contentStr, dropTableStmt) {
			t.Errorf("Migration file %s does not drop table %s in down section", migrationFile, tableName)
		}
	}
}

func TestUsersTableHasRequiredColumns(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00002_create_users_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read users migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"id CHAR(24) PRIMARY KEY",
		"email VARCHAR",
		"password_hash VARCHAR",
		"full_name VARCHAR",
		"phone VARCHAR",
		"address VARCHAR",
		"role_id BIGINT",
		"created_at TIMESTAMP",
		"updated_at TIMESTAMP",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Users table missing required column definition: %s", column)
		}
	}

	// The email unique index is the real uniqueness guarantee; the service
	// pre-check is only advisory
	if !strings.Contains(contentStr, "email VARCHAR(255) NOT NULL UNIQUE") {
		t.Error("Users table missing unique constraint on email")
	}
}

func TestProductsTableHasRequiredColumns(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00005_create_products_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read products migration: %v", err)
	}

	contentStr := string(content)
	requiredColumns := []string{
		"name VARCHAR",
		"description TEXT",
		"price DECIMAL",
		"sale_price DECIMAL",
		"sku VARCHAR",
		"stock_quantity INTEGER",
		"category_id BIGINT",
		"gallery JSONB",
		"status VARCHAR",
		"view_count BIGINT",
		"created_at TIMESTAMP",
		"updated_at TIMESTAMP",
	}

	for _, column := range requiredColumns {
		if !strings.Contains(contentStr, column) {
			t.Errorf("Products table missing required column definition: %s", column)
		}
	}

	if !strings.Contains(contentStr, "FOREIGN KEY (category_id)") {
		t.Error("Products table missing foreign key constraint to categories")
	}
}

func TestProductsTableHasStatusConstraint(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00005_create_products_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read products migration: %v", err)
	}

	contentStr := string(content)
	requiredStatuses := []string{"active", "inactive", "draft"}
	for _, status := range requiredStatuses {
		if !strings.Contains(contentStr, status) {
			t.Errorf("Products table status constraint missing value: %s", status)
		}
	}
}

func TestReviewsTableHasRatingConstraint(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00006_create_reviews_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read reviews migration: %v", err)
	}

	contentStr := string(content)

	if !strings.Contains(contentStr, "rating INTEGER NOT NULL CHECK (rating BETWEEN 1 AND 5)") {
		t.Error("Reviews table missing rating range constraint")
	}

	if !strings.Contains(contentStr, "ON DELETE CASCADE") {
		t.Error("Reviews table should cascade on product deletion")
	}
}

func TestRolesTableSeedsDefaultRoles(t *testing.T) {
	migrationsDir := "../../migrations"
	path := filepath.Join(migrationsDir, "00001_create_roles_table.sql")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read roles migration: %v", err)
	}

	contentStr := string(content)
	for _, role := range []string{"'admin'", "'customer'"} {
		if !strings.Contains(contentStr, role) {
			t.Errorf("Roles migration missing seed role %s", role)
		}
	}
}
