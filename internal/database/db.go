// Package database opens the MySQL pool and owns the schema DDL.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Open connects to MySQL and verifies the connection.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	auth := user
	if pass != "" {
		auth = fmt.Sprintf("%s:%s", user, pass)
	}
	// parseTime=true -> DATETIME -> time.Time | loc=UTC keeps times consistent
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		auth, host, port, name)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	// Pool settings
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(30 * time.Minute)

	// Ping with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}

// schema holds the DDL for all tables, in dependency order. Every
// statement is idempotent so EnsureSchema can run at each startup.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		email         VARCHAR(255) NOT NULL,
		password_hash VARCHAR(255) NOT NULL,
		role          VARCHAR(16)  NOT NULL DEFAULT 'CUSTOMER',
		is_active     TINYINT(1)   NOT NULL DEFAULT 1,
		created_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at    TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id    BIGINT UNSIGNED NOT NULL,
		token_hash CHAR(64)  NOT NULL,
		expires_at DATETIME  NOT NULL,
		revoked_at DATETIME  NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		UNIQUE KEY refresh_tokens_hash (token_hash),
		CONSTRAINT fk_refresh_tokens_user FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS bikes (
		id                   BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		category             VARCHAR(16)  NOT NULL,
		brand                VARCHAR(50)  NOT NULL,
		model                VARCHAR(50)  NOT NULL,
		price_per_hour_cents BIGINT       NOT NULL,
		available            TINYINT(1)   NOT NULL DEFAULT 1,
		description          TEXT         NULL,
		mileage_kmpl         DECIMAL(6,2) NOT NULL DEFAULT 0,
		image_url            VARCHAR(512) NULL,
		created_at           TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at           TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		CONSTRAINT chk_bikes_price CHECK (price_per_hour_cents >= 0),
		CONSTRAINT chk_bikes_category CHECK (category IN ('ROAD','MOUNTAIN','HYBRID','ELECTRIC'))
	)`,
	`CREATE TABLE IF NOT EXISTS locations (
		id         BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name       VARCHAR(255) NOT NULL,
		address    TEXT         NOT NULL,
		city       VARCHAR(100) NOT NULL,
		state      VARCHAR(100) NOT NULL,
		zip_code   VARCHAR(10)  NOT NULL,
		created_at TIMESTAMP    NOT NULL DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS rentals (
		id                  BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		user_id             BIGINT UNSIGNED NOT NULL,
		bike_id             BIGINT UNSIGNED NOT NULL,
		pickup_location_id  BIGINT UNSIGNED NULL,
		dropoff_location_id BIGINT UNSIGNED NULL,
		pickup_at           DATETIME  NOT NULL,
		dropoff_at          DATETIME  NOT NULL,
		total_price_cents   BIGINT    NOT NULL DEFAULT 0,
		created_at          TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
		KEY rentals_user (user_id),
		CONSTRAINT fk_rentals_user    FOREIGN KEY (user_id) REFERENCES users(id)     ON DELETE CASCADE,
		CONSTRAINT fk_rentals_bike    FOREIGN KEY (bike_id) REFERENCES bikes(id)     ON DELETE CASCADE,
		CONSTRAINT fk_rentals_pickup  FOREIGN KEY (pickup_location_id)  REFERENCES locations(id),
		CONSTRAINT fk_rentals_dropoff FOREIGN KEY (dropoff_location_id) REFERENCES locations(id),
		CONSTRAINT chk_rentals_price  CHECK (total_price_cents >= 0)
	)`,
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return nil
}
