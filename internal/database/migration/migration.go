package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_table_roles",
		SQL: `CREATE TABLE IF NOT EXISTS roles (
  id   BIGSERIAL PRIMARY KEY,
  name TEXT NOT NULL UNIQUE
);`,
	},
	{
		Name: "seed_roles",
		SQL:  `INSERT INTO roles (name) VALUES ('user'), ('admin') ON CONFLICT (name) DO NOTHING;`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id              BIGSERIAL   PRIMARY KEY,
  email           TEXT        NOT NULL UNIQUE,
  hashed_password TEXT        NOT NULL,
  name            TEXT        NOT NULL,
  phone           TEXT,
  is_verified     BOOLEAN     NOT NULL DEFAULT FALSE,
  role_id         BIGINT      NOT NULL DEFAULT 1 REFERENCES roles (id),
  created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_categories",
		SQL: `CREATE TABLE IF NOT EXISTS categories (
  id          BIGSERIAL PRIMARY KEY,
  name        TEXT      NOT NULL UNIQUE,
  description TEXT
);`,
	},
	{
		Name: "create_table_locations",
		SQL: `CREATE TABLE IF NOT EXISTS locations (
  id      BIGSERIAL PRIMARY KEY,
  city    TEXT      NOT NULL,
  region  TEXT      NOT NULL,
  country TEXT,
  address TEXT
);`,
	},
	{
		Name: "create_table_items",
		SQL: `CREATE TABLE IF NOT EXISTS items (
  id          BIGSERIAL        PRIMARY KEY,
  user_id     BIGINT           NOT NULL REFERENCES users (id),
  category_id BIGINT           NOT NULL REFERENCES categories (id),
  location_id BIGINT           NOT NULL REFERENCES locations (id),
  title       TEXT             NOT NULL,
  description TEXT,
  price       DOUBLE PRECISION NOT NULL DEFAULT 0,
  is_active   BOOLEAN          NOT NULL DEFAULT TRUE,
  photo_path  TEXT,
  created_at  TIMESTAMPTZ      NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_items_category_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_items_category_id ON items (category_id);`,
	},
	{
		Name: "create_index_items_location_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_items_location_id ON items (location_id);`,
	},
	{
		Name: "create_index_items_user_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_items_user_id ON items (user_id);`,
	},
	{
		Name: "create_table_reviews",
		SQL: `CREATE TABLE IF NOT EXISTS reviews (
  id         BIGSERIAL        PRIMARY KEY,
  item_id    BIGINT           NOT NULL REFERENCES items (id),
  user_id    BIGINT           NOT NULL REFERENCES users (id),
  rating     DOUBLE PRECISION NOT NULL,
  text       TEXT             NOT NULL,
  created_at TIMESTAMPTZ      NOT NULL DEFAULT now(),
  UNIQUE (item_id, user_id)
);`,
	},
	{
		Name: "create_table_messages",
		SQL: `CREATE TABLE IF NOT EXISTS messages (
  id           BIGSERIAL   PRIMARY KEY,
  sender_id    BIGINT      NOT NULL REFERENCES users (id),
  recipient_id BIGINT      NOT NULL REFERENCES users (id),
  item_id      BIGINT      NOT NULL REFERENCES items (id),
  text         TEXT        NOT NULL,
  is_read      BOOLEAN     NOT NULL DEFAULT FALSE,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (sender_id, recipient_id, item_id, text)
);`,
	},
	{
		Name: "create_index_messages_sender_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_messages_sender_id ON messages (sender_id);`,
	},
	{
		Name: "create_index_messages_recipient_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_messages_recipient_id ON messages (recipient_id);`,
	},
}

// EnsureMigrated checks if the 'items' table exists and runs migrations if it doesn't.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	start := time.Now()

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_check",
		"status":    "starting",
		"db_host":   dbHost,
	})

	var exists bool
	query := "SELECT to_regclass('public.items') IS NOT NULL"
	err := db.QueryRowContext(ctx, query).Scan(&exists)
	if err != nil {
		logJSON(loc, map[string]any{
			"component":     "database",
			"event":         "db_migration_failed",
			"status":        "error",
			"error_message": fmt.Sprintf("failed to check sentinel table: %v", err),
			"db_host":       dbHost,
			"duration_ms":   time.Since(start).Milliseconds(),
		})
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}

	if exists {
		logJSON(loc, map[string]any{
			"component":   "database",
			"event":       "db_migration_skip",
			"status":      "success",
			"msg":         "schema already exists, skipping migration",
			"db_host":     dbHost,
			"duration_ms": time.Since(start).Milliseconds(),
		})
		return nil
	}

	logJSON(loc, map[string]any{
		"component": "database",
		"event":     "db_migration_start",
		"status":    "in_progress",
		"db_host":   dbHost,
	})

	for _, step := range steps {
		stepStart := time.Now()
		_, err := db.ExecContext(ctx, step.SQL)
		if err != nil {
			logJSON(loc, map[string]any{
				"component":        "database",
				"event":            "db_migration_failed",
				"status":           "error",
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"db_host":          dbHost,
				"duration_ms":      time.Since(start).Milliseconds(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}

		logJSON(loc, map[string]any{
			"component":        "database",
			"event":            "db_migration_step",
			"status":           "success",
			"migration_step":   step.Name,
			"db_host":          dbHost,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	logJSON(loc, map[string]any{
		"component":   "database",
		"event":       "db_migration_success",
		"status":      "success",
		"db_host":     dbHost,
		"duration_ms": time.Since(start).Milliseconds(),
	})

	return nil
}

func logJSON(loc *time.Location, data map[string]any) {
	data["ts"] = time.Now().In(loc).Format(time.RFC3339Nano)
	if _, ok := data["level"]; !ok {
		if data["status"] == "error" {
			data["level"] = "error"
		} else {
			data["level"] = "info"
		}
	}

	b, err := json.Marshal(data)
	if err != nil {
		log.Printf("failed to marshal migration log: %v", err)
		return
	}
	log.SetFlags(0)
	log.Println(string(b))
}
