package database

import (
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"github.com/onurcolak/listener-text-service/environments"
	"github.com/onurcolak/listener-text-service/pkg/logger"
)

// DSN builds the driver connection string. clientFoundRows makes UPDATE report
// matched rows, so re-applying an unchanged value is not mistaken for a missing id.
func DSN(cfg environments.DatabaseConfig) string {
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%s)/%s?parseTime=true&loc=UTC&clientFoundRows=true&charset=utf8mb4&collation=utf8mb4_unicode_ci",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName,
	)
}

func NewMySQLDB(cfg environments.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Connect("mysql", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	// Verify connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Infof("Connected to MySQL database")
	return db, nil
}

var migrations = []string{
	`
	CREATE TABLE IF NOT EXISTS messages (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		phone VARCHAR(32) NOT NULL,
		text TEXT NOT NULL,
		received_at DATETIME(6) NOT NULL,
		is_read BOOLEAN NOT NULL DEFAULT FALSE,
		replied BOOLEAN NOT NULL DEFAULT FALSE,
		reply_text TEXT NULL,
		replied_at DATETIME(6) NULL,
		INDEX idx_messages_received_at (received_at)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`,
	`
	CREATE TABLE IF NOT EXISTS settings (
		setting_key VARCHAR(64) NOT NULL PRIMARY KEY,
		setting_value VARCHAR(255) NOT NULL,
		updated_at DATETIME(6) NOT NULL
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4 COLLATE=utf8mb4_unicode_ci;
	`,
}

func RunMigrations(db *sqlx.DB) error {
	for _, schema := range migrations {
		if _, err := db.Exec(schema); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.Infof("Database migrations completed")

	return nil
}

func SeedTestData(db *sqlx.DB) error {
	var count int

	err := db.Get(&count, "SELECT COUNT(*) FROM messages")
	if err != nil {
		return err
	}

	if count > 0 {
		logger.Infof("Database already has %d messages, skipping seed", count)
		return nil
	}

	now := time.Now().UTC()

	testMessages := []struct {
		phone string
		text  string
		age   time.Duration
	}{
		{"+19015550123", "Play some Big Star please!", 5 * time.Minute},
		{"+19015550188", "Shoutout to the night shift at St. Jude", 20 * time.Minute},
		{"+19015550101", "What was that last song?", 45 * time.Minute},
		{"+19015550177", "Love the show, listening from Midtown", 2 * time.Hour},
		{"+19015550142", "Any tickets left for Friday?", 6 * time.Hour},
		{"+19015550199", "Request: Memphis Minnie, anything", 30 * time.Hour},
	}

	for _, msg := range testMessages {
		_, err := db.Exec(
			"INSERT INTO messages (phone, text, received_at) VALUES (?, ?, ?)",
			msg.phone, msg.text, now.Add(-msg.age),
		)
		if err != nil {
			return fmt.Errorf("failed to seed test data: %w", err)
		}
	}

	logger.Infof("Seeded %d test messages", len(testMessages))
	return nil
}
