package storage

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"strings"

	"github.com/go-sql-driver/mysql"

	"tyrtlekarma/internal/config"
	"tyrtlekarma/internal/domain"
)

// Schema creates the tables MySQLStorage writes to
var Schema = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id CHAR(36) NOT NULL PRIMARY KEY,
		total_tests INT NOT NULL,
		executed_tests INT NOT NULL,
		passed_tests INT NOT NULL,
		failed_tests INT NOT NULL,
		dumps INT NOT NULL,
		completed BOOLEAN NOT NULL,
		duration_seconds DOUBLE NOT NULL,
		coverage JSON NULL,
		finished_at VARCHAR(32) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS failures (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		run_id CHAR(36) NOT NULL,
		module VARCHAR(255) NOT NULL,
		test_name VARCHAR(255) NOT NULL,
		message TEXT NOT NULL,
		time_ms BIGINT NOT NULL,
		INDEX idx_failures_run (run_id)
	)`,
}

// MySQLStorage stores run output in MySQL
type MySQLStorage struct {
	db   config.Database
	conn *sql.DB
}

// NewMySQLStorage returns a storage for the configured database. No
// connection is made until it is used.
func NewMySQLStorage(db config.Database) *MySQLStorage {
	return &MySQLStorage{db: db}
}

// DSN returns the data source name of db. With withName false the DSN
// connects to the server without selecting a database.
func DSN(db config.Database, withName bool) string {
	cfg := mysql.NewConfig()
	cfg.User = db.User
	cfg.Passwd = db.Password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(db.Host, db.Port)
	if withName {
		cfg.DBName = db.Name
	}
	return cfg.FormatDSN()
}

// Migrate creates the database if it does not exist, and then the schema
func (s *MySQLStorage) Migrate(ctx context.Context) error {
	if !isValidDatabaseName(s.db.Name) {
		return fmt.Errorf("invalid database name: %s", s.db.Name)
	}

	server, err := sql.Open("mysql", DSN(s.db, false))
	if err != nil {
		return fmt.Errorf("failed to connect to database server: %w", err)
	}
	defer server.Close()
	if err := server.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database server: %w", err)
	}
	if _, err := server.ExecContext(ctx, fmt.Sprintf("CREATE DATABASE IF NOT EXISTS `%s`", s.db.Name)); err != nil {
		return fmt.Errorf("failed to create database %s: %w", s.db.Name, err)
	}

	conn, err := s.open()
	if err != nil {
		return err
	}
	for _, stmt := range Schema {
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to create schema: %w", err)
		}
	}
	return nil
}

// Save inserts the run and its failures in one transaction
func (s *MySQLStorage) Save(output *domain.RunOutput) error {
	conn, err := s.open()
	if err != nil {
		return err
	}
	ctx := context.Background()
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	m := output.Meta
	var coverage interface{}
	if !m.Coverage.IsNull() {
		coverage = m.Coverage.JSONString()
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, total_tests, executed_tests, passed_tests, failed_tests, dumps, completed, duration_seconds, coverage, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.RunID, m.TotalTests, m.ExecutedTests, m.PassedTests, m.FailedTests, m.Dumps, m.Completed, m.DurationSeconds, coverage, m.Timestamp,
	); err != nil {
		return fmt.Errorf("insert run %s: %w", m.RunID, err)
	}

	for _, f := range output.Details {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO failures (run_id, module, test_name, message, time_ms) VALUES (?, ?, ?, ?, ?)`,
			m.RunID, f.Module, f.TestName, f.Message, f.TimeMS,
		); err != nil {
			return fmt.Errorf("insert failure %s/%s: %w", f.Module, f.TestName, err)
		}
	}
	return tx.Commit()
}

// Close closes the connection pool, if one was opened
func (s *MySQLStorage) Close() error {
	if s.conn == nil {
		return nil
	}
	return s.conn.Close()
}

func (s *MySQLStorage) open() (*sql.DB, error) {
	if s.conn != nil {
		return s.conn, nil
	}
	conn, err := sql.Open("mysql", DSN(s.db, true))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	s.conn = conn
	return conn, nil
}

// isValidDatabaseName validates database name (basic check)
func isValidDatabaseName(name string) bool {
	if len(name) == 0 || len(name) > 64 {
		return false
	}
	invalidChars := []string{"'", "\"", "`", ";", "--", "/*", "*/"}
	for _, char := range invalidChars {
		if strings.Contains(name, char) {
			return false
		}
	}
	return true
}
