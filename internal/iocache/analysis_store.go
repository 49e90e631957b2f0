package iocache

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/mosegui/lookout/internal/contract"
	"github.com/mosegui/lookout/schema"
)

// Table names for analysis tracking.
const (
	runsTable    = "lookout_runs"
	entriesTable = "lookout_entries"
)

// AnalysisStoreImpl implements the AnalysisStore interface.
type AnalysisStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.AnalysisStore = &AnalysisStoreImpl{} // Compile-time check

// NewAnalysisStore creates a new AnalysisStore with the specified backend.
func NewAnalysisStore(backend schema.DatabaseBackend, connStr string) (contract.AnalysisStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetAnalysisDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite database at %q: %w. Check that the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open MySQL database: %w. Check connection string format: user:password@tcp(host:port)/dbname", err)
		}

	case schema.PostgreSQLBackend:
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open PostgreSQL database: %w. Check connection string format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled tracking
		return &AnalysisStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
		}, nil

	default:
		return nil, fmt.Errorf("unsupported backend: %s", backend)
	}

	// Ping to verify connection
	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string is correct. Ensure user/password are valid."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Verify the database server is running and accessible."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	// Create the table schemas
	if err := createAnalysisTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create analysis tables: %w", err)
	}

	return &AnalysisStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
	}, nil
}

// createAnalysisTables creates the analysis tracking tables.
func createAnalysisTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, getCreateRunsQuery(backend)},
		{entriesTable, getCreateEntriesQuery(backend)},
	}

	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}

	return nil
}

// getCreateRunsQuery returns the CREATE TABLE query for lookout_runs.
func getCreateRunsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(runsTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				total_files INT,
				config_params TEXT
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INT,
				total_files INT,
				config_params TEXT
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				total_files INTEGER,
				config_params TEXT
			);
		`, quotedTableName)
	}
}

// getCreateEntriesQuery returns the CREATE TABLE query for lookout_entries.
func getCreateEntriesQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(entriesTable, backend)

	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				entry_rank INT NOT NULL,
				file_path VARCHAR(512) NOT NULL,
				churn INT NOT NULL,
				complexity DOUBLE,
				score DOUBLE,
				PRIMARY KEY (run_id, entry_rank)
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				entry_rank INT NOT NULL,
				file_path TEXT NOT NULL,
				churn INT NOT NULL,
				complexity DOUBLE PRECISION,
				score DOUBLE PRECISION,
				PRIMARY KEY (run_id, entry_rank)
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				entry_rank INTEGER NOT NULL,
				file_path TEXT NOT NULL,
				churn INTEGER NOT NULL,
				complexity REAL,
				score REAL,
				PRIMARY KEY (run_id, entry_rank)
			);
		`, quotedTableName)
	}
}

// BeginRun creates a new analysis run and returns its unique ID.
func (as *AnalysisStoreImpl) BeginRun(startTime time.Time, configParams map[string]any) (int64, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return 0, nil
	}

	// Serialize config params to JSON
	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	quotedTableName := quoteTableName(runsTable, as.backend)

	var runID int64
	switch as.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES ($1, $2) RETURNING run_id`, quotedTableName)
		err = as.db.QueryRow(query, startTime, string(configJSON)).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (start_time, config_params) VALUES (?, ?)`, quotedTableName)
		var result sql.Result
		result, err = as.db.Exec(query, formatTime(startTime, as.backend), string(configJSON))
		if err != nil {
			return 0, err
		}
		runID, err = result.LastInsertId()
	}

	if err != nil {
		return 0, fmt.Errorf("failed to insert analysis run: %w", err)
	}

	return runID, nil
}

// EndRun updates the analysis run with completion data.
func (as *AnalysisStoreImpl) EndRun(runID int64, endTime time.Time, totalFiles int) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	// First, get the start_time to calculate duration
	quotedTableName := quoteTableName(runsTable, as.backend)
	var startTime time.Time

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = $1`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = ?`, quotedTableName)
	}

	row := as.db.QueryRow(query, runID)

	// Handle different time storage formats per backend
	switch as.backend {
	case schema.SQLiteBackend:
		var startTimeStr string
		if err := row.Scan(&startTimeStr); err != nil {
			return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
		var err error
		startTime, err = time.Parse(time.RFC3339Nano, startTimeStr)
		if err != nil {
			return fmt.Errorf("failed to parse start_time: %w", err)
		}
	default: // MySQL and PostgreSQL store as native datetime
		if err := row.Scan(&startTime); err != nil {
			return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
		}
	}

	// Calculate duration in milliseconds
	durationMs := endTime.Sub(startTime).Milliseconds()

	// Update the analysis run with completion data
	var updateQuery string
	var args []any

	switch as.backend {
	case schema.PostgreSQLBackend:
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = $1, run_duration_ms = $2, total_files = $3 WHERE run_id = $4`, quotedTableName)
		args = []any{endTime, durationMs, totalFiles, runID}
	default: // SQLite and MySQL
		updateQuery = fmt.Sprintf(`UPDATE %s SET end_time = ?, run_duration_ms = ?, total_files = ? WHERE run_id = ?`, quotedTableName)
		args = []any{formatTime(endTime, as.backend), durationMs, totalFiles, runID}
	}

	_, err := as.db.Exec(updateQuery, args...)
	if err != nil {
		return fmt.Errorf("failed to update analysis run: %w", err)
	}

	return nil
}

// RecordEntry stores one ranked file for a run. Undefined metrics are stored
// as SQL NULL.
func (as *AnalysisStoreImpl) RecordEntry(runID int64, rank int, entry schema.RefactoringEntry) error {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(entriesTable, as.backend)

	var complexity, score *float64
	if entry.Complexity.IsDefined() {
		v := entry.Complexity.Float64()
		complexity = &v
	}
	if entry.Score.IsDefined() {
		v := entry.Score.Float64()
		score = &v
	}

	var query string
	switch as.backend {
	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, entry_rank, file_path, churn, complexity, score)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, quotedTableName)
	default: // SQLite and MySQL
		query = fmt.Sprintf(`
			INSERT INTO %s (run_id, entry_rank, file_path, churn, complexity, score)
			VALUES (?, ?, ?, ?, ?, ?)
		`, quotedTableName)
	}

	_, err := as.db.Exec(query, runID, rank, entry.Path, entry.Churn, complexity, score)
	if err != nil {
		return fmt.Errorf("failed to insert ranking entry: %w", err)
	}

	return nil
}

// Close closes the underlying connection.
func (as *AnalysisStoreImpl) Close() error {
	if as.db != nil {
		return as.db.Close()
	}
	return nil
}

// GetStatus returns status information about the analysis store.
func (as *AnalysisStoreImpl) GetStatus() (schema.AnalysisStatus, error) {
	status := schema.AnalysisStatus{
		Backend:    string(as.backend),
		Connected:  as.db != nil,
		TableSizes: make(map[string]int64),
	}

	if as.backend == schema.NoneBackend || as.db == nil {
		return status, nil
	}

	// Get total runs
	runsQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(runsTable, as.backend))
	row := as.db.QueryRow(runsQuery)
	if err := row.Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		// Get last run info
		lastRunQuery := fmt.Sprintf("SELECT run_id, start_time FROM %s ORDER BY run_id DESC LIMIT 1", quoteTableName(runsTable, as.backend))
		row = as.db.QueryRow(lastRunQuery)

		switch as.backend {
		case schema.SQLiteBackend:
			var lastRunID int64
			var lastRunTimeStr string
			if err := row.Scan(&lastRunID, &lastRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
			status.LastRunID = lastRunID
			lastRunTime, err := time.Parse(time.RFC3339Nano, lastRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse last run time: %w", err)
			}
			status.LastRunTime = lastRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.LastRunID, &status.LastRunTime); err != nil {
				return status, fmt.Errorf("failed to get last run info: %w", err)
			}
		}

		// Get oldest run time
		oldestRunQuery := fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", quoteTableName(runsTable, as.backend))
		row = as.db.QueryRow(oldestRunQuery)

		switch as.backend {
		case schema.SQLiteBackend:
			var oldestRunTimeStr string
			if err := row.Scan(&oldestRunTimeStr); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
			oldestRunTime, err := time.Parse(time.RFC3339Nano, oldestRunTimeStr)
			if err != nil {
				return status, fmt.Errorf("failed to parse oldest run time: %w", err)
			}
			status.OldestRunTime = oldestRunTime
		default: // MySQL and PostgreSQL store as native datetime
			if err := row.Scan(&status.OldestRunTime); err != nil {
				return status, fmt.Errorf("failed to get oldest run time: %w", err)
			}
		}

		// Get total files ranked
		filesQuery := fmt.Sprintf("SELECT COALESCE(SUM(total_files), 0) FROM %s", quoteTableName(runsTable, as.backend))
		row = as.db.QueryRow(filesQuery)
		if err := row.Scan(&status.TotalFiles); err != nil {
			return status, fmt.Errorf("failed to get total files: %w", err)
		}
	}

	// Get table sizes
	for _, table := range []string{runsTable, entriesTable} {
		quotedTable := quoteTableName(table, as.backend)
		countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTable)
		row = as.db.QueryRow(countQuery)
		var count int64
		if err := row.Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}

	return status, nil
}

// GetAllRuns retrieves all analysis runs from the store.
func (as *AnalysisStoreImpl) GetAllRuns() ([]schema.AnalysisRunRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(runsTable, as.backend)
	query := fmt.Sprintf("SELECT run_id, start_time, end_time, run_duration_ms, total_files, config_params FROM %s ORDER BY run_id", quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query analysis runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.AnalysisRunRecord

	for rows.Next() {
		var record schema.AnalysisRunRecord
		var totalFiles sql.NullInt32

		switch as.backend {
		case schema.SQLiteBackend:
			var startTimeStr string
			var endTimeStr *string
			if err := rows.Scan(&record.RunID, &startTimeStr, &endTimeStr, &record.RunDurationMs, &totalFiles, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
			startTime, err := time.Parse(time.RFC3339Nano, startTimeStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse start_time: %w", err)
			}
			record.StartTime = startTime
			if endTimeStr != nil {
				endTime, err := time.Parse(time.RFC3339Nano, *endTimeStr)
				if err != nil {
					return nil, fmt.Errorf("failed to parse end_time: %w", err)
				}
				record.EndTime = &endTime
			}
		default: // MySQL and PostgreSQL
			if err := rows.Scan(&record.RunID, &record.StartTime, &record.EndTime, &record.RunDurationMs, &totalFiles, &record.ConfigParams); err != nil {
				return nil, fmt.Errorf("failed to scan analysis run: %w", err)
			}
		}

		if totalFiles.Valid {
			record.TotalFiles = totalFiles.Int32
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis runs: %w", err)
	}

	return results, nil
}

// GetAllEntries retrieves all ranking entries from the store.
func (as *AnalysisStoreImpl) GetAllEntries() ([]schema.RankingEntryRecord, error) {
	// Skip for NoneBackend
	if as.backend == schema.NoneBackend || as.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(entriesTable, as.backend)
	query := fmt.Sprintf("SELECT run_id, entry_rank, file_path, churn, complexity, score FROM %s ORDER BY run_id, entry_rank", quotedTableName)

	rows, err := as.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query ranking entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RankingEntryRecord

	for rows.Next() {
		var record schema.RankingEntryRecord
		if err := rows.Scan(&record.RunID, &record.Rank, &record.FilePath, &record.Churn, &record.Complexity, &record.Score); err != nil {
			return nil, fmt.Errorf("failed to scan ranking entry: %w", err)
		}
		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating ranking entries: %w", err)
	}

	return results, nil
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.Format(time.RFC3339Nano)
	default:
		return t
	}
}
