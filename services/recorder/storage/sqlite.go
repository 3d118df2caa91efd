package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/iulianpascalau/site-monitoring/services/recorder/common"
	_ "github.com/mattn/go-sqlite3"
	logger "github.com/multiversx/mx-chain-logger-go"
)

const sweepInterval = time.Hour

var log = logger.GetOrCreate("storage")

// sqliteStorage is the sqlite implementation for the alarm history store
type sqliteStorage struct {
	db         *sql.DB
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
}

// NewSQLiteStorage creates the database, schema, and starts the expiry sweeper
func NewSQLiteStorage(dbPath string) (*sqliteStorage, error) {
	err := prepareDirectories(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create initial empty DB file: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = createSchema(db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &sqliteStorage{
		db:         db,
		cancelFunc: cancel,
	}

	s.startExpirySweeper(ctx)

	return s, nil
}

func prepareDirectories(dbPath string) error {
	if dbPath == ":memory:" {
		return nil
	}

	return os.MkdirAll(filepath.Dir(dbPath), os.ModePerm)
}

func createSchema(db *sql.DB) error {

	schema := `
	CREATE TABLE IF NOT EXISTS alarm_history (
		alarm_name          TEXT    NOT NULL,
		state_change_time   TEXT    NOT NULL,
		record_id           TEXT    NOT NULL,
		new_state           TEXT    NOT NULL,
		old_state           TEXT    NOT NULL,
		reason              TEXT    NOT NULL DEFAULT '',
		region              TEXT    NOT NULL DEFAULT '',
		metric_name         TEXT    NOT NULL DEFAULT '',
		namespace           TEXT    NOT NULL DEFAULT '',
		threshold           REAL    NOT NULL DEFAULT 0,
		comparison          TEXT    NOT NULL DEFAULT '',
		evaluation_periods  INTEGER NOT NULL DEFAULT 0,
		datapoints_to_alarm INTEGER NOT NULL DEFAULT 0,
		expires_at          INTEGER NOT NULL,
		raw_payload         TEXT    NOT NULL,
		PRIMARY KEY (alarm_name, state_change_time)
	);

	CREATE INDEX IF NOT EXISTS idx_alarm_history_expires_at ON alarm_history(expires_at);
	`

	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// SaveRecord upserts one history record by its (alarm_name, state_change_time)
// key. A duplicate delivery overwrites the existing row instead of appending,
// which is what makes at-least-once redelivery of an already-recorded batch
// safe. The fresh record_id of the latest write wins.
func (s *sqliteStorage) SaveRecord(ctx context.Context, rec *common.HistoryRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO alarm_history (
			alarm_name, state_change_time, record_id, new_state, old_state,
			reason, region, metric_name, namespace, threshold, comparison,
			evaluation_periods, datapoints_to_alarm, expires_at, raw_payload
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(alarm_name, state_change_time) DO UPDATE SET
			record_id=excluded.record_id,
			new_state=excluded.new_state,
			old_state=excluded.old_state,
			reason=excluded.reason,
			region=excluded.region,
			metric_name=excluded.metric_name,
			namespace=excluded.namespace,
			threshold=excluded.threshold,
			comparison=excluded.comparison,
			evaluation_periods=excluded.evaluation_periods,
			datapoints_to_alarm=excluded.datapoints_to_alarm,
			expires_at=excluded.expires_at,
			raw_payload=excluded.raw_payload
	`, rec.AlarmName, rec.StateChangeTime, rec.RecordID, rec.NewState, rec.OldState,
		rec.Reason, rec.Region, rec.MetricName, rec.Namespace, rec.Threshold, rec.Comparison,
		rec.EvaluationPeriods, rec.DatapointsToAlarm, rec.ExpiresAt, rec.RawPayload)
	if err != nil {
		return fmt.Errorf("failed to upsert history record: %w", err)
	}

	return nil
}

// GetAlarmHistory returns all retained transitions of one alarm in
// chronological order (the sort key is string-sortable ISO-8601)
func (s *sqliteStorage) GetAlarmHistory(ctx context.Context, alarmName string) ([]common.HistoryRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT alarm_name, state_change_time, record_id, new_state, old_state,
			reason, region, metric_name, namespace, threshold, comparison,
			evaluation_periods, datapoints_to_alarm, expires_at, raw_payload
		FROM alarm_history
		WHERE alarm_name = ?
		ORDER BY state_change_time
	`, alarmName)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var results []common.HistoryRecord

	for rows.Next() {
		var rec common.HistoryRecord

		err = rows.Scan(&rec.AlarmName, &rec.StateChangeTime, &rec.RecordID, &rec.NewState, &rec.OldState,
			&rec.Reason, &rec.Region, &rec.MetricName, &rec.Namespace, &rec.Threshold, &rec.Comparison,
			&rec.EvaluationPeriods, &rec.DatapointsToAlarm, &rec.ExpiresAt, &rec.RawPayload)
		if err != nil {
			return nil, err
		}

		results = append(results, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	if len(results) == 0 {
		return nil, fmt.Errorf("alarm not found")
	}

	return results, nil
}

// GetAlarmNames returns the distinct alarm names present in the history
func (s *sqliteStorage) GetAlarmNames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT alarm_name FROM alarm_history ORDER BY alarm_name")
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	names := make([]string, 0)
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}

// sweepExpiredRecords executes the passive expiry cleanup query synchronously.
// Records themselves carry their expires_at timestamp; no caller ever issues
// an explicit delete.
func (s *sqliteStorage) sweepExpiredRecords(ctx context.Context) error {
	nowSec := time.Now().Unix()
	_, err := s.db.ExecContext(ctx, "DELETE FROM alarm_history WHERE expires_at < ?", nowSec)
	return err
}

func (s *sqliteStorage) startExpirySweeper(ctx context.Context) {
	s.wg.Add(1)

	ticker := time.NewTicker(sweepInterval)

	go func() {
		defer s.wg.Done()
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				log.Debug("running expiry sweep")

				err := s.sweepExpiredRecords(ctx)
				if err != nil {
					log.Warn("failed to sweep expired records", "error", err)
				}
			}
		}
	}()
}

// Close closes the database and stops background routines
func (s *sqliteStorage) Close() error {
	s.cancelFunc()
	s.wg.Wait()
	return s.db.Close()
}

// IsInterfaceNil returns true if the value under the interface is nil
func (s *sqliteStorage) IsInterfaceNil() bool {
	return s == nil
}
