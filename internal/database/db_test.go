package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/spivocab/internal/config"
)

func TestOpen(t *testing.T) {
	tests := []struct {
		name       string
		cfg        config.DatabaseConfig
		wantDriver string
		wantErr    bool
	}{
		{
			name: "mysql with all settings",
			cfg: config.DatabaseConfig{
				Driver:          "mysql",
				Host:            "localhost",
				Port:            3306,
				Database:        "spivocab",
				Username:        "user",
				Password:        "pass",
				MaxOpenConns:    10,
				MaxIdleConns:    5,
				ConnMaxLifetime: 300,
			},
			wantDriver: "mysql",
		},
		{
			name: "empty driver defaults to mysql",
			cfg: config.DatabaseConfig{
				Host:     "localhost",
				Port:     3306,
				Database: "spivocab",
				Username: "user",
				TLS:      true,
				Params:   map[string]string{"charset": "utf8mb4"},
			},
			wantDriver: "mysql",
		},
		{
			name: "sqlite",
			cfg: config.DatabaseConfig{
				Driver: "sqlite3",
				Path:   filepath.Join(t.TempDir(), "spivocab.db"),
			},
			wantDriver: "sqlite3",
		},
		{
			name:    "sqlite without path",
			cfg:     config.DatabaseConfig{Driver: "sqlite3"},
			wantErr: true,
		},
		{
			name:    "unsupported driver",
			cfg:     config.DatabaseConfig{Driver: "postgres"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Open(tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			defer func() { _ = got.Close() }()
			assert.Equal(t, tt.wantDriver, got.DriverName())
		})
	}
}

func TestDataSource_MySQLDSN(t *testing.T) {
	_, dsn, err := dataSource(config.DatabaseConfig{
		Driver:   "mysql",
		Host:     "db.local",
		Port:     3307,
		Database: "spivocab",
		Username: "user",
		Password: "pass",
	})
	require.NoError(t, err)
	assert.Contains(t, dsn, "user:pass@tcp(db.local:3307)/spivocab")
	assert.Contains(t, dsn, "parseTime=true")
}

func TestSplitStatements(t *testing.T) {
	tests := []struct {
		name     string
		contents string
		want     []string
	}{
		{
			name:     "single statement",
			contents: "CREATE TABLE a (id INT);\n",
			want:     []string{"CREATE TABLE a (id INT)"},
		},
		{
			name:     "multiple statements with blanks",
			contents: "CREATE TABLE a (id INT);\n\n;CREATE TABLE b (id INT);",
			want:     []string{"CREATE TABLE a (id INT)", "CREATE TABLE b (id INT)"},
		},
		{
			name:     "empty",
			contents: "  \n",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitStatements(tt.contents))
		})
	}
}

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, "mysql"), mock
}

func TestMigrate(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS storage_slots").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, Migrate(context.Background(), db))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrate_ExecError(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec("CREATE TABLE IF NOT EXISTS storage_slots").
		WillReturnError(errors.New("permission denied"))

	err := Migrate(context.Background(), db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "001_create_storage_slots.sql")
}

func TestRunInTx(t *testing.T) {
	errFn := errors.New("fn failed")

	tests := []struct {
		name    string
		setup   func(mock sqlmock.Sqlmock)
		fn      func(ctx context.Context, tx *sqlx.Tx) error
		wantErr error
	}{
		{
			name: "commit on success",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("DELETE FROM storage_slots").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit()
			},
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				_, err := tx.ExecContext(ctx, "DELETE FROM storage_slots")
				return err
			},
		},
		{
			name: "rollback on error",
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectRollback()
			},
			fn: func(ctx context.Context, tx *sqlx.Tx) error {
				return errFn
			},
			wantErr: errFn,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t)
			tt.setup(mock)

			err := RunInTx(context.Background(), db, tt.fn)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
