package migrations

import (
	"context"
	"database/sql"
	"errors"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	mu    sync.Mutex
	infos []string
	warns []string
}

func (l *testLogger) Info(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos = append(l.infos, msg)
}

func (l *testLogger) Warn(msg string, _ ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

func (l *testLogger) Error(string, ...any) {}

type fakeMigrator struct {
	upErr      error
	stepsErr   error
	steps      int
	version    uint
	dirty      bool
	versionErr error
}

func (m *fakeMigrator) Up() error { return m.upErr }

func (m *fakeMigrator) Steps(n int) error {
	m.steps = n
	return m.stepsErr
}

func (m *fakeMigrator) Version() (uint, bool, error) {
	return m.version, m.dirty, m.versionErr
}

func (m *fakeMigrator) Close() (error, error) { return nil, nil }

type blockingMigrator struct {
	fakeMigrator
	closeCh   chan struct{}
	closeOnce sync.Once
	closed    atomic.Bool
}

func newBlockingMigrator() *blockingMigrator {
	return &blockingMigrator{closeCh: make(chan struct{})}
}

func (m *blockingMigrator) Up() error {
	<-m.closeCh
	return nil
}

func (m *blockingMigrator) Close() (error, error) {
	m.closeOnce.Do(func() {
		m.closed.Store(true)
		close(m.closeCh)
	})
	return nil, nil
}

// stubFactories swaps the package factories for the duration of the test.
func stubFactories(t *testing.T, m migrator, gotSource *string) {
	t.Helper()
	origDriver, origMigrator := driverFactory, migratorFactory
	t.Cleanup(func() {
		driverFactory = origDriver
		migratorFactory = origMigrator
	})
	driverFactory = func(_ *sql.DB, cfg Config) (database.Driver, error) {
		if cfg.MigrationsTable == "" {
			t.Fatalf("expected migrations table to be defaulted")
		}
		return nil, nil
	}
	migratorFactory = func(sourceURL string, _ database.Driver) (migrator, error) {
		if gotSource != nil {
			*gotSource = sourceURL
		}
		return m, nil
	}
}

func TestUp_NilDB(t *testing.T) {
	assert.Error(t, Up(context.Background(), nil, Config{}))
}

func TestUp_ContextAlreadyCancelled(t *testing.T) {
	called := atomic.Bool{}
	origDriver := driverFactory
	t.Cleanup(func() { driverFactory = origDriver })
	driverFactory = func(_ *sql.DB, _ Config) (database.Driver, error) {
		called.Store(true)
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := Up(ctx, &sql.DB{}, Config{Dir: t.TempDir()})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called.Load(), "driver must not be created for a cancelled context")
}

func TestUp_DeadlineClosesMigrator(t *testing.T) {
	block := newBlockingMigrator()
	stubFactories(t, block, nil)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	err := Up(ctx, &sql.DB{}, Config{Dir: t.TempDir()})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.True(t, block.closed.Load())
}

func TestUp_NoChangeIsNotAnError(t *testing.T) {
	logger := &testLogger{}
	stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, nil)

	require.NoError(t, Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir(), Logger: logger}))
	assert.Contains(t, logger.infos, "No migrations to apply")
}

func TestUp_Success(t *testing.T) {
	logger := &testLogger{}
	stubFactories(t, &fakeMigrator{}, nil)

	require.NoError(t, Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir(), Logger: logger}))
	assert.Contains(t, logger.infos, "Migrations applied successfully")
}

func TestUp_WrapsMigrationError(t *testing.T) {
	stubFactories(t, &fakeMigrator{upErr: errors.New("syntax error")}, nil)

	err := Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migrations: up: syntax error")
}

func TestUp_MigratorInitError(t *testing.T) {
	origDriver, origMigrator := driverFactory, migratorFactory
	t.Cleanup(func() {
		driverFactory = origDriver
		migratorFactory = origMigrator
	})
	driverFactory = func(_ *sql.DB, _ Config) (database.Driver, error) { return nil, nil }
	migratorFactory = func(_ string, _ database.Driver) (migrator, error) {
		return nil, errors.New("boom")
	}

	err := Up(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "migrations: init"))
}

func TestUp_BuildsEscapedFileSourceURL(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "my migrations dir")
	require.NoError(t, os.MkdirAll(dir, 0o755))

	var got string
	stubFactories(t, &fakeMigrator{upErr: migrate.ErrNoChange}, &got)

	require.NoError(t, Up(context.Background(), &sql.DB{}, Config{Dir: dir}))

	parsed, err := url.Parse(got)
	require.NoError(t, err)
	abs, _ := filepath.Abs(dir)
	assert.Equal(t, "file", parsed.Scheme)
	assert.Equal(t, filepath.ToSlash(abs), parsed.Path)
	assert.Contains(t, got, "%20")
}

func TestDown_RollsBackSteps(t *testing.T) {
	m := &fakeMigrator{}
	stubFactories(t, m, nil)

	require.NoError(t, Down(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()}, 1))
	assert.Equal(t, -1, m.steps)
}

func TestDown_RejectsNonPositiveSteps(t *testing.T) {
	err := Down(context.Background(), &sql.DB{}, Config{}, 0)
	assert.Error(t, err)
}

func TestCurrentStatus(t *testing.T) {
	t.Run("applied", func(t *testing.T) {
		stubFactories(t, &fakeMigrator{version: 1}, nil)

		status, err := CurrentStatus(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
		require.NoError(t, err)
		assert.Equal(t, Status{Version: 1, Applied: true}, status)
	})

	t.Run("nothing applied yet", func(t *testing.T) {
		stubFactories(t, &fakeMigrator{versionErr: migrate.ErrNilVersion}, nil)

		status, err := CurrentStatus(context.Background(), &sql.DB{}, Config{Dir: t.TempDir()})
		require.NoError(t, err)
		assert.False(t, status.Applied)
	})
}

func TestRepositoryMigrationsArePaired(t *testing.T) {
	dir := filepath.Join("..", "..", DefaultDir)
	ups, err := filepath.Glob(filepath.Join(dir, "*.up.sql"))
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := os.Stat(down)
		assert.NoError(t, err, "missing down migration for %s", filepath.Base(up))
	}
}
