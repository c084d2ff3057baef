package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/kcmvp/urlq/app"
	"github.com/spf13/viper"
)

// DB is the minimal database contract used by this package. It is backed by *sql.DB
// and can be wrapped for cross-cutting concerns such as SQL logging.
type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PingContext(ctx context.Context) error
	Close() error
}

// Wrap adapts *sql.DB to the DB interface.
func Wrap(db *sql.DB) DB {
	return stdDB{DB: db}
}

type stdDB struct{ *sql.DB }

func (d stdDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.DB.ExecContext(ctx, query, args...)
}

func (d stdDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.DB.QueryContext(ctx, query, args...)
}

func (d stdDB) PingContext(ctx context.Context) error { return d.DB.PingContext(ctx) }

// loggingDB logs every statement at debug level to the logger returned by
// logger. Nothing is logged while it returns nil.
type loggingDB struct {
	inner  DB
	logger func() *slog.Logger
}

func (d loggingDB) debug(ctx context.Context, msg string, attrs ...any) {
	if l := d.logger(); l != nil {
		l.DebugContext(ctx, msg, attrs...)
	}
}

func (d loggingDB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	start := time.Now()
	res, err := d.inner.ExecContext(ctx, query, args...)
	d.debug(ctx, "store exec", slog.Duration("dur", time.Since(start)), slog.Any("err", err),
		slog.String("sql", query), slog.Any("args", args))
	return res, err
}

func (d loggingDB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	start := time.Now()
	rows, err := d.inner.QueryContext(ctx, query, args...)
	d.debug(ctx, "store query", slog.Duration("dur", time.Since(start)), slog.Any("err", err),
		slog.String("sql", query), slog.Any("args", args))
	return rows, err
}

func (d loggingDB) PingContext(ctx context.Context) error {
	start := time.Now()
	err := d.inner.PingContext(ctx)
	d.debug(ctx, "store ping", slog.Duration("dur", time.Since(start)), slog.Any("err", err))
	return err
}

func (d loggingDB) Close() error {
	err := d.inner.Close()
	d.debug(context.Background(), "store close", slog.Any("err", err))
	return err
}

// WithSQLLogger wraps db with a SQL logger if logger is not nil.
func WithSQLLogger(db DB, logger *slog.Logger) DB {
	if logger == nil {
		return db
	}
	return loggingDB{inner: db, logger: func() *slog.Logger { return logger }}
}

var (
	// dsRegistry holds the named datasources.
	dsRegistry = map[string]registered{}
	dsMu       sync.RWMutex

	initOnce sync.Once
	initErr  error

	sqlLogger atomic.Pointer[slog.Logger]
)

type registered struct {
	db     DB
	driver string
}

// SetSQLLogger sets the logger of the configured datasources, including those
// already registered. A nil logger turns SQL logging off.
func SetSQLLogger(l *slog.Logger) {
	sqlLogger.Store(l)
}

const (
	UserKey     = "${user}"
	PasswordKey = "${password}"
	HostKey     = "${host}"
	defaultDs   = "default"
)

type dataSource struct {
	Driver   string `mapstructure:"driver" yaml:"driver"`
	User     string `mapstructure:"user" yaml:"user"`
	Password string `mapstructure:"password" yaml:"password"`
	Host     string `mapstructure:"host" yaml:"host"`
	URL      string `mapstructure:"url" yaml:"url"`
}

// DSNChecked returns the final connection string for sql.Open. Go drivers share no DSN
// format, so url is required and is driver specific. A placeholder (${user}, ${password},
// ${host}) in url requires the matching field.
func (ds dataSource) DSNChecked() (string, error) {
	if strings.TrimSpace(ds.URL) == "" {
		return "", fmt.Errorf("dsn requires url")
	}
	if strings.Contains(ds.URL, UserKey) && ds.User == "" {
		return "", fmt.Errorf("dsn requires user")
	}
	if strings.Contains(ds.URL, PasswordKey) && ds.Password == "" {
		return "", fmt.Errorf("dsn requires password")
	}
	if strings.Contains(ds.URL, HostKey) && ds.Host == "" {
		return "", fmt.Errorf("dsn requires host")
	}
	return ds.DSN(), nil
}

// DSN substitutes the placeholders of url.
func (ds dataSource) DSN() string {
	dsn := strings.ReplaceAll(ds.URL, UserKey, ds.User)
	dsn = strings.ReplaceAll(dsn, PasswordKey, ds.Password)
	return strings.ReplaceAll(dsn, HostKey, ds.Host)
}

// Register adds db under name. An empty name registers the default datasource.
func Register(name, driver string, db DB) {
	if name == "" {
		name = defaultDs
	}
	dsMu.Lock()
	defer dsMu.Unlock()
	dsRegistry[name] = registered{db: db, driver: driver}
}

// registerDataSource opens and pings the datasource described by cfg and registers it.
func registerDataSource(name string, cfg dataSource) error {
	if cfg.Driver == "" {
		return fmt.Errorf("driver is required to register datasource %q", name)
	}
	if _, err := dialectOf(cfg.Driver); err != nil {
		return fmt.Errorf("datasource %q: %w", name, err)
	}
	dsn, err := cfg.DSNChecked()
	if err != nil {
		return fmt.Errorf("invalid dsn for datasource %q: %w", name, err)
	}
	raw, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return fmt.Errorf("open datasource %q: %w", name, err)
	}
	if err := raw.PingContext(context.Background()); err != nil {
		_ = raw.Close()
		return fmt.Errorf("ping datasource %q: %w", name, err)
	}
	Register(name, cfg.Driver, loggingDB{inner: Wrap(raw), logger: sqlLogger.Load})
	return nil
}

func initDataSources() error {
	initOnce.Do(func() {
		res := app.Config()
		if res.IsError() {
			initErr = res.Error()
			return
		}
		raw := res.MustGet().GetStringMap("datasource")
		for name, val := range raw {
			child := viper.New()
			m, ok := val.(map[string]any)
			if !ok {
				initErr = fmt.Errorf("datasource %s: expected a mapping", name)
				return
			}
			if err := child.MergeConfigMap(m); err != nil {
				initErr = fmt.Errorf("merge datasource %s: %w", name, err)
				return
			}
			var ds dataSource
			if err := child.Unmarshal(&ds); err != nil {
				initErr = fmt.Errorf("unmarshal datasource %s: %w", name, err)
				return
			}
			if err := registerDataSource(name, ds); err != nil {
				initErr = fmt.Errorf("register datasource %s: %w", name, err)
				return
			}
		}
	})
	return initErr
}

// GetDS returns the named datasource and its driver name, loading the configured
// datasources on first use.
func GetDS(name string) (DB, string, error) {
	if err := initDataSources(); err != nil {
		return nil, "", err
	}
	if name == "" {
		name = defaultDs
	}
	dsMu.RLock()
	defer dsMu.RUnlock()
	r, ok := dsRegistry[name]
	if !ok {
		return nil, "", fmt.Errorf("datasource %q is not configured", name)
	}
	return r.db, r.driver, nil
}

// DefaultDS returns the default datasource.
func DefaultDS() (DB, string, error) {
	return GetDS(defaultDs)
}

// CloseDataSource closes and removes the named datasource from the registry.
func CloseDataSource(name string) error {
	if name == "" {
		name = defaultDs
	}
	dsMu.Lock()
	defer dsMu.Unlock()
	if r, ok := dsRegistry[name]; ok {
		delete(dsRegistry, name)
		return r.db.Close()
	}
	return nil
}

// CloseAllDataSources closes and removes all registered datasources and returns the first
// error encountered.
func CloseAllDataSources() error {
	dsMu.Lock()
	defer dsMu.Unlock()
	var firstErr error
	for name, r := range dsRegistry {
		if err := r.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(dsRegistry, name)
	}
	return firstErr
}
