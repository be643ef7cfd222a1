package connection

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	_ "modernc.org/sqlite"

	"github.com/deweydb/dewey/internal/apperr"
)

// ErrUnsupported is wrapped by errors for database types the tester cannot reach
var ErrUnsupported = errors.New("unsupported database type")

// DefaultTimeout bounds a single connection test
const DefaultTimeout = 10 * time.Second

// Tester checks that a database can be reached
type Tester interface {
	Test(ctx context.Context, p Params) error
}

// TesterFunc adapts a function to Tester
type TesterFunc func(ctx context.Context, p Params) error

// Test calls f
func (f TesterFunc) Test(ctx context.Context, p Params) error { return f(ctx, p) }

// DriverTester reaches databases with their Go drivers: database/sql for
// PostgreSQL, MySQL and SQLite, the official driver for MongoDB.
type DriverTester struct {
	Timeout time.Duration
	Logger  *slog.Logger
}

// NewDriverTester creates a tester. A non-positive timeout uses DefaultTimeout.
func NewDriverTester(timeout time.Duration, logger *slog.Logger) *DriverTester {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &DriverTester{Timeout: timeout, Logger: logger}
}

// Test returns nil when the database answered a ping. Other failures are
// *apperr.Error values; a cancelled ctx returns ctx.Err().
func (t *DriverTester) Test(ctx context.Context, p Params) error {
	timeout := t.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	var err error
	if p.DBType == MongoDB {
		err = pingMongo(ctx, p)
	} else {
		err = pingSQL(ctx, p, timeout)
	}

	logger := t.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Debug("connection test finished",
		"db_type", p.DBType,
		"address", p.Address(),
		"elapsed", time.Since(start),
		"error", err)

	if err == nil {
		return nil
	}
	if errors.Is(ctx.Err(), context.Canceled) {
		return context.Canceled
	}
	return classify(err, p)
}

func pingSQL(ctx context.Context, p Params, timeout time.Duration) error {
	driver, dsn, err := p.DSN(timeout)
	if err != nil {
		return err
	}
	if driver == "sqlite" {
		path := strings.TrimPrefix(p.Database, "file:")
		if _, err := os.Stat(path); err != nil {
			return fmt.Errorf("open %s: %w", path, err)
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return fmt.Errorf("open %s connection: %w", driver, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("ping %s: %w", driver, err)
	}
	var one int
	if err := db.QueryRowContext(ctx, "SELECT 1").Scan(&one); err != nil {
		return fmt.Errorf("query %s: %w", driver, err)
	}
	return nil
}

func pingMongo(ctx context.Context, p Params) error {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(p.URI()))
	if err != nil {
		return fmt.Errorf("connect mongodb: %w", err)
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return fmt.Errorf("ping mongodb: %w", err)
	}
	return nil
}

// classify maps a driver failure onto a canonical Connection error
func classify(err error, p Params) *apperr.Error {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		return ae
	}

	ctx := p.Redacted()
	ctx["cause"] = err.Error()

	var netErr net.Error
	switch {
	case errors.Is(err, ErrUnsupported):
		return apperr.New(apperr.CategoryConnection, apperr.SeverityError, err.Error(), apperr.SubProtocolError, ctx)
	case errors.Is(err, fs.ErrNotExist):
		return apperr.New(apperr.CategoryFileNotFound, apperr.SeverityError,
			fmt.Sprintf("Database file not found: %s", p.Database), "", ctx)
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		return apperr.New(apperr.CategoryConnection, apperr.SeverityError,
			fmt.Sprintf("Timed out connecting to %s", target(p)), apperr.SubTimeout, ctx)
	case errors.Is(err, syscall.ECONNREFUSED), strings.Contains(err.Error(), "connection refused"):
		return apperr.New(apperr.CategoryConnection, apperr.SeverityError,
			fmt.Sprintf("Connection refused by %s", target(p)), apperr.SubRefused, ctx)
	}
	return apperr.New(apperr.CategoryConnection, apperr.SeverityError, err.Error(), apperr.SubConnectionFailed, ctx)
}

func target(p Params) string {
	if p.DBType == SQLite {
		return p.Database
	}
	return p.Address()
}
