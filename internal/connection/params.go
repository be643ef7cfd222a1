// Package connection describes database connections and tests whether they
// can be reached.
package connection

import (
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"

	"github.com/deweydb/dewey/internal/form"
	"github.com/deweydb/dewey/internal/model"
)

// SQLiteMode distinguishes local database files from hosted SQLite services
type SQLiteMode string

const (
	SQLiteFile   SQLiteMode = "file"
	SQLiteHosted SQLiteMode = "hosted"
)

// Database types
const (
	Postgres = form.DBTypePostgres
	MySQL    = form.DBTypeMySQL
	SQLite   = form.DBTypeSQLite
	MongoDB  = form.DBTypeMongoDB
)

var defaultPorts = map[string]string{
	Postgres: "5432",
	MySQL:    "3306",
	MongoDB:  "27017",
}

// Params holds everything needed to reach a database
type Params struct {
	Name       string     `json:"connectionName,omitempty"`
	DBType     string     `json:"dbType" validate:"required,oneof=postgres mysql sqlite mongodb"`
	SQLiteMode SQLiteMode `json:"sqliteType,omitempty" validate:"omitempty,oneof=file hosted"`
	Host       string     `json:"host" validate:"required_unless=DBType sqlite"`
	Port       string     `json:"port" validate:"omitempty,numeric"`
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	Database   string     `json:"database" validate:"required_if=DBType sqlite"`
	SSLMode    string     `json:"sslMode,omitempty"`
}

// FromForm converts the form's connection inputs
func FromForm(c form.ConnectionFields) Params {
	p := Params{
		Name:     c.ConnectionName,
		DBType:   c.DatabaseType,
		Host:     c.Host,
		Port:     c.Port,
		Username: c.Username,
		Password: c.Password,
		Database: c.Database,
	}
	if p.DBType == SQLite {
		p.SQLiteMode = SQLiteFile
	}
	return p
}

// FromModel converts a stored connection
func FromModel(c model.Connection) Params {
	return FromForm(form.ConnectionFields{
		ConnectionName: c.ConnectionName,
		DatabaseType:   c.DBType,
		Host:           c.Host,
		Port:           c.Port,
		Username:       c.Username,
		Password:       c.Password,
		Database:       c.Database,
	})
}

// Validate returns validator.ValidationErrors when p is incomplete
func (p Params) Validate() error {
	return form.Validator().Struct(p)
}

// Address returns host:port, using the driver's default port when none is set
func (p Params) Address() string {
	port := p.Port
	if port == "" {
		port = defaultPorts[p.DBType]
	}
	if port == "" {
		return p.Host
	}
	return net.JoinHostPort(p.Host, port)
}

// Redacted describes p without credentials, for logs and error context
func (p Params) Redacted() map[string]any {
	m := map[string]any{"db_type": p.DBType}
	if p.Host != "" {
		m["host"] = p.Address()
	}
	if p.Database != "" {
		m["database"] = p.Database
	}
	return m
}

// DSN returns the database/sql driver name and data source name.
// MongoDB has no database/sql driver; use URI.
func (p Params) DSN(timeout time.Duration) (driver, dsn string, err error) {
	switch p.DBType {
	case Postgres:
		return "postgres", p.postgresDSN(timeout), nil
	case MySQL:
		cfg := mysql.NewConfig()
		cfg.User = p.Username
		cfg.Passwd = p.Password
		cfg.Net = "tcp"
		cfg.Addr = p.Address()
		cfg.DBName = p.Database
		cfg.Timeout = timeout
		return "mysql", cfg.FormatDSN(), nil
	case SQLite:
		if p.SQLiteMode == SQLiteHosted {
			return "", "", fmt.Errorf("hosted SQLite: %w", ErrUnsupported)
		}
		return "sqlite", sqliteDSN(p.Database), nil
	}
	return "", "", fmt.Errorf("%q: %w", p.DBType, ErrUnsupported)
}

func (p Params) postgresDSN(timeout time.Duration) string {
	u := url.URL{
		Scheme: "postgres",
		Host:   p.Address(),
		Path:   "/" + p.Database,
	}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	q := url.Values{}
	sslMode := p.SSLMode
	if sslMode == "" && isLocalHost(p.Host) {
		sslMode = "disable"
	}
	if sslMode != "" {
		q.Set("sslmode", sslMode)
	}
	if secs := int(timeout / time.Second); secs > 0 {
		q.Set("connect_timeout", fmt.Sprint(secs))
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// URI returns the MongoDB connection URI
func (p Params) URI() string {
	u := url.URL{
		Scheme: "mongodb",
		Host:   p.Address(),
		Path:   "/" + p.Database,
	}
	if p.Username != "" {
		u.User = url.UserPassword(p.Username, p.Password)
	}
	return u.String()
}

// sqliteDSN opens the file read-write without creating it.
func sqliteDSN(path string) string {
	path = strings.TrimPrefix(path, "file:")
	return "file:" + path + "?mode=rw"
}

func isLocalHost(host string) bool {
	switch strings.ToLower(host) {
	case "localhost", "127.0.0.1", "::1", "":
		return true
	}
	return false
}
