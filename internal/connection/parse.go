package connection

import (
	"net/url"
	"strings"

	"github.com/deweydb/dewey/internal/apperr"
)

// ParseFailedTitle is the title of the warning shown when a connection string cannot be parsed
const ParseFailedTitle = "Failed to parse connection string"

var schemeTypes = map[string]string{
	"postgresql":  Postgres,
	"postgres":    Postgres,
	"mysql":       MySQL,
	"mongodb":     MongoDB,
	"mongodb+srv": MongoDB,
	"sqlite":      SQLite,
}

// ParseConnectionString fills Params from a connection URL or a SQLite file
// path. Failures are Warning-level Validation errors.
func ParseConnectionString(s string) (Params, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Params{}, parseError("connection string is empty")
	}

	if strings.HasSuffix(s, ".sqlite") || strings.HasSuffix(s, ".db") || strings.HasPrefix(s, "file:") {
		return Params{
			DBType:     SQLite,
			SQLiteMode: SQLiteFile,
			Database:   strings.TrimPrefix(s, "file:"),
		}, nil
	}

	u, err := url.Parse(s)
	if err != nil {
		return Params{}, parseError(err.Error())
	}
	if u.Scheme == "" || u.Host == "" {
		return Params{}, parseError("Invalid format")
	}

	scheme := strings.ToLower(u.Scheme)
	p := Params{
		DBType:   scheme,
		Host:     u.Hostname(),
		Port:     u.Port(),
		Username: u.User.Username(),
	}
	if t, ok := schemeTypes[scheme]; ok {
		p.DBType = t
	}
	if p.DBType == SQLite {
		p.SQLiteMode = SQLiteHosted
	}
	if pw, ok := u.User.Password(); ok {
		p.Password = pw
	}
	if first, _, _ := strings.Cut(strings.TrimPrefix(u.Path, "/"), "/"); first != "" {
		p.Database = first
	}
	if mode := u.Query().Get("sslmode"); mode != "" {
		p.SSLMode = mode
	}
	return p, nil
}

func parseError(detail string) *apperr.Error {
	return apperr.New(apperr.CategoryValidation, apperr.SeverityWarning, detail, apperr.SubInvalidFormat, nil)
}
