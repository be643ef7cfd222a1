package form

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/deweydb/dewey/internal/model"
)

// Database type values offered by the create-project form
const (
	DBTypePostgres = "postgres"
	DBTypeMySQL    = "mysql"
	DBTypeSQLite   = "sqlite"
	DBTypeMongoDB  = "mongodb"
)

// DBTypes lists the selectable database types
var DBTypes = []string{DBTypePostgres, DBTypeMySQL, DBTypeSQLite, DBTypeMongoDB}

// MessageSelectDatabaseType is shown when connection details are entered without a type
const MessageSelectDatabaseType = "Please select a database type"

// ConnectionFields are the optional initial connection inputs.
// SQLite connections only need a database path.
type ConnectionFields struct {
	ConnectionName string `json:"connectionName" validate:"required"`
	DatabaseType   string `json:"databaseType" validate:"required,oneof=postgres mysql sqlite mongodb"`
	Host           string `json:"host" validate:"required_unless=DatabaseType sqlite"`
	Port           string `json:"port" validate:"required_unless=DatabaseType sqlite,omitempty,numeric"`
	Username       string `json:"username" validate:"required_unless=DatabaseType sqlite"`
	Password       string `json:"password" validate:"required_unless=DatabaseType sqlite"`
	Database       string `json:"database" validate:"required"`
}

// Empty reports whether no connection field was filled
func (c ConnectionFields) Empty() bool {
	for _, v := range []string{c.ConnectionName, c.DatabaseType, c.Host, c.Port, c.Username, c.Password, c.Database} {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ProjectForm is the create-project form
type ProjectForm struct {
	Name       string           `json:"name" validate:"required,max=100"`
	Icon       string           `json:"icon"`
	Connection ConnectionFields `json:"connection" validate:"-"`
}

var projectMessages = map[string]string{
	"name":                      "Project name is required",
	"connection.connectionName": "Connection name is required",
	"connection.databaseType":   "Database type is required",
	"connection.host":           "Host is required",
	"connection.port":           "Port is required",
	"connection.username":       "Username is required",
	"connection.password":       "Password is required",
	"connection.database":       "Database name is required",
}

// Validate returns FieldErrors, or nil when the form is valid
func (f ProjectForm) Validate() error {
	var out FieldErrors

	if err := Validator().Struct(f); err != nil {
		var ve validator.ValidationErrors
		if !errors.As(err, &ve) {
			return err
		}
		out = append(out, fromValidation(ve, "", projectMessages)...)
	}

	switch {
	case f.Connection.Empty():
	case strings.TrimSpace(f.Connection.DatabaseType) == "":
		out = append(out, FieldError{Path: "connection.databaseType", Message: MessageSelectDatabaseType})
	default:
		if err := Validator().Struct(f.Connection); err != nil {
			var ve validator.ValidationErrors
			if !errors.As(err, &ve) {
				return err
			}
			out = append(out, fromValidation(ve, "connection.", projectMessages)...)
		}
	}

	if len(out) == 0 {
		return nil
	}
	return out
}

// ToCreateParams builds the create_project payload. The connection is
// omitted when none was entered.
func (f ProjectForm) ToCreateParams(userID string) model.CreateProjectParams {
	p := model.CreateProjectParams{
		Name:           strings.TrimSpace(f.Name),
		UserID:         userID,
		CustomIconData: f.Icon,
	}
	if !f.Connection.Empty() {
		c := f.Connection
		p.InitialConnection = &model.Connection{
			ConnectionName: c.ConnectionName,
			DBType:         c.DatabaseType,
			Host:           c.Host,
			Port:           c.Port,
			Username:       c.Username,
			Password:       c.Password,
			Database:       c.Database,
		}
	}
	return p
}
