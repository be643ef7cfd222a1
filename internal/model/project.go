package model

import (
	"fmt"
	"strings"
	"time"
)

// Project is a workspace owned by a user, as returned by get_user_projects
type Project struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	UserID    string  `json:"user_id"`
	CreatedAt int64   `json:"created_at"` // unix seconds
	UpdatedAt int64   `json:"updated_at"` // unix seconds
	IconPath  *string `json:"icon_path"`
}

// Connection is a database connection as the backend stores it
type Connection struct {
	ConnectionName string `json:"connection_name"`
	DBType         string `json:"db_type"`
	Host           string `json:"host"`
	Port           string `json:"port"`
	Username       string `json:"username"`
	Password       string `json:"password"`
	Database       string `json:"database"`
}

// CreateProjectParams is the payload of create_project
type CreateProjectParams struct {
	Name              string      `json:"name"`
	UserID            string      `json:"userId"`
	CustomIconData    string      `json:"customIconData,omitempty"`
	InitialConnection *Connection `json:"initialConnection,omitempty"`
}

// Route returns the app path of the project page
func (p Project) Route() string {
	return fmt.Sprintf("/project/%d", p.ID)
}

// GetDisplayName returns the project name, or a placeholder built from the ID
func (p Project) GetDisplayName() string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	return fmt.Sprintf("Project %d", p.ID)
}

// Initials returns up to two uppercase initials for the sidebar avatar
func (p Project) Initials() string {
	fields := strings.Fields(p.GetDisplayName())
	var b strings.Builder
	for _, f := range fields {
		if b.Len() >= 2 {
			break
		}
		b.WriteString(strings.ToUpper(string([]rune(f)[0])))
	}
	return b.String()
}

// HasIcon reports whether a custom icon was stored for the project
func (p Project) HasIcon() bool {
	return p.IconPath != nil && *p.IconPath != ""
}

// Created returns the creation time
func (p Project) Created() time.Time {
	return time.Unix(p.CreatedAt, 0)
}
