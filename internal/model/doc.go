package model

// Package model defines domain data structures shared across the app: the
// signed-in user, projects and their database connections, and the status
// enum of connection tests. JSON tags follow the backend's wire format.
