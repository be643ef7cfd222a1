// Package route decides, from authentication, onboarding and project state,
// whether the shell redirects, shows a loading placeholder or renders a layout.
package route

import (
	"path"
	"strconv"
	"strings"
)

// Paths names the routes the guard knows about
type Paths struct {
	Root          string
	Auth          string
	AuthCallback  string
	Onboarding    string
	ProjectPrefix string

	// Public lists public-only prefixes. A signed-in user on one of them is sent home.
	Public []string
}

// DefaultPaths returns the application routes
func DefaultPaths() Paths {
	return Paths{
		Root:          "/",
		Auth:          "/auth",
		AuthCallback:  "/auth/callback",
		Onboarding:    "/onboarding",
		ProjectPrefix: "/project/",
		Public:        []string{"/auth"},
	}
}

// Clean strips query and fragment and normalizes slashes
func Clean(p string) string {
	if i := strings.IndexAny(p, "?#"); i >= 0 {
		p = p[:i]
	}
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	return path.Clean(p)
}

// IsPublic reports whether p is a public-only path. Prefixes match whole segments.
func (ps Paths) IsPublic(p string) bool {
	p = Clean(p)
	for _, prefix := range ps.Public {
		prefix = Clean(prefix)
		if p == prefix || strings.HasPrefix(p, strings.TrimSuffix(prefix, "/")+"/") {
			return true
		}
	}
	return false
}

// IsOnboarding reports whether p is the onboarding path
func (ps Paths) IsOnboarding(p string) bool {
	return Clean(p) == Clean(ps.Onboarding)
}

// IsRoot reports whether p is the root path
func (ps Paths) IsRoot(p string) bool {
	return Clean(p) == Clean(ps.Root)
}

// UsesPublicLayout reports whether p renders in the centered, unauthenticated layout
func (ps Paths) UsesPublicLayout(p string) bool {
	return ps.IsPublic(p) || ps.IsOnboarding(p)
}

// Project returns the path of the project page
func (ps Paths) Project(id int64) string {
	return ps.ProjectPrefix + strconv.FormatInt(id, 10)
}

// ProjectID extracts the project id from a project page path
func (ps Paths) ProjectID(p string) (int64, bool) {
	rest, ok := strings.CutPrefix(Clean(p), strings.TrimSuffix(ps.ProjectPrefix, "/")+"/")
	if !ok || rest == "" || strings.Contains(rest, "/") {
		return 0, false
	}
	id, err := strconv.ParseInt(rest, 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
