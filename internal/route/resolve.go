package route

import (
	"github.com/deweydb/dewey/internal/model"
)

// Kind is the outcome of a routing decision
type Kind int

const (
	ShowLoading Kind = iota
	Redirect
	RenderPublic
	RenderApp
)

func (k Kind) String() string {
	switch k {
	case ShowLoading:
		return "show_loading"
	case Redirect:
		return "redirect"
	case RenderPublic:
		return "render_public"
	case RenderApp:
		return "render_app"
	}
	return "unknown"
}

// MarshalText renders the kind for JSON output
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Inputs is the snapshot a decision is computed from
type Inputs struct {
	AuthLoaded  bool   `json:"auth_loaded"`
	SignedIn    bool   `json:"signed_in"`
	UserID      string `json:"user_id,omitempty"`
	CurrentPath string `json:"current_path"`
	// OnboardingRequired is nil until the backend answered.
	OnboardingRequired *bool           `json:"onboarding_required,omitempty"`
	ProjectsLoaded     bool            `json:"projects_loaded"`
	Projects           []model.Project `json:"projects,omitempty"`
	// ReturnTo is the private path recorded before sign-in, if any.
	ReturnTo string `json:"return_to,omitempty"`
}

func (in Inputs) signedIn() bool {
	return in.SignedIn && in.UserID != ""
}

func (in Inputs) onboardingRequired() bool {
	return in.OnboardingRequired != nil && *in.OnboardingRequired
}

// Decision is the routing outcome for one snapshot
type Decision struct {
	Kind Kind   `json:"kind"`
	Path string `json:"path,omitempty"`
	// Replace is set on every redirect.
	Replace bool `json:"replace,omitempty"`
	// ReturnTo is recorded by the guard before redirecting to sign-in.
	ReturnTo string `json:"return_to,omitempty"`
	// ConsumeReturnTo clears the recorded return-to path.
	ConsumeReturnTo bool `json:"consume_return_to,omitempty"`
	// Rule names the rule that produced the decision.
	Rule string `json:"rule"`
}

// Rule names
const (
	RuleOnboarding   = "onboarding_required"
	RuleLeavePublic  = "signed_in_on_public"
	RuleFirstProject = "root_to_first_project"
	RuleRequireAuth  = "require_auth"
	RuleLoading      = "loading"
	RulePublic       = "public_layout"
	RuleApp          = "app_layout"
)

type rule struct {
	name  string
	match func(in Inputs, ps Paths, path string) (Decision, bool)
}

// Resolver is a pure function from Inputs to Decision
type Resolver struct {
	paths Paths
	rules []rule
}

// NewResolver creates a resolver for the given routes
func NewResolver(ps Paths) *Resolver {
	return &Resolver{paths: ps, rules: rules}
}

// Paths returns the routes the resolver was built with
func (r *Resolver) Paths() Paths {
	return r.paths
}

// Resolve evaluates the rules top-down; the first match wins
func (r *Resolver) Resolve(in Inputs) Decision {
	p := Clean(in.CurrentPath)
	for _, rl := range r.rules {
		if d, ok := rl.match(in, r.paths, p); ok {
			d.Rule = rl.name
			return d
		}
	}
	return Decision{Kind: RenderApp, Rule: RuleApp}
}

func redirect(to string) Decision {
	return Decision{Kind: Redirect, Path: to, Replace: true}
}

// Redirect rules apply only after auth has loaded.
var rules = []rule{
	{RuleOnboarding, func(in Inputs, ps Paths, p string) (Decision, bool) {
		if in.AuthLoaded && in.signedIn() && in.onboardingRequired() && !ps.IsOnboarding(p) {
			return redirect(Clean(ps.Onboarding)), true
		}
		return Decision{}, false
	}},
	{RuleLeavePublic, func(in Inputs, ps Paths, p string) (Decision, bool) {
		if !in.AuthLoaded || !in.signedIn() || !ps.IsPublic(p) || ps.IsOnboarding(p) {
			return Decision{}, false
		}
		if in.ReturnTo != "" && !ps.UsesPublicLayout(in.ReturnTo) {
			d := redirect(Clean(in.ReturnTo))
			d.ConsumeReturnTo = true
			return d, true
		}
		return redirect(Clean(ps.Root)), true
	}},
	{RuleFirstProject, func(in Inputs, ps Paths, p string) (Decision, bool) {
		if in.AuthLoaded && in.signedIn() && ps.IsRoot(p) && in.ProjectsLoaded && len(in.Projects) > 0 {
			return redirect(ps.Project(in.Projects[0].ID)), true
		}
		return Decision{}, false
	}},
	{RuleRequireAuth, func(in Inputs, ps Paths, p string) (Decision, bool) {
		if in.AuthLoaded && !in.signedIn() && !ps.IsPublic(p) {
			d := redirect(Clean(ps.Auth))
			d.ReturnTo = p
			return d, true
		}
		return Decision{}, false
	}},
	{RuleLoading, func(in Inputs, ps Paths, p string) (Decision, bool) {
		if !in.AuthLoaded || (in.signedIn() && ps.IsRoot(p) && !in.ProjectsLoaded) {
			return Decision{Kind: ShowLoading}, true
		}
		return Decision{}, false
	}},
	{RulePublic, func(in Inputs, ps Paths, p string) (Decision, bool) {
		if ps.UsesPublicLayout(p) {
			return Decision{Kind: RenderPublic}, true
		}
		return Decision{}, false
	}},
	{RuleApp, func(Inputs, Paths, string) (Decision, bool) {
		return Decision{Kind: RenderApp}, true
	}},
}

// State is the coarse classification of a snapshot
type State int

const (
	StateLoading State = iota
	StatePublicUnauthenticated
	StateAuthenticatedNoProject
	StateAuthenticatedWithProject
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StatePublicUnauthenticated:
		return "public_unauthenticated"
	case StateAuthenticatedNoProject:
		return "authenticated_no_project"
	case StateAuthenticatedWithProject:
		return "authenticated_with_project"
	}
	return "unknown"
}

// MarshalText renders the state for JSON output
func (s State) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Classify maps a snapshot onto one of the four states
func Classify(in Inputs) State {
	switch {
	case !in.AuthLoaded:
		return StateLoading
	case !in.signedIn():
		return StatePublicUnauthenticated
	case in.ProjectsLoaded && len(in.Projects) > 0:
		return StateAuthenticatedWithProject
	}
	return StateAuthenticatedNoProject
}
