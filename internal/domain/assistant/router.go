package assistant

import "strings"

// Reply is the structured assistant output for one user turn.
type Reply struct {
	Text    string   `json:"text"`
	Actions []Action `json:"actions,omitempty"`
	Chips   []string `json:"chips,omitempty"`

	// Draft carries a completed wizard draft for the host to hand off.
	Draft *Draft `json:"draft,omitempty"`

	// RequestForecast marks a forecast request; the session runs the
	// forecasting flow and replaces this reply with its result.
	RequestForecast bool `json:"-"`
}

// AuthContext is the authentication signal passed in explicitly instead of
// read from ambient state.
type AuthContext struct {
	Authenticated bool
	UserID        string
	Email         string
}

// Route policy: which routes are stubs, which are the login/register pages,
// and which require an authenticated session.
var (
	comingSoonRoutes = map[string]bool{"/reports": true}

	authPageRoutes = map[string]bool{
		"/login":           true,
		"/register":        true,
		"/forgot-password": true,
	}

	protectedRoutes = map[string]bool{
		"/dashboard":       true,
		"/generate-qr":     true,
		"/transaction-pdf": true,
		"/update-profile":  true,
		"/add-transaction": true,
		"/converter":       true,
		"/reports":         true,
	}
)

// RouteStartAddWizard is the pseudo-route attached to the "start the wizard"
// action. ResolveAction turns it into a StartWizard decision; it is never
// navigated to.
const RouteStartAddWizard = "__START_ADD_WIZARD__"

// Router builds one reply per user turn from the fixed priority order:
// command, active wizard, detected transaction statement, literal
// add/forecast phrases, knowledge-base search, fallback.
type Router struct {
	parser *Parser
}

// NewRouter creates a router with a compiled parser.
func NewRouter() *Router {
	return &Router{parser: NewParser()}
}

// BuildReply evaluates the priority order and returns the first reply that
// applies. Any non-empty input yields a reply. The dialogue state is mutated
// in place by wizard transitions.
func (r *Router) BuildReply(text string, state *State, auth AuthContext, currentRoute string) *Reply {
	switch MatchCommand(text) {
	case CommandStatus:
		return statusReply(auth, currentRoute)
	case CommandKB:
		return topicsReply()
	case CommandMenu:
		return menuReply(auth)
	case CommandClear, CommandReset:
		// Recognized but intentionally not implemented.
		return &Reply{Text: "That command isn't supported yet.", Chips: []string{"menu"}}
	}
	// BACK, CANCEL and MORE have no fixed response of their own; when a
	// wizard is active it consumes back/cancel below, otherwise they fall
	// through to search.

	if reply := HandleWizardStep(state, text); reply != nil {
		return reply
	}

	if parsed := r.parser.Parse(text); parsed.HasAny {
		if parsed.Complete {
			return StartWizard(state, parsed.Data)
		}
		return &Reply{
			Text:    "I detected a transaction, but I need more info. Type 'add transaction' to use the wizard.",
			Actions: []Action{{Label: "Start Add Wizard", Route: RouteStartAddWizard}},
			Chips:   []string{"add transaction", "menu"},
		}
	}

	t := Normalize(text)
	if strings.Contains(t, "add transaction") || t == "add" {
		return StartWizard(state, Draft{})
	}
	if isForecastPhrase(t) {
		return &Reply{RequestForecast: true}
	}

	if entry := SearchCatalog(text); entry != nil {
		return &Reply{
			Text:    entry.Answer,
			Actions: entry.Actions,
			Chips:   []string{"menu", "add transaction", "forecast"},
		}
	}

	return &Reply{Text: Fallback, Chips: []string{"menu", "forecast"}}
}

func isForecastPhrase(normalized string) bool {
	return normalized == "forecast" || normalized == "predict budget" || normalized == "budget suggestion"
}

func statusReply(auth AuthContext, currentRoute string) *Reply {
	logged := "No"
	if auth.Authenticated {
		logged = "Yes"
	}
	return &Reply{
		Text:  "Page: " + currentRoute + "\nLogged in: " + logged,
		Chips: []string{"menu", "/kb"},
	}
}

func topicsReply() *Reply {
	var b strings.Builder
	b.WriteString("Topics:")
	for _, e := range Catalog {
		b.WriteString("\n• " + e.Title)
	}
	return &Reply{Text: b.String(), Chips: []string{"menu"}}
}

func menuReply(auth AuthContext) *Reply {
	actions := make([]Action, 0, len(Catalog))
	for _, e := range Catalog {
		if len(e.Actions) == 0 {
			continue
		}
		route := e.Actions[0].Route
		if auth.Authenticated && authPageRoutes[route] {
			continue
		}
		actions = append(actions, Action{Label: e.Title, Route: route})
	}

	chips := []string{"login", "register", "forgot password"}
	if auth.Authenticated {
		chips = []string{"dashboard", "qr", "currency", "forecast"}
	}

	return &Reply{Text: "Choose a feature:", Actions: actions, Chips: chips}
}

// ActionDecision is the outcome of a clicked reply action: navigate to a
// route, show an intercept reply instead, or start the wizard.
type ActionDecision struct {
	Navigate    string
	Reply       *Reply
	StartWizard bool
}

// ResolveAction applies the navigation policy to a clicked action route.
// Stub routes answer with a coming-soon note, auth pages are intercepted for
// logged-in users, and protected routes prompt login for anonymous ones.
func ResolveAction(route string, auth AuthContext) ActionDecision {
	if route == "" {
		return ActionDecision{}
	}

	if route == RouteStartAddWizard {
		return ActionDecision{StartWizard: true}
	}

	if comingSoonRoutes[route] {
		return ActionDecision{Reply: &Reply{Text: "Reports/Export is coming soon. (Not implemented yet)"}}
	}

	if auth.Authenticated && authPageRoutes[route] {
		return ActionDecision{Reply: &Reply{
			Text:    "You are already logged in.",
			Actions: []Action{{Label: "Go to Dashboard", Route: "/dashboard"}},
			Chips:   []string{"dashboard", "qr", "currency", "forecast"},
		}}
	}

	if !auth.Authenticated && protectedRoutes[route] {
		return ActionDecision{Reply: &Reply{
			Text:    "Please login to access this feature.",
			Actions: []Action{{Label: "Go to Login", Route: "/login"}},
			Chips:   []string{"login", "register", "forgot password"},
		}}
	}

	return ActionDecision{Navigate: route}
}
