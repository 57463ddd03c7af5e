package assistant

// Action is a suggested navigation target attached to a reply.
type Action struct {
	Label string `json:"label"`
	Route string `json:"route"`
}

// Entry is a single help topic the assistant can answer from.
type Entry struct {
	ID       string
	Title    string
	Keywords []string
	Answer   string
	Actions  []Action
}

// Catalog is the fixed list of help topics. Its order is part of the search
// contract: when two entries score equally, the one listed first wins.
var Catalog = []Entry{
	{
		ID:       "dashboard",
		Title:    "Overview / Dashboard",
		Keywords: []string{"overview", "dashboard", "summary", "home", "stats", "analysis"},
		Answer:   "The Dashboard shows totals (income, expenses, balance) and quick insights. Use filters to view weekly/monthly data.",
		Actions:  []Action{{Label: "Open Dashboard", Route: "/dashboard"}},
	},
	{
		ID:       "add",
		Title:    "Add Transaction",
		Keywords: []string{"add", "transaction", "income", "expense", "record", "entry"},
		Answer:   "You can add a transaction using Add Transaction — or type here like: \"spent 45 on food today\".",
		Actions:  []Action{{Label: "Open Add Transaction", Route: "/add-transaction"}},
	},
	{
		ID:       "currency",
		Title:    "Multi-Currency",
		Keywords: []string{"currency", "exchange", "rates", "usd", "nzd", "aud", "convert", "converter"},
		Answer:   "Multi-currency lets you view amounts in different currencies using exchange rates. Cached rates help when offline.",
		Actions:  []Action{{Label: "Open Currency", Route: "/converter"}},
	},
	{
		ID:       "qr",
		Title:    "QR Code",
		Keywords: []string{"qr", "scan", "code", "share", "mobile"},
		Answer:   "QR Code generates a personal link to your summary. Login is required to generate your QR.",
		Actions:  []Action{{Label: "Open QR", Route: "/generate-qr"}},
	},
	{
		ID:       "reports",
		Title:    "Reports / Export",
		Keywords: []string{"report", "export", "pdf", "csv", "download", "print"},
		Answer:   "Reports/Export is planned. For now you can use Transaction PDF and QR summary.",
		Actions:  []Action{{Label: "Reports (Coming Soon)", Route: "/reports"}},
	},
	{
		ID:       "login",
		Title:    "Login",
		Keywords: []string{"login", "log in", "sign in", "signin"},
		Answer:   "Login is required for protected features like Dashboard, QR and saving personalised data.",
		Actions:  []Action{{Label: "Go to Login", Route: "/login"}},
	},
	{
		ID:       "register",
		Title:    "Register",
		Keywords: []string{"register", "sign up", "signup", "create account"},
		Answer:   "Create an account to save your transactions and view your dashboard.",
		Actions:  []Action{{Label: "Go to Register", Route: "/register"}},
	},
	{
		ID:       "forgot",
		Title:    "Forgot Password",
		Keywords: []string{"forgot", "reset", "password", "forgot password"},
		Answer:   "Use Forgot Password to reset your login password via email instructions.",
		Actions:  []Action{{Label: "Reset Password", Route: "/forgot-password"}},
	},
}

// Fallback is the reply used when no command, wizard, parse or catalog entry
// handles the input.
const Fallback = "I can help with: Dashboard, Add Transaction, Multi-currency, QR Code, Login/Register.\nType 'menu' to see buttons."

// searchThreshold is the minimum accumulated score for a catalog hit.
const searchThreshold = 3

// SearchCatalog scores every catalog entry against the user text and returns
// the best one, or nil when no entry reaches the threshold.
// Per entry the score is the sum of TokenScore over its keywords plus half
// the TokenScore of its title. The first entry at the maximum score wins.
func SearchCatalog(userText string) *Entry {
	text := Normalize(userText)

	var best *Entry
	var bestScore float64

	for i := range Catalog {
		entry := &Catalog[i]

		var score float64
		for _, kw := range entry.Keywords {
			score += TokenScore(text, Normalize(kw))
		}
		score += TokenScore(text, Normalize(entry.Title)) * 0.5

		if score > bestScore {
			bestScore = score
			best = entry
		}
	}

	if best != nil && bestScore >= searchThreshold {
		return best
	}
	return nil
}
