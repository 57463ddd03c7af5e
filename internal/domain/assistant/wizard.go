package assistant

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Transaction types.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// ModeAddTransaction is the only dialogue mode: the add-transaction wizard.
const ModeAddTransaction = "ADD_TRANSACTION"

// Draft is the in-memory staging object the wizard fills in field by field.
// It is never persisted by this package; a completed draft is handed back on
// the reply for the host to cache or prefill a form with.
type Draft struct {
	Type     string   `json:"type"`
	Amount   *float64 `json:"amount"`
	Category string   `json:"category"`
	Date     string   `json:"date"`
}

// Summary renders the draft for the completion confirmation.
func (d Draft) Summary() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Draft ready: %s $%g", d.Type, amountOrZero(d.Amount))
	if d.Category != "" {
		b.WriteString(", " + d.Category)
	}
	if d.Date != "" {
		b.WriteString(", " + d.Date)
	}
	b.WriteString(".")
	return b.String()
}

// mustParseFloat is only called with strings already matched by
// wizardAmountRe, which parse cleanly.
func mustParseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}

func amountOrZero(a *float64) float64 {
	if a == nil {
		return 0
	}
	return *a
}

// State is the dialogue state. Mode "" means idle, in which case Step is 0
// and the draft is empty.
type State struct {
	Mode  string `json:"mode"`
	Step  int    `json:"step"`
	Draft Draft  `json:"draft"`
}

// Active reports whether a wizard is in progress.
func (s State) Active() bool { return s.Mode == ModeAddTransaction }

func (s *State) reset() { *s = State{} }

// Wizard steps, in order.
const (
	stepType     = 1
	stepAmount   = 2
	stepCategory = 3
	stepDate     = 4
)

var (
	wizardAmountRe = regexp.MustCompile(`(\d+(?:\.\d{1,2})?)`)
	wizardDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// StartWizard begins the add-transaction flow. Prefilled fields (from the
// free-text parser) are threaded through the same step sequence: the wizard
// starts at the first step whose field is still unset, and a fully filled
// prefill goes straight to the completion confirmation.
func StartWizard(state *State, prefill Draft) *Reply {
	state.Mode = ModeAddTransaction
	state.Draft = prefill

	switch {
	case prefill.Type == "":
		state.Step = stepType
		return promptType()
	case prefill.Amount == nil:
		state.Step = stepAmount
		return promptAmount()
	case prefill.Category == "":
		state.Step = stepCategory
		return promptCategory()
	case prefill.Date == "":
		state.Step = stepDate
		return promptDate()
	default:
		return finishWizard(state)
	}
}

// HandleWizardStep consumes one user turn while the wizard is active.
// Returns nil when no wizard is in progress. Cancel, back and "add another"
// are checked before the per-step logic. Invalid input re-prompts and never
// advances the step.
func HandleWizardStep(state *State, text string) *Reply {
	if !state.Active() {
		return nil
	}

	t := Normalize(text)

	switch t {
	case "cancel":
		state.reset()
		return &Reply{Text: "Cancelled. Type 'menu' to continue.", Chips: []string{"menu"}}
	case "back":
		if state.Step > stepType {
			state.Step--
		}
		// The re-prompt does not restate the previous question.
		return &Reply{Text: "Going back. What was your previous answer?", Chips: []string{"cancel"}}
	case "add another":
		return StartWizard(state, Draft{})
	}

	switch state.Step {
	case stepType:
		if t != TypeIncome && t != TypeExpense {
			return &Reply{
				Text:  "Please type: income or expense.",
				Chips: []string{"expense", "income", "cancel"},
			}
		}
		state.Draft.Type = t
		state.Step = stepAmount
		return promptAmount()

	case stepAmount:
		m := wizardAmountRe.FindStringSubmatch(t)
		if m == nil {
			return &Reply{
				Text:  "Please enter a valid number (example: 45).",
				Chips: []string{"cancel", "back"},
			}
		}
		amount := mustParseFloat(m[1])
		state.Draft.Amount = &amount
		state.Step = stepCategory
		return promptCategory()

	case stepCategory:
		// Free text is accepted verbatim here, looser than the parser's
		// fixed category table.
		if t == "skip" {
			state.Draft.Category = ""
		} else {
			state.Draft.Category = t
		}
		state.Step = stepDate
		return promptDate()

	case stepDate:
		switch {
		case t == "skip":
			state.Draft.Date = ""
		case t == "today" || t == "yesterday" || wizardDateRe.MatchString(t):
			state.Draft.Date = t
		default:
			return &Reply{
				Text:  "Please type: today, yesterday, YYYY-MM-DD, or skip.",
				Chips: []string{"today", "yesterday", "skip", "back", "cancel"},
			}
		}
		return finishWizard(state)
	}

	return nil
}

// finishWizard emits the confirmation, hands the completed draft off on the
// reply, and resets the dialogue to idle.
func finishWizard(state *State) *Reply {
	done := state.Draft
	state.reset()

	return &Reply{
		Text:    done.Summary(),
		Actions: []Action{{Label: "Open Add Transaction", Route: "/add-transaction"}},
		Chips:   []string{"add another", "menu", "forecast"},
		Draft:   &done,
	}
}

func promptType() *Reply {
	return &Reply{
		Text:  "Let's add a transaction. What type is it?",
		Chips: []string{"expense", "income", "cancel"},
	}
}

func promptAmount() *Reply {
	return &Reply{
		Text:  "How much? (example: 45)",
		Chips: []string{"cancel", "back"},
	}
}

func promptCategory() *Reply {
	return &Reply{
		Text:  "Category? (food, rent, transport, bills, shopping) or type 'skip'.",
		Chips: []string{"food", "rent", "transport", "bills", "shopping", "skip", "back", "cancel"},
	}
}

func promptDate() *Reply {
	return &Reply{
		Text:  "Date? (today, yesterday, or YYYY-MM-DD) or type 'skip'.",
		Chips: []string{"today", "yesterday", "skip", "back", "cancel"},
	}
}
