package assistant

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mpereira/moneymap/internal/domain/forecast"
	"github.com/mpereira/moneymap/pkg/kvstore"
)

// Storage keys. stateStorageKey holds the serialized conversation, and
// draftStorageKey caches a completed wizard draft for the add-transaction
// form to prefill.
const (
	stateStorageKey = "moneymap_chat_state_v2"
	draftStorageKey = "moneymap_txn_draft"
)

// pendingText is the placeholder shown while a reply is being produced.
const pendingText = "Typing..."

// minForecastExpenses gates the forecasting engine: with fewer qualifying
// expense records the engine is not run at all.
const minForecastExpenses = 5

const greetingText = "Hi! I'm your MoneyMap Assistant. Type 'menu' to see features, or type: \"spent 45 on food today\"."

// Origin identifies who produced a message.
type Origin string

const (
	OriginUser      Origin = "user"
	OriginAssistant Origin = "assistant"
)

// Message is one conversation turn. The history is append-only; the single
// exception is resolving a pending placeholder in place.
type Message struct {
	ID      uuid.UUID `json:"id"`
	Origin  Origin    `json:"origin"`
	Text    string    `json:"text"`
	Actions []Action  `json:"actions,omitempty"`
	Chips   []string  `json:"chips,omitempty"`
	Pending bool      `json:"pending,omitempty"`
}

// TransactionSource is the external storage collaborator: it yields the
// user's transaction records for forecasting. The core only ever reads.
type TransactionSource interface {
	FetchUserTransactions(ctx context.Context, userID string) ([]forecast.Record, error)
}

// Session holds one conversation: its message history and dialogue state,
// persisted through the kvstore port after every change and restored on
// creation. A session serves a single user interaction at a time; it is not
// safe for concurrent use.
type Session struct {
	router       *Router
	store        kvstore.Store
	source       TransactionSource
	logger       *slog.Logger
	lookbackDays int
	currentRoute string
	now          func() time.Time

	messages []Message
	state    State
}

// NewSession restores any prior conversation from the store, or starts a
// fresh one with the greeting. Malformed stored state is treated as no prior
// session.
func NewSession(router *Router, store kvstore.Store, source TransactionSource, logger *slog.Logger) *Session {
	s := &Session{
		router:       router,
		store:        store,
		source:       source,
		logger:       logger,
		lookbackDays: forecast.DefaultLookbackDays,
		currentRoute: "/",
		now:          time.Now,
	}

	s.restore()
	if len(s.messages) == 0 {
		s.messages = append(s.messages, Message{
			ID:     uuid.New(),
			Origin: OriginAssistant,
			Text:   greetingText,
			Chips:  []string{"menu", "forecast", "qr", "currency", "add transaction"},
		})
	}
	return s
}

// SetLookbackDays overrides the forecast lookback window.
func (s *Session) SetLookbackDays(days int) {
	if days > 0 {
		s.lookbackDays = days
	}
}

// SetRoute records the current route, reported by the /status command.
func (s *Session) SetRoute(route string) { s.currentRoute = route }

// Messages returns a copy of the conversation history.
func (s *Session) Messages() []Message {
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// DialogueState returns the current dialogue state.
func (s *Session) DialogueState() State { return s.state }

// HandleInput processes one user turn and returns the assistant turn it
// produced. Every non-empty input produces exactly one assistant message;
// empty input returns nil.
func (s *Session) HandleInput(ctx context.Context, text string, auth AuthContext) *Message {
	value := strings.TrimSpace(text)
	if value == "" {
		return nil
	}

	s.messages = append(s.messages, Message{ID: uuid.New(), Origin: OriginUser, Text: value})
	s.BeginPendingReply()

	var msg *Message
	reply := s.router.BuildReply(value, &s.state, auth, s.currentRoute)
	if reply.RequestForecast {
		msg = s.runForecast(ctx, auth)
	} else {
		if reply.Draft != nil {
			s.cacheDraft(reply.Draft)
		}
		msg = s.ResolvePendingReply(reply)
	}

	s.persist()
	return msg
}

// HandleAction processes a clicked reply action. It returns the route to
// navigate to, or nil route plus the intercept message the assistant
// answered with instead.
func (s *Session) HandleAction(route string, auth AuthContext) (string, *Message) {
	decision := ResolveAction(route, auth)

	switch {
	case decision.StartWizard:
		reply := StartWizard(&s.state, Draft{})
		msg := s.appendReply(reply)
		s.persist()
		return "", msg
	case decision.Reply != nil:
		msg := s.appendReply(decision.Reply)
		s.persist()
		return "", msg
	default:
		return decision.Navigate, nil
	}
}

// BeginPendingReply appends a pending placeholder turn.
func (s *Session) BeginPendingReply() {
	s.messages = append(s.messages, Message{
		ID:      uuid.New(),
		Origin:  OriginAssistant,
		Text:    pendingText,
		Pending: true,
	})
}

// ResolvePendingReply replaces the most recent pending placeholder with the
// final reply. With no placeholder outstanding the reply is appended as a
// new turn.
func (s *Session) ResolvePendingReply(reply *Reply) *Message {
	for i := len(s.messages) - 1; i >= 0; i-- {
		if s.messages[i].Pending {
			s.messages[i].Text = reply.Text
			s.messages[i].Actions = reply.Actions
			s.messages[i].Chips = reply.Chips
			s.messages[i].Pending = false
			return &s.messages[i]
		}
	}
	return s.appendReply(reply)
}

// FailPendingReply replaces the most recent pending placeholder with a
// human-readable error turn, so no placeholder is ever left hanging.
func (s *Session) FailPendingReply(text string) *Message {
	return s.ResolvePendingReply(&Reply{Text: text, Chips: []string{"menu"}})
}

func (s *Session) appendReply(reply *Reply) *Message {
	s.messages = append(s.messages, Message{
		ID:      uuid.New(),
		Origin:  OriginAssistant,
		Text:    reply.Text,
		Actions: reply.Actions,
		Chips:   reply.Chips,
	})
	return &s.messages[len(s.messages)-1]
}

// runForecast drives the forecasting flow: authentication gate, fetch,
// minimum-data gate, then the pure forecast functions. All gating lives
// here; the forecast package itself has no minimum-input validation.
func (s *Session) runForecast(ctx context.Context, auth AuthContext) *Message {
	if !auth.Authenticated {
		return s.ResolvePendingReply(&Reply{
			Text:    "Please login so I can read your transactions and generate a forecast.",
			Actions: []Action{{Label: "Go to Login", Route: "/login"}},
			Chips:   []string{"login", "menu"},
		})
	}

	records, err := s.source.FetchUserTransactions(ctx, auth.UserID)
	if err != nil {
		s.logger.Warn("failed to fetch transactions for forecast", "userID", auth.UserID, "error", err)
		return s.FailPendingReply("Sorry, I couldn't read your transactions. Please try again.")
	}

	expenses := make([]forecast.Record, 0, len(records))
	for _, r := range records {
		if r.IsExpense() {
			expenses = append(expenses, r)
		}
	}

	if len(expenses) < minForecastExpenses {
		return s.ResolvePendingReply(&Reply{
			Text:  "Please add at least 5 expense transactions for an accurate forecast.",
			Chips: []string{"add transaction", "menu"},
		})
	}

	// The full expense history feeds the projection; lookbackDays is the
	// averaging divisor, not a cutoff.
	result := forecast.PredictNextMonthBudget(expenses, s.lookbackDays, s.now())

	return s.ResolvePendingReply(&Reply{
		Text:  forecast.FormatText(result),
		Chips: []string{"menu", "add transaction", "forecast"},
	})
}

// sessionSnapshot is the persisted shape of a conversation.
type sessionSnapshot struct {
	Messages []Message `json:"messages"`
	State    State     `json:"dialogueState"`
}

func (s *Session) persist() {
	data, err := json.Marshal(sessionSnapshot{Messages: s.messages, State: s.state})
	if err != nil {
		s.logger.Warn("failed to serialize session state", "error", err)
		return
	}
	if err := s.store.Set(stateStorageKey, string(data)); err != nil {
		s.logger.Warn("failed to persist session state", "error", err)
	}
}

func (s *Session) restore() {
	raw, ok, err := s.store.Get(stateStorageKey)
	if err != nil {
		s.logger.Warn("failed to load session state", "error", err)
		return
	}
	if !ok {
		return
	}

	var snap sessionSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.logger.Warn("stored session state is malformed, starting fresh", "error", err)
		return
	}

	// Drop placeholders that were pending when the previous session ended;
	// they would otherwise hang forever.
	messages := make([]Message, 0, len(snap.Messages))
	for _, m := range snap.Messages {
		if !m.Pending {
			messages = append(messages, m)
		}
	}

	s.messages = messages
	s.state = snap.State
}

func (s *Session) cacheDraft(draft *Draft) {
	data, err := json.Marshal(draft)
	if err != nil {
		s.logger.Warn("failed to serialize transaction draft", "error", err)
		return
	}
	if err := s.store.Set(draftStorageKey, string(data)); err != nil {
		s.logger.Warn("failed to cache transaction draft", "error", err)
	}
}
