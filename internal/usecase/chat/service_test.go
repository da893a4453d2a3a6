package chat

import (
	"context"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kailas-cloud/stylebot/internal/domain"
	"github.com/kailas-cloud/stylebot/internal/domain/chat"
	"github.com/kailas-cloud/stylebot/internal/domain/facet"
	"github.com/kailas-cloud/stylebot/internal/usecase/query"
	"github.com/kailas-cloud/stylebot/internal/usecase/search"
)

// --- Mocks ---

type mockSearcher struct {
	outcome search.Outcome
	err     error
	gotMax  int
}

func (m *mockSearcher) Search(_ context.Context, _ string, maxResults int) (search.Outcome, error) {
	m.gotMax = maxResults
	return m.outcome, m.err
}

type mockHistory struct {
	recent    []chat.Message
	recentErr error
	saveErr   error
	saved     []chat.Message
	gotLimit  int
}

func (m *mockHistory) SaveTurn(_ context.Context, msg chat.Message) error {
	m.saved = append(m.saved, msg)
	return m.saveErr
}

func (m *mockHistory) Recent(_ context.Context, _ string, limit int) ([]chat.Message, error) {
	m.gotLimit = limit
	return m.recent, m.recentErr
}

type mockCompleter struct {
	reply    string
	err      error
	messages []domain.PromptMessage
}

func (m *mockCompleter) Complete(_ context.Context, msgs []domain.PromptMessage) (domain.Completion, error) {
	m.messages = msgs
	return domain.Completion{Content: m.reply}, m.err
}

func suitOutcome() search.Outcome {
	return search.Outcome{
		Variants: 4,
		Results: []domain.Candidate{{
			ID:      "suit",
			Content: "Name: Classic Wedding Suit",
			Label:   &facet.ContentLabel{Gender: facet.Male, Category: facet.FormalWear},
		}},
	}
}

func newTestService(s Searcher, h History, c domain.Completer) *Service {
	return New(s, query.NewExtractor(query.NewTranslator()), h, c, Config{}, zap.NewNop())
}

// --- Tests ---

func TestAnswer_HappyPath(t *testing.T) {
	srch := &mockSearcher{outcome: suitOutcome()}
	hist := &mockHistory{recent: []chat.Message{
		{UserID: "u1", Role: chat.User, Content: "hi"},
		{UserID: "u1", Role: chat.Assistant, Content: "hello"},
	}}
	comp := &mockCompleter{reply: "  Try the Classic Wedding Suit.  "}
	svc := newTestService(srch, hist, comp)

	ans, err := svc.Answer(context.Background(), "u1", "wedding suit for men")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ans.Text != "Try the Classic Wedding Suit." {
		t.Errorf("unexpected answer %q", ans.Text)
	}
	if len(ans.Sources) != 1 || ans.Degraded {
		t.Errorf("unexpected sources %+v degraded=%v", ans.Sources, ans.Degraded)
	}
	if srch.gotMax != 5 || hist.gotLimit != 4 {
		t.Errorf("expected 5 results and 4 history turns, got %d and %d", srch.gotMax, hist.gotLimit)
	}

	msgs := comp.messages
	if len(msgs) != 4 {
		t.Fatalf("expected system + 2 history + question, got %d messages", len(msgs))
	}
	if msgs[0].Role != chat.System || !strings.Contains(msgs[0].Content, "MEN'S ITEMS") {
		t.Error("expected male-specific system prompt")
	}
	if msgs[1].Content != "hi" || msgs[2].Role != chat.Assistant {
		t.Error("history must follow the system prompt in order")
	}
	wantLast := "Product Information:\nProduct: Name: Classic Wedding Suit (Gender: male) (Category: formal wear)" +
		"\n\nUser Question: wedding suit for men"
	if msgs[3].Role != chat.User || msgs[3].Content != wantLast {
		t.Errorf("unexpected final turn %q", msgs[3].Content)
	}

	if len(hist.saved) != 2 {
		t.Fatalf("expected user and assistant turns saved, got %d", len(hist.saved))
	}
	if hist.saved[0].Role != chat.User || !strings.HasPrefix(hist.saved[0].Context, "Product: ") {
		t.Errorf("unexpected user turn %+v", hist.saved[0])
	}
	if hist.saved[1].Role != chat.Assistant || hist.saved[1].Content != "Try the Classic Wedding Suit." {
		t.Errorf("unexpected assistant turn %+v", hist.saved[1])
	}
}

func TestAnswer_NoProducts(t *testing.T) {
	comp := &mockCompleter{reply: "Sorry"}
	svc := newTestService(&mockSearcher{}, &mockHistory{}, comp)

	if _, err := svc.Answer(context.Background(), "u1", "flying carpet"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	last := comp.messages[len(comp.messages)-1].Content
	if !strings.Contains(last, NoContext) {
		t.Errorf("expected %q in prompt, got %q", NoContext, last)
	}
}

func TestAnswer_HistoryFailuresAreNotFatal(t *testing.T) {
	hist := &mockHistory{recentErr: errors.New("db down"), saveErr: errors.New("db down")}
	comp := &mockCompleter{reply: "ok"}
	svc := newTestService(&mockSearcher{outcome: suitOutcome()}, hist, comp)

	ans, err := svc.Answer(context.Background(), "u1", "suit")
	if err != nil {
		t.Fatalf("history failure must not fail the answer, got %v", err)
	}
	if ans.Text != "ok" {
		t.Errorf("unexpected answer %q", ans.Text)
	}
	if len(comp.messages) != 2 {
		t.Errorf("expected no history turns in prompt, got %d messages", len(comp.messages))
	}
}

func TestAnswer_CompletionError(t *testing.T) {
	cause := errors.New("503")
	hist := &mockHistory{}
	svc := newTestService(&mockSearcher{}, hist, &mockCompleter{err: cause})

	_, err := svc.Answer(context.Background(), "u1", "shoes")
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped completion error, got %v", err)
	}
	if len(hist.saved) != 1 {
		t.Errorf("only the user turn should be saved, got %d", len(hist.saved))
	}
}

func TestAnswer_EmptyAnswer(t *testing.T) {
	svc := newTestService(&mockSearcher{}, &mockHistory{}, &mockCompleter{reply: "   "})

	_, err := svc.Answer(context.Background(), "u1", "shoes")
	if !errors.Is(err, domain.ErrEmptyAnswer) {
		t.Fatalf("expected ErrEmptyAnswer, got %v", err)
	}
}

func TestAnswer_InvalidQuery(t *testing.T) {
	svc := newTestService(&mockSearcher{}, &mockHistory{}, &mockCompleter{reply: "x"})

	_, err := svc.Answer(context.Background(), "u1", " ")
	if !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected ErrInvalidQuery, got %v", err)
	}
}

func TestAnswer_SearchError(t *testing.T) {
	svc := newTestService(&mockSearcher{err: domain.ErrInvalidQuery}, &mockHistory{}, &mockCompleter{reply: "x"})

	if _, err := svc.Answer(context.Background(), "u1", "shoes"); !errors.Is(err, domain.ErrInvalidQuery) {
		t.Fatalf("expected search error, got %v", err)
	}
}

func TestAnswer_AnonymousSkipsHistory(t *testing.T) {
	hist := &mockHistory{}
	svc := newTestService(&mockSearcher{}, hist, &mockCompleter{reply: "x"})

	if _, err := svc.Answer(context.Background(), "", "shoes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(hist.saved) != 0 || hist.gotLimit != 0 {
		t.Error("anonymous requests must not touch history")
	}
}

func TestAnswer_NilHistory(t *testing.T) {
	svc := New(&mockSearcher{}, query.NewExtractor(query.NewTranslator()), nil,
		&mockCompleter{reply: "x"}, Config{}, zap.NewNop())

	if _, err := svc.Answer(context.Background(), "u1", "shoes"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
