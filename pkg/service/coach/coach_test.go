package coach_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"
	"github.com/m-mizutani/gt"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model/config"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
	"github.com/secmon-lab/mnemosyne/pkg/service/coach"
)

// mockLLMSession is a mock gollem Session for testing
type mockLLMSession struct {
	generateContentFn func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error)
}

func (s *mockLLMSession) GenerateContent(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
	if s.generateContentFn != nil {
		return s.generateContentFn(ctx, input...)
	}
	return &gollem.Response{
		Texts: []string{"Keep going, you are on a good path."},
	}, nil
}

func (s *mockLLMSession) GenerateStream(ctx context.Context, input ...gollem.Input) (<-chan *gollem.Response, error) {
	return nil, nil
}

func (s *mockLLMSession) Generate(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (*gollem.Response, error) {
	return s.GenerateContent(ctx, input...)
}

func (s *mockLLMSession) Stream(ctx context.Context, input []gollem.Input, opts ...gollem.GenerateOption) (<-chan *gollem.Response, error) {
	return s.GenerateStream(ctx, input...)
}

func (s *mockLLMSession) History() (*gollem.History, error) {
	return nil, nil
}

func (s *mockLLMSession) AppendHistory(*gollem.History) error {
	return nil
}

func (s *mockLLMSession) CountToken(ctx context.Context, input ...gollem.Input) (int, error) {
	return 0, nil
}

// mockLLMClient is a mock gollem LLMClient for testing
type mockLLMClient struct {
	newSessionFn func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error)
}

func (c *mockLLMClient) NewSession(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
	if c.newSessionFn != nil {
		return c.newSessionFn(ctx, options...)
	}
	return &mockLLMSession{}, nil
}

func (c *mockLLMClient) GenerateEmbedding(ctx context.Context, dimension int, input []string) ([][]float64, error) {
	return nil, nil
}

func TestSystemPromptIncludesRecentEvents(t *testing.T) {
	svc := coach.New(&mockLLMClient{}, &config.Persona{
		Name: "Iris",
		Role: "a pragmatic mentor",
		Tone: "brief and warm",
	}, coach.WithClock(func() time.Time {
		return time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	}))

	doc := model.NewMemoryDocument()
	doc.AppendEvent("ancient history note", time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC))
	for i := 0; i < 10; i++ {
		doc.AppendEvent("filler entry", time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))
	}
	doc.AppendEvent("got promoted at work", time.Date(2026, 5, 30, 0, 0, 0, 0, time.UTC))

	prompt, err := coach.BuildSystemPrompt(svc, doc)
	gt.NoError(t, err).Required()

	gt.Bool(t, strings.Contains(prompt, "Iris")).True()
	gt.Bool(t, strings.Contains(prompt, "2026-06-01")).True()
	gt.Bool(t, strings.Contains(prompt, "got promoted at work")).True()
	gt.Bool(t, strings.Contains(prompt, "ancient history note")).False()
}

func TestReplyReturnsText(t *testing.T) {
	svc := coach.New(&mockLLMClient{}, nil)
	doc := model.NewMemoryDocument()
	doc.AppendEvent("started journaling", time.Now().UTC())

	reply, err := svc.Reply(context.Background(), doc, "what should I focus on?")
	gt.NoError(t, err).Required()
	gt.String(t, reply).NotEqual("")
}

func TestReplyUpstreamFailureIsTagged(t *testing.T) {
	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return nil, errors.New("quota exhausted")
				},
			}, nil
		},
	}

	svc := coach.New(llm, nil)
	_, err := svc.Reply(context.Background(), model.NewMemoryDocument(), "hello")
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.TagUpstream)).True()
}

func TestReplyEmptyResultIsError(t *testing.T) {
	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{}, nil
				},
			}, nil
		},
	}

	svc := coach.New(llm, nil)
	_, err := svc.Reply(context.Background(), model.NewMemoryDocument(), "hello")
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.TagUpstream)).True()
}

func TestAnalyzeMoodParsesJSON(t *testing.T) {
	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{
						Texts: []string{`{"emotion":"anxious","intensity":7,"factors":["deadline","sleep"],"recommendation":"take a walk"}`},
					}, nil
				},
			}, nil
		},
	}

	svc := coach.New(llm, nil)
	analysis, err := svc.AnalyzeMood(context.Background(), "I can't stop worrying about the deadline")
	gt.NoError(t, err).Required()

	gt.Value(t, analysis.Emotion).Equal("anxious")
	gt.Value(t, analysis.Intensity).Equal(7)
	gt.Array(t, analysis.Factors).Length(2)
	gt.Value(t, analysis.Recommendation).Equal("take a walk")
}

func TestAnalyzeMoodMalformedJSONIsUpstreamError(t *testing.T) {
	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{Texts: []string{"not json at all"}}, nil
				},
			}, nil
		},
	}

	svc := coach.New(llm, nil)
	_, err := svc.AnalyzeMood(context.Background(), "fine I guess")
	gt.Error(t, err)
	gt.Bool(t, goerr.HasTag(err, types.TagUpstream)).True()
}

func TestSuggestActionsEmptyEventsSkipsLLM(t *testing.T) {
	called := false
	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			called = true
			return &mockLLMSession{}, nil
		},
	}

	svc := coach.New(llm, nil)
	items, err := svc.SuggestActions(context.Background(), nil)
	gt.NoError(t, err).Required()
	gt.Value(t, len(items)).Equal(0)
	gt.Bool(t, called).False()
}

func TestSuggestActionsParsesItems(t *testing.T) {
	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{
						Texts: []string{`{"action_items":[{"title":"Schedule a checkup","description":"health first","priority":"high","category":"health"}]}`},
					}, nil
				},
			}, nil
		},
	}

	svc := coach.New(llm, nil)
	items, err := svc.SuggestActions(context.Background(), []model.LifeEvent{
		{Text: "felt tired all week", Timestamp: time.Now().UTC()},
	})
	gt.NoError(t, err).Required()
	gt.Array(t, items).Length(1)
	gt.Value(t, items[0].Title).Equal("Schedule a checkup")
	gt.Value(t, items[0].Priority).Equal("high")
}

func TestInsightsParsesResult(t *testing.T) {
	llm := &mockLLMClient{
		newSessionFn: func(ctx context.Context, options ...gollem.SessionOption) (gollem.Session, error) {
			return &mockLLMSession{
				generateContentFn: func(ctx context.Context, input ...gollem.Input) (*gollem.Response, error) {
					return &gollem.Response{
						Texts: []string{`{"insights":[{"title":"Consistent habits","description":"streaks are growing","type":"positive","actionable_tip":"keep the morning routine"}]}`},
					}, nil
				},
			}, nil
		},
	}

	svc := coach.New(llm, nil)
	report := model.NewProgressReport(model.NewMemoryDocument(), time.Now().UTC())
	insights, err := svc.Insights(context.Background(), report, nil)
	gt.NoError(t, err).Required()
	gt.Array(t, insights).Length(1)
	gt.Value(t, insights[0].Type).Equal("positive")
}
