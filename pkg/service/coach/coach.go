package coach

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gollem"

	"github.com/secmon-lab/mnemosyne/pkg/domain/model"
	"github.com/secmon-lab/mnemosyne/pkg/domain/model/config"
	"github.com/secmon-lab/mnemosyne/pkg/domain/types"
)

//go:embed prompt/system.md
var systemPromptTmpl string

var systemPrompt = template.Must(template.New("coach_system").Parse(systemPromptTmpl))

// ContextWindowSize is how many recent life events are included in the
// coach's prompt context.
const ContextWindowSize = 10

// Service is the LLM collaborator interface used by the use case layer
type Service interface {
	// Reply generates a coaching response to a chat message, with
	// context built from the most recent life events of the document.
	Reply(ctx context.Context, doc *model.MemoryDocument, message string) (string, error)

	// AnalyzeMood extracts a structured mood analysis from free text
	AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysis, error)

	// SuggestActions derives action items from recent life events
	SuggestActions(ctx context.Context, events []model.LifeEvent) ([]model.ActionItem, error)

	// Insights derives pattern insights from a progress report
	Insights(ctx context.Context, report *model.ProgressReport, recentMoods []model.MoodEntry) ([]model.Insight, error)
}

type client struct {
	llmClient gollem.LLMClient
	persona   *config.Persona
	now       func() time.Time
}

var _ Service = &client{}

// Option configures the coach client
type Option func(*client)

// WithClock injects a clock, used by tests
func WithClock(now func() time.Time) Option {
	return func(c *client) {
		c.now = now
	}
}

// New creates a coach service on top of a gollem LLM client
func New(llmClient gollem.LLMClient, persona *config.Persona, opts ...Option) Service {
	if persona == nil {
		persona = config.DefaultPersona()
	}
	c := &client{
		llmClient: llmClient,
		persona:   persona,
		now:       func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *client) buildSystemPrompt(doc *model.MemoryDocument) (string, error) {
	data := struct {
		Name         string
		Role         string
		Tone         string
		Language     string
		Instructions []string
		Today        string
		RecentEvents []model.LifeEvent
	}{
		Name:         c.persona.Name,
		Role:         c.persona.Role,
		Tone:         c.persona.Tone,
		Language:     c.persona.Language,
		Instructions: c.persona.Instructions,
		Today:        c.now().Format("2006-01-02"),
	}
	if doc != nil {
		data.RecentEvents = doc.RecentEvents(ContextWindowSize)
	}

	var buf bytes.Buffer
	if err := systemPrompt.Execute(&buf, data); err != nil {
		return "", goerr.Wrap(err, "failed to execute coach system prompt template")
	}

	return buf.String(), nil
}

func (c *client) Reply(ctx context.Context, doc *model.MemoryDocument, message string) (string, error) {
	prompt, err := c.buildSystemPrompt(doc)
	if err != nil {
		return "", err
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionSystemPrompt(prompt),
	)
	if err != nil {
		return "", goerr.Wrap(err, "failed to create coach session", goerr.T(types.TagUpstream))
	}

	resp, err := session.GenerateContent(ctx, gollem.Text(message))
	if err != nil {
		return "", goerr.Wrap(err, "failed to generate coach reply", goerr.T(types.TagUpstream))
	}
	if len(resp.Texts) == 0 {
		return "", goerr.New("coach reply generation returned empty result", goerr.T(types.TagUpstream))
	}

	return strings.Join(resp.Texts, "\n"), nil
}

func (c *client) AnalyzeMood(ctx context.Context, text string) (*model.MoodAnalysis, error) {
	schema := &gollem.Parameter{
		Title:       "MoodAnalysis",
		Description: "Structured mood analysis of a user message",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"emotion": {
				Type:        gollem.TypeString,
				Description: "Primary emotion (happy, sad, anxious, angry, neutral, excited, frustrated, content, etc.)",
				Required:    true,
			},
			"intensity": {
				Type:        gollem.TypeInteger,
				Description: "Intensity level on a 1-10 scale",
				Required:    true,
			},
			"factors": {
				Type:        gollem.TypeArray,
				Description: "Key factors contributing to this mood",
				Items:       &gollem.Parameter{Type: gollem.TypeString},
				Required:    true,
			},
			"recommendation": {
				Type:        gollem.TypeString,
				Description: "Brief advice for improvement",
				Required:    true,
			},
		},
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(schema),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create mood analysis session", goerr.T(types.TagUpstream))
	}

	prompt := fmt.Sprintf(`You are a mood analysis expert. Analyze the following text and determine the primary emotion, its intensity (1-10), the key contributing factors, and a brief recommendation for improvement.

Text to analyze: %q`, text)

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate mood analysis", goerr.T(types.TagUpstream))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("mood analysis returned empty result", goerr.T(types.TagUpstream))
	}

	var analysis model.MoodAnalysis
	if err := json.Unmarshal([]byte(resp.Texts[0]), &analysis); err != nil {
		return nil, goerr.Wrap(err, "failed to parse mood analysis JSON",
			goerr.V("response", resp.Texts[0]), goerr.T(types.TagUpstream))
	}

	return &analysis, nil
}

func (c *client) SuggestActions(ctx context.Context, events []model.LifeEvent) ([]model.ActionItem, error) {
	if len(events) == 0 {
		return nil, nil
	}

	schema := &gollem.Parameter{
		Title:       "ActionItems",
		Description: "Actionable suggestions derived from recent life updates",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"action_items": {
				Type:     gollem.TypeArray,
				Required: true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"title": {
							Type:        gollem.TypeString,
							Description: "Specific action to take",
							Required:    true,
						},
						"description": {
							Type:        gollem.TypeString,
							Description: "Why this action helps",
							Required:    true,
						},
						"priority": {
							Type:        gollem.TypeString,
							Description: "high, medium, or low",
							Required:    true,
						},
						"category": {
							Type:        gollem.TypeString,
							Description: "health, career, relationships, personal, or financial",
							Required:    true,
						},
					},
				},
			},
		},
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(schema),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create action item session", goerr.T(types.TagUpstream))
	}

	var sb strings.Builder
	for _, e := range events {
		fmt.Fprintf(&sb, "%s: %s\n", e.Timestamp.Format("2006-01-02"), e.Text)
	}

	prompt := fmt.Sprintf(`Based on these recent life updates, generate 3-5 specific, actionable items that would help this person improve their situation:

%s`, sb.String())

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate action items", goerr.T(types.TagUpstream))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("action item generation returned empty result", goerr.T(types.TagUpstream))
	}

	var parsed struct {
		ActionItems []model.ActionItem `json:"action_items"`
	}
	if err := json.Unmarshal([]byte(resp.Texts[0]), &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse action items JSON",
			goerr.V("response", resp.Texts[0]), goerr.T(types.TagUpstream))
	}

	return parsed.ActionItems, nil
}

func (c *client) Insights(ctx context.Context, report *model.ProgressReport, recentMoods []model.MoodEntry) ([]model.Insight, error) {
	schema := &gollem.Parameter{
		Title:       "Insights",
		Description: "Pattern insights over tracked life data",
		Type:        gollem.TypeObject,
		Properties: map[string]*gollem.Parameter{
			"insights": {
				Type:     gollem.TypeArray,
				Required: true,
				Items: &gollem.Parameter{
					Type: gollem.TypeObject,
					Properties: map[string]*gollem.Parameter{
						"title": {
							Type:        gollem.TypeString,
							Description: "Short insight title",
							Required:    true,
						},
						"description": {
							Type:        gollem.TypeString,
							Description: "Detailed insight",
							Required:    true,
						},
						"type": {
							Type:        gollem.TypeString,
							Description: "positive, growth, warning, or opportunity",
							Required:    true,
						},
						"actionable_tip": {
							Type:        gollem.TypeString,
							Description: "Specific tip to act on",
							Required:    true,
						},
					},
				},
			},
		},
	}

	session, err := c.llmClient.NewSession(ctx,
		gollem.WithSessionContentType(gollem.ContentTypeJSON),
		gollem.WithSessionResponseSchema(schema),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create insight session", goerr.T(types.TagUpstream))
	}

	stats := map[string]any{
		"events_last_week":      report.EventsLastWeek,
		"active_goals":          report.ActiveGoals,
		"goals_completed_month": report.GoalsCompletedMonth,
		"habits":                report.Habits,
	}
	moods := make([]string, 0, len(recentMoods))
	for _, m := range recentMoods {
		moods = append(moods, m.Emotion)
	}
	stats["recent_moods"] = moods

	raw, err := json.Marshal(stats)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to encode insight stats")
	}

	prompt := fmt.Sprintf(`Analyze this user's life coaching data and provide 3-4 key insights about their patterns, growth, and areas for improvement:

Data: %s`, string(raw))

	resp, err := session.GenerateContent(ctx, gollem.Text(prompt))
	if err != nil {
		return nil, goerr.Wrap(err, "failed to generate insights", goerr.T(types.TagUpstream))
	}
	if len(resp.Texts) == 0 {
		return nil, goerr.New("insight generation returned empty result", goerr.T(types.TagUpstream))
	}

	var parsed struct {
		Insights []model.Insight `json:"insights"`
	}
	if err := json.Unmarshal([]byte(resp.Texts[0]), &parsed); err != nil {
		return nil, goerr.Wrap(err, "failed to parse insights JSON",
			goerr.V("response", resp.Texts[0]), goerr.T(types.TagUpstream))
	}

	return parsed.Insights, nil
}
