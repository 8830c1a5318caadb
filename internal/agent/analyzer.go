// Package agent implements the analysis loop behind "is this stock a buy?".
// An Analyzer drives a conversation with the model, dispatching the tool
// calls each turn requests and streaming progress events until the model
// delivers its final verdict.
package agent

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/thepill/thepill/internal/agent/prompts"
	"github.com/thepill/thepill/internal/llm"
)

// DefaultMaxTurns caps model round-trips per analysis. A full run takes a
// handful of tool turns; anything near the cap means the model is looping.
const DefaultMaxTurns = 25

// eventBuffer sizes the stream channel so short bursts of status events do
// not block the loop on a slow consumer.
const eventBuffer = 16

// ErrMaxTurns is returned when the model is still requesting tools after
// the configured turn cap.
var ErrMaxTurns = errors.New("analysis exceeded maximum turns")

// Config tunes the analysis loop.
type Config struct {
	Model     string // model identifier passed through to the provider
	MaxTokens int    // per-response token budget
	MaxTurns  int    // cap on model round-trips; 0 means DefaultMaxTurns
}

// Analyzer runs the five-phase fundamental analysis for one ticker at a
// time. It is safe for concurrent use: each call builds its own private
// conversation.
type Analyzer struct {
	provider llm.LLMProvider
	tools    *Toolset
	cfg      Config
	log      *logrus.Logger
}

// New creates an Analyzer. All collaborators are injected; a nil logger
// falls back to the standard logrus logger.
func New(provider llm.LLMProvider, tools *Toolset, cfg Config, log *logrus.Logger) *Analyzer {
	if cfg.MaxTurns <= 0 {
		cfg.MaxTurns = DefaultMaxTurns
	}
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Analyzer{
		provider: provider,
		tools:    tools,
		cfg:      cfg,
		log:      log,
	}
}

// Analyze runs the loop to completion and returns the final analysis text.
func (a *Analyzer) Analyze(ctx context.Context, ticker string) (string, error) {
	return a.run(ctx, ticker, nil)
}

// AnalyzeStream runs the loop in a goroutine and streams progress events.
// The channel is closed when the loop finishes. A done event marks success;
// failures emit an error event instead, and cancellation just stops the
// stream.
func (a *Analyzer) AnalyzeStream(ctx context.Context, ticker string) <-chan Event {
	events := make(chan Event, eventBuffer)
	go func() {
		defer close(events)
		if _, err := a.run(ctx, ticker, events); err != nil {
			if ctx.Err() != nil {
				return
			}
			a.log.WithField("ticker", ticker).WithError(err).Error("analysis failed")
			a.emit(ctx, events, ErrorEvent(err.Error()))
		}
	}()
	return events
}

// run is the loop shared by Analyze and AnalyzeStream. events may be nil
// for the non-streaming path. Each iteration costs one model call; a tool
// turn appends exactly one assistant message and one user message carrying
// every result of that turn.
func (a *Analyzer) run(ctx context.Context, ticker string, events chan<- Event) (string, error) {
	messages := []llm.Message{
		llm.SystemMessage(prompts.SystemPrompt),
		llm.UserMessage(prompts.UserPrompt(ticker)),
	}
	opts := &llm.ChatOptions{
		Model:     a.cfg.Model,
		MaxTokens: a.cfg.MaxTokens,
	}
	catalog := a.tools.Tools()

	for turn := 0; turn < a.cfg.MaxTurns; turn++ {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		resp, err := a.provider.Chat(ctx, messages, catalog, opts)
		if err != nil {
			return "", err
		}

		a.log.WithFields(logrus.Fields{
			"ticker":  ticker,
			"turn":    turn,
			"finish":  resp.FinishReason,
			"tools":   toolNames(resp.ToolCalls),
			"latency": resp.Latency,
		}).Debug("model turn")

		if resp.FinishReason == llm.FinishToolCalls {
			results := make([]llm.ToolResult, 0, len(resp.ToolCalls))
			for _, call := range resp.ToolCalls {
				a.emit(ctx, events, StatusEvent(StatusLabel(call.Name)))
				results = append(results, llm.ToolResult{
					ToolCallID: call.ID,
					Name:       call.Name,
					Content:    a.tools.Dispatch(ctx, call.Name, call.Arguments),
				})
			}
			messages = append(messages,
				llm.AssistantTurnMessage(resp.Content, resp.ToolCalls),
				llm.ToolResultsMessage(results),
			)
			continue
		}

		if resp.Content != "" {
			a.emit(ctx, events, ContentEvent(resp.Content))
		}
		a.emit(ctx, events, DoneEvent())
		return resp.Content, nil
	}

	return "", fmt.Errorf("%w (%d)", ErrMaxTurns, a.cfg.MaxTurns)
}

// emit delivers an event unless the stream is absent or the client has
// gone away.
func (a *Analyzer) emit(ctx context.Context, events chan<- Event, ev Event) {
	if events == nil {
		return
	}
	select {
	case events <- ev:
	case <-ctx.Done():
	}
}

func toolNames(calls []llm.ToolCall) []string {
	names := make([]string, len(calls))
	for i, call := range calls {
		names[i] = call.Name
	}
	return names
}
