// Package llm wraps the OpenAI chat API behind the small surface the game
// needs: plain text, JSON and streaming completions, each traced as a GenAI
// generation.
package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/openai/openai-go/packages/ssestream"
	"github.com/openai/openai-go/shared"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ascension/internal/debug"
	"ascension/internal/observability"
)

type contextKey string

const (
	operationTypeKey contextKey = "operation_type"
	gameContextKey   contextKey = "game_context"
)

type Service struct {
	client *openai.Client
	model  string
	debug  *debug.Logger
	tracer trace.Tracer
}

func NewService(apiKey, model string, debug *debug.Logger) *Service {
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &Service{
		client: &client,
		model:  model,
		debug:  debug,
		tracer: otel.Tracer("llm-service"),
	}
}

// CompletionRequest describes one chat call. ResponseJSON asks the API for a
// JSON object response; ReasoningEffort is optional (minimal, low, medium,
// high).
type CompletionRequest struct {
	SystemPrompt    string
	UserPrompt      string
	MaxTokens       int
	Model           string
	ReasoningEffort string
	ResponseJSON    bool
}

func (s *Service) resolveModel(override string) string {
	if strings.TrimSpace(override) != "" {
		return override
	}
	return s.model
}

func (s *Service) buildParams(req CompletionRequest, model string) openai.ChatCompletionNewParams {
	params := openai.ChatCompletionNewParams{
		Model: shared.ChatModel(model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(req.SystemPrompt),
			openai.UserMessage(req.UserPrompt),
		},
		MaxCompletionTokens: openai.Int(int64(req.MaxTokens)),
	}
	if req.ReasoningEffort != "" {
		params.ReasoningEffort = shared.ReasoningEffort(req.ReasoningEffort)
	}
	if req.ResponseJSON {
		p := shared.NewResponseFormatJSONObjectParam()
		params.ResponseFormat = openai.ChatCompletionNewParamsResponseFormatUnion{
			OfJSONObject: &p,
		}
	}
	return params
}

// startSpan opens a generation span named after the context's operation type
// and stamps request and game attributes onto it.
func (s *Service) startSpan(ctx context.Context, fallback, model string, req CompletionRequest) (context.Context, trace.Span) {
	spanName := fallback
	if opType := getOperationType(ctx); opType != "" {
		spanName = opType
	}

	ctx, span := s.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			observability.CreateGenAIAttributes("openai", model, 0, 0)...,
		),
	)

	attrs := []attribute.KeyValue{
		attribute.Int("gen_ai.request.max_tokens", req.MaxTokens),
		attribute.String("langfuse.observation.type", "generation"),
		attribute.String("game.operation_type", spanName),
	}
	for k, v := range getGameContext(ctx) {
		switch val := v.(type) {
		case string:
			attrs = append(attrs, attribute.String("game."+k, val))
		case int:
			attrs = append(attrs, attribute.Int("game."+k, val))
		case []string:
			attrs = append(attrs, attribute.StringSlice("game."+k, val))
		}
	}
	span.SetAttributes(attrs...)

	span.AddEvent("gen_ai.user.message", trace.WithAttributes(
		attribute.String("gen_ai.system", "openai"),
		attribute.String("content", req.UserPrompt),
	))
	return ctx, span
}

func (s *Service) finishSpan(span trace.Span, req CompletionRequest, resp *openai.ChatCompletion, content, model string, duration time.Duration) {
	format := "text"
	if req.ResponseJSON {
		format = "json"
	}
	span.SetAttributes(
		attribute.Int64("gen_ai.usage.input_tokens", resp.Usage.PromptTokens),
		attribute.Int64("gen_ai.usage.output_tokens", resp.Usage.CompletionTokens),
		attribute.Int64("response_time_ms", duration.Milliseconds()),
		attribute.String("langfuse.observation.input", req.SystemPrompt+"\n\n"+req.UserPrompt),
		attribute.String("langfuse.observation.output", content),
		attribute.String("langfuse.observation.output_format", format),
		attribute.String("langfuse.observation.model.name", model),
	)
	span.AddEvent("gen_ai.choice", trace.WithAttributes(
		attribute.String("gen_ai.system", "openai"),
		attribute.String("content", content),
	))
}

// Complete performs a blocking chat completion and returns the message
// content.
func (s *Service) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	model := s.resolveModel(req.Model)
	ctx, span := s.startSpan(ctx, "llm.complete", model, req)
	defer span.End()

	s.debug.Printf("LLM completion: model=%s max_tokens=%d json=%v", model, req.MaxTokens, req.ResponseJSON)

	startTime := time.Now()
	resp, err := s.client.Chat.Completions.New(ctx, s.buildParams(req, model))
	if err != nil {
		span.SetAttributes(attribute.String("error.type", "llm_completion_error"))
		span.RecordError(err)
		s.debug.Printf("LLM completion error: %v", err)
		return "", fmt.Errorf("completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		err := fmt.Errorf("no completion choices returned")
		span.RecordError(err)
		return "", err
	}

	content := resp.Choices[0].Message.Content
	duration := time.Since(startTime)
	s.finishSpan(span, req, resp, content, model, duration)

	s.debug.Printf("LLM completion: %d chars, tokens %d/%d, %v",
		len(content), resp.Usage.PromptTokens, resp.Usage.CompletionTokens, duration)

	return content, nil
}

// CompleteStream opens a streaming chat completion. The caller drains the
// returned stream; ReadStreamChunks adapts it to a channel.
func (s *Service) CompleteStream(ctx context.Context, req CompletionRequest) *ssestream.Stream[openai.ChatCompletionChunk] {
	model := s.resolveModel(req.Model)
	s.debug.Printf("LLM stream: model=%s max_tokens=%d", model, req.MaxTokens)
	return s.client.Chat.Completions.NewStreaming(ctx, s.buildParams(req, model))
}

// WithOperationType names the span for the next completion on this context.
func WithOperationType(ctx context.Context, opType string) context.Context {
	return context.WithValue(ctx, operationTypeKey, opType)
}

// WithGameContext attaches game attributes (realm, turn, location) that end
// up on completion spans. Merges with any context already attached.
func WithGameContext(ctx context.Context, gameCtx map[string]interface{}) context.Context {
	if existing := getGameContext(ctx); existing != nil {
		merged := make(map[string]interface{}, len(existing)+len(gameCtx))
		for k, v := range existing {
			merged[k] = v
		}
		for k, v := range gameCtx {
			merged[k] = v
		}
		return context.WithValue(ctx, gameContextKey, merged)
	}
	return context.WithValue(ctx, gameContextKey, gameCtx)
}

func getOperationType(ctx context.Context) string {
	if opType, ok := ctx.Value(operationTypeKey).(string); ok {
		return opType
	}
	return ""
}

func getGameContext(ctx context.Context) map[string]interface{} {
	if gameCtx, ok := ctx.Value(gameContextKey).(map[string]interface{}); ok {
		return gameCtx
	}
	return nil
}
