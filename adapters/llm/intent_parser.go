package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"gosupply/domain/intent"
	apperrors "gosupply/internal/errors"
	"gosupply/ports"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
)

// IntentParser turns a free-text planning request into typed task arguments.
// The model's answer is validated against the task schema before decoding.
type IntentParser struct {
	completer ports.JSONCompleter
	logger    *zap.Logger

	mu      sync.Mutex
	schemas map[intent.TaskKind]taskSchema
}

// taskSchema keeps the schema text for the prompt next to its compiled form
type taskSchema struct {
	raw      string
	compiled *jsonschema.Schema
}

var _ ports.IntentParser = (*IntentParser)(nil)

func NewIntentParser(completer ports.JSONCompleter, logger *zap.Logger) *IntentParser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IntentParser{
		completer: completer,
		logger:    logger.Named("intent"),
		schemas:   make(map[intent.TaskKind]taskSchema),
	}
}

func (p *IntentParser) Parse(ctx context.Context, task intent.TaskKind, query string) (intent.Args, error) {
	schema, err := p.schema(task)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, apperrors.InvalidArgument("query is required")
	}

	answer, err := p.completer.CompleteJSON(ctx, systemPrompt(task, schema.raw), query)
	if err != nil {
		return nil, err
	}
	answer = stripFences(answer)

	var doc any
	if err := json.Unmarshal([]byte(answer), &doc); err != nil {
		p.logger.Warn("model returned invalid JSON",
			zap.String("task", string(task)),
			zap.String("provider", p.completer.Provider()),
			zap.Error(err))
		return nil, apperrors.ExternalServiceError(p.completer.Provider(), fmt.Errorf("answer is not JSON: %w", err))
	}
	if err := schema.compiled.Validate(doc); err != nil {
		p.logger.Warn("model answer failed schema validation",
			zap.String("task", string(task)),
			zap.Error(err))
		return nil, apperrors.Wrapf(apperrors.InvalidArgument(err.Error()), "parse %s request", task)
	}

	args, err := intent.Decode(task, []byte(answer))
	if err != nil {
		return nil, err
	}
	p.logger.Debug("intent parsed",
		zap.String("task", string(task)),
		zap.String("provider", p.completer.Provider()))
	return args, nil
}

func (p *IntentParser) schema(task intent.TaskKind) (taskSchema, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if s, ok := p.schemas[task]; ok {
		return s, nil
	}
	raw, err := intent.Schema(task)
	if err != nil {
		return taskSchema{}, err
	}
	compiled, err := CompileSchema(string(task)+".json", raw)
	if err != nil {
		return taskSchema{}, err
	}
	s := taskSchema{raw: raw, compiled: compiled}
	p.schemas[task] = s
	return s, nil
}

// CompileSchema compiles a JSON schema document held in a string.
func CompileSchema(name, raw string) (*jsonschema.Schema, error) {
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema %s: %w", name, err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource(name, doc); err != nil {
		return nil, fmt.Errorf("failed to add schema resource %s: %w", name, err)
	}
	s, err := compiler.Compile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	return s, nil
}

func systemPrompt(task intent.TaskKind, schema string) string {
	var b strings.Builder
	b.WriteString("You extract structured arguments for a supply-chain planning request.\n")
	fmt.Fprintf(&b, "Task: %s.\n", task.Describe())
	b.WriteString("Answer with one JSON object that satisfies this JSON schema and nothing else:\n")
	b.WriteString(schema)
	b.WriteString("\nUse identifiers exactly as written in the request. Dates are YYYY-MM-DD, months YYYY-MM.")
	return b.String()
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
