// Package tools exposes the planning reads, calculators, solvers and scenario
// pipelines as named tools with JSON arguments validated against a schema.
package tools

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"gosupply/adapters/llm"
	"gosupply/domain/core"
	apperrors "gosupply/internal/errors"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"go.uber.org/zap"
)

// Category groups tools in listings
type Category string

const (
	CategoryData     Category = "data"
	CategoryMetric   Category = "metric"
	CategoryStep     Category = "step"
	CategoryScenario Category = "scenario"
	CategoryIntent   Category = "intent"
)

// ErrToolAlreadyRegistered is returned when a name is registered twice
var ErrToolAlreadyRegistered = stderrors.New("tool already registered")

// Spec documents a tool's contract
type Spec struct {
	Name        string          `json:"name"`
	Category    Category        `json:"category"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"input_schema"`
}

type handler func(ctx context.Context, args json.RawMessage) (any, error)

type tool struct {
	spec   Spec
	schema *jsonschema.Schema
	call   handler
}

// Registry holds the registered tools and dispatches calls
type Registry struct {
	mu     sync.RWMutex
	tools  map[string]*tool
	logger *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{tools: make(map[string]*tool), logger: logger.Named("tools")}
}

// Register adds a typed tool. Arguments are validated against schema, decoded
// into In and, when In has a Validate method, checked by it before fn runs.
func Register[In, Out any](r *Registry, spec Spec, schema string, fn func(context.Context, In) (Out, error)) error {
	if spec.Name == "" {
		return fmt.Errorf("tool name is required")
	}
	compiled, err := llm.CompileSchema(spec.Name+".json", schema)
	if err != nil {
		return err
	}
	spec.InputSchema = json.RawMessage(schema)

	t := &tool{
		spec:   spec,
		schema: compiled,
		call: func(ctx context.Context, raw json.RawMessage) (any, error) {
			var in In
			if err := json.Unmarshal(raw, &in); err != nil {
				return nil, apperrors.Wrapf(apperrors.InvalidArgument(err.Error()), "decode %s arguments", spec.Name)
			}
			if v, ok := any(in).(interface{ Validate() error }); ok {
				if err := v.Validate(); err != nil {
					return nil, err
				}
			}
			return fn(ctx, in)
		},
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tools[spec.Name]; exists {
		return fmt.Errorf("%w: %s", ErrToolAlreadyRegistered, spec.Name)
	}
	r.tools[spec.Name] = t
	return nil
}

// List returns the specs of every tool, sorted by name
func (r *Registry) List() []Spec {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Spec, 0, len(r.tools))
	for _, t := range r.tools {
		out = append(out, t.spec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Lookup returns the spec of one tool
func (r *Registry) Lookup(name string) (Spec, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tools[name]
	if !ok {
		return Spec{}, false
	}
	return t.spec, true
}

// Call validates args and invokes the named tool. Blank args mean {}.
func (r *Registry) Call(ctx context.Context, name string, args json.RawMessage) (any, error) {
	r.mu.RLock()
	t, ok := r.tools[name]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", core.ErrUnknownTool, name)
	}

	if len(strings.TrimSpace(string(args))) == 0 {
		args = json.RawMessage("{}")
	}
	var doc any
	if err := json.Unmarshal(args, &doc); err != nil {
		return nil, apperrors.Wrapf(apperrors.InvalidArgument(err.Error()), "%s arguments are not JSON", name)
	}
	if err := t.schema.Validate(doc); err != nil {
		return nil, apperrors.Wrapf(apperrors.InvalidArgument(err.Error()), "%s arguments", name)
	}

	start := time.Now()
	out, err := t.call(ctx, args)
	if err != nil {
		r.logger.Warn("tool failed",
			zap.String("tool", name),
			zap.String("code", apperrors.GetCode(err)),
			zap.Error(err))
		return nil, err
	}
	r.logger.Debug("tool called",
		zap.String("tool", name),
		zap.Duration("elapsed", time.Since(start)))
	return out, nil
}
