package ports

import (
	"context"

	"gosupply/domain/intent"
)

// IntentParser maps a free-text request to the typed arguments of a task
type IntentParser interface {
	Parse(ctx context.Context, task intent.TaskKind, query string) (intent.Args, error)
}

// JSONCompleter is a chat model that answers with a single JSON object
type JSONCompleter interface {
	CompleteJSON(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	Provider() string
}
