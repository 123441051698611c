package director

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"ascension/internal/game"
	"ascension/internal/game/director/processors"
	"ascension/internal/game/tags"
)

// Dispatch applies a parsed command batch to the state, strictly in the
// order the narrator emitted it, and returns the final state plus the
// concatenated index-update requests. Later commands observe the effects of
// earlier ones. Unknown commands and commands missing a required argument
// are skipped whole and logged; nothing here ever fails the turn.
func Dispatch(ctx context.Context, env *processors.Env, st game.State, commands []tags.Command) (game.State, []game.IndexUpdate) {
	tracer := otel.Tracer("director")
	ctx, span := tracer.Start(ctx, "director.dispatch",
		trace.WithAttributes(attribute.Int("command_count", len(commands))),
	)
	defer span.End()

	var updates []game.IndexUpdate
	applied := 0
	skipped := 0

	for i, command := range commands {
		_, cmdSpan := tracer.Start(ctx, "director.apply_command",
			trace.WithAttributes(
				attribute.String("command_name", command.Name),
				attribute.Int("command_index", i),
			),
		)

		processor, exists := GetProcessor(command.Name)
		if !exists {
			env.Logf("unknown command %q, ignored", command.Name)
			cmdSpan.SetAttributes(attribute.String("result", "unknown_command"))
			cmdSpan.End()
			skipped++
			continue
		}

		if err := processor.Validate(command.Params); err != nil {
			env.Logf("command %q skipped: %v", command.Name, err)
			cmdSpan.SetAttributes(attribute.String("result", "validation_failed"))
			cmdSpan.RecordError(err)
			cmdSpan.End()
			skipped++
			continue
		}

		var cmdUpdates []game.IndexUpdate
		st, cmdUpdates = processor.Apply(env, st, command.Params)
		updates = append(updates, cmdUpdates...)
		applied++

		cmdSpan.SetAttributes(attribute.String("result", "applied"))
		cmdSpan.End()
	}

	span.SetAttributes(
		attribute.Int("applied_count", applied),
		attribute.Int("skipped_count", skipped),
		attribute.Int("index_update_count", len(updates)),
	)

	return st, updates
}
