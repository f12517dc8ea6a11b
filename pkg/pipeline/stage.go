// Package pipeline provides the stage abstraction and the data types shared by the render pipeline.
package pipeline

import (
	"context"
)

// Stage is one step of a render. The orchestrator runs the layout stage
// once and then hands its result to a fresh encode stage.
type Stage[In, Out any] interface {
	Execute(ctx context.Context, input In) (Out, error)
}

// StageFunc adapts a function to the Stage interface.
type StageFunc[In, Out any] func(ctx context.Context, input In) (Out, error)

// Execute implements Stage.
func (f StageFunc[In, Out]) Execute(ctx context.Context, input In) (Out, error) {
	return f(ctx, input)
}
