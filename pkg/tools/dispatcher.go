package tools

import (
	"context"
	"log"
)

// JobFunc defines a function executed asynchronously.
type JobFunc func(ctx context.Context) error

// Dispatch runs the job in a separate goroutine, fire-and-forget. The name
// only shows up in the failure log.
func Dispatch(ctx context.Context, name string, fn JobFunc) {
	go func() {
		if err := fn(ctx); err != nil {
			log.Printf("[dispatch] job %s failed: %v", name, err)
		}
	}()
}
