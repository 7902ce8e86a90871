package surface

import (
	"context"
	"errors"
	"log"
)

// Follow evaluates the editor's surface once immediately and again after
// every edit, handing each completed field to publish. A pass overtaken by a
// newer edit is cancelled and never published. Follow blocks until ctx is
// done and then returns ctx.Err().
func Follow(ctx context.Context, ed *Editor, w, h, workers int, publish func(*Field)) error {
	edits, stop := ed.Watch()
	defer stop()

	type result struct {
		field *Field
		err   error
	}
	results := make(chan result)

	var (
		cancelPass context.CancelFunc
		current    uint64
	)
	start := func() {
		if cancelPass != nil {
			cancelPass()
		}
		planet, gen := ed.Snapshot()
		current = gen
		var passCtx context.Context
		passCtx, cancelPass = context.WithCancel(ctx)
		go func() {
			f, err := Evaluate(passCtx, planet, w, h, workers)
			if f != nil {
				f.Generation = gen
			}
			select {
			case results <- result{field: f, err: err}:
			case <-ctx.Done():
			}
		}()
	}
	defer func() {
		if cancelPass != nil {
			cancelPass()
		}
	}()

	start()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-edits:
			if !ok {
				return nil
			}
			start()
		case r := <-results:
			switch {
			case r.err == nil && r.field.Generation == current:
				publish(r.field)
			case r.err != nil && !errors.Is(r.err, context.Canceled):
				log.Printf("surface: evaluation failed: %v", r.err)
			}
		}
	}
}
