package broadcast

import (
	"context"
	"errors"

	"github.com/sourcegraph/conc/pool"
)

// Fanout publishes every event to all of its publishers concurrently. A failing
// publisher does not stop the others; their errors are joined.
type Fanout struct {
	publishers []Publisher
}

func NewFanout(publishers ...Publisher) *Fanout {
	out := make([]Publisher, 0, len(publishers))
	for _, p := range publishers {
		if p != nil {
			out = append(out, p)
		}
	}
	return &Fanout{publishers: out}
}

func (f *Fanout) Publish(ctx context.Context, evt Event) error {
	switch len(f.publishers) {
	case 0:
		return nil
	case 1:
		return f.publishers[0].Publish(ctx, evt)
	}

	p := pool.New().WithErrors()
	for _, pub := range f.publishers {
		p.Go(func() error {
			return pub.Publish(ctx, evt)
		})
	}
	if err := p.Wait(); err != nil {
		return errors.Join(errors.New("fanout publish"), err)
	}
	return nil
}
