package safe

import (
	"context"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/sync/errgroup"
)

// Request is a single search passed to Locator.FindAll. Height and Width are
// used as-is, so a zero Height searches only the Y level of Target.
type Request struct {
	Source        Source
	Target        mgl64.Vec3
	Height, Width int
}

// FindAll runs the searches of reqs concurrently, with at most Config.Workers
// searches at a time, and returns their results in the order of reqs. Every
// search uses its own Cache. The Sources must be safe for concurrent reads.
//
// Searches are not interrupted once started: ctx is only checked before a
// search begins. If ctx is cancelled, the results of searches that did not
// run are left empty and ctx.Err() is returned.
func (l *Locator) FindAll(ctx context.Context, reqs []Request) ([]Result, error) {
	results := make([]Result, len(reqs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.conf.Workers)
	for i, req := range reqs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = l.Search(req.Source, req.Target, req.Height, req.Width)
			return nil
		})
	}
	return results, g.Wait()
}
