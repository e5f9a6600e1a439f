package app

import (
	"bufio"
	"context"
	"io"
	"strings"

	"go.trai.ch/cid/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// Watch reads events from r, one per line ("repository branch" or
// "repository branch depRepository depBranch"), and dispatches them
// concurrently up to the given parallelism. Events for the same key still
// serialize through the exclusivity lock; the extra ones are dropped with a
// warning like any other contending trigger. Malformed lines are skipped.
func (a *App) Watch(ctx context.Context, r io.Reader, parallelism int) error {
	if parallelism < 1 {
		parallelism = 1
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		event, err := domain.ParseEvent(strings.Fields(line))
		if err != nil {
			a.logger.Warn("skipping malformed event line: " + line)
			continue
		}
		g.Go(func() error {
			return a.Dispatch(ctx, event)
		})
	}

	err := g.Wait()
	if scanErr := scanner.Err(); scanErr != nil {
		return zerr.Wrap(scanErr, "failed to read event stream")
	}
	return err
}
