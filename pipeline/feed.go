package pipeline

import (
	"context"

	"github.com/osokin/leadscout"
	"golang.org/x/sync/errgroup"
)

// EventKind discriminates feed event payloads.
type EventKind string

const (
	// KindLink carries the download handle. Always the first event.
	KindLink EventKind = "download_link"

	// KindRow carries one output row.
	KindRow EventKind = "csv_row"
)

// Event is one item of a live progress feed.
type Event struct {
	Kind EventKind
	Link string
	Row  leadscout.Row
}

// Feed delivers a run's progress to an event-driven caller: the download
// handle first, then one event per row in emission order, at most once per
// item. Events closes when the run reaches a terminal state.
type Feed struct {
	Events <-chan Event

	g   *errgroup.Group
	res *Result
}

// Wait blocks until the run finishes and returns its fatal error, if any.
func (f *Feed) Wait() error {
	if err := f.g.Wait(); err != nil {
		return err
	}
	return f.res.Err()
}

// Status reports the run's terminal state. Valid after Events is closed.
func (f *Feed) Status() Status { return f.res.Status() }

// DownloadURL returns the run's stable download handle.
func (f *Feed) DownloadURL() string { return f.res.DownloadURL }

// Stream starts a run and pumps its rows on a separate goroutine, so the
// pipeline's blocking capability calls cannot stall the caller. An
// authorization or validation failure is returned immediately, before any
// event is produced or any file created. Canceling the context stops the
// pump; the sink's release path still runs.
func (d *Driver) Stream(ctx context.Context, req leadscout.RunRequest) (*Feed, error) {
	res, err := d.Run(ctx, req)
	if err != nil {
		return nil, err
	}

	events := make(chan Event)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer close(events)

		select {
		case events <- Event{Kind: KindLink, Link: res.DownloadURL}:
		case <-ctx.Done():
			_ = res.Close()
			return ctx.Err()
		}

		for row := range res.Rows {
			select {
			case events <- Event{Kind: KindRow, Row: row}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	return &Feed{Events: events, g: g, res: res}, nil
}
