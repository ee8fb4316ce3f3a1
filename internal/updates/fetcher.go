// Package updates implements update fetching and backlog filtering.
//
// A Fetcher polls the remote update stream with an advancing offset and
// splits every batch into live updates (sent after the bot session started)
// and backlog updates (accumulated while the bot was offline). The remote
// API does not carry this distinction, so the split is derived from message
// dates, which are assumed to be non-decreasing within a batch.
package updates

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/MatyiFKBT/botogram/internal/api"
	"github.com/MatyiFKBT/botogram/internal/logger"
)

// ErrFetch wraps any failure to obtain a usable update list from the remote
// source. The condition is recoverable: the caller should retry on the next
// poll cycle.
var ErrFetch = errors.New("invalid response from update source")

// Cursor is the persistent fetch state of one bot session. LastID only ever
// increases; the next poll requests offset LastID+1, which acknowledges
// everything seen so far. BacklogDone is sticky once true.
//
// The zero value is not a valid cursor; use NewFetcher, or Resume with a
// cursor previously obtained from Fetcher.Cursor.
type Cursor struct {
	LastID      int64     `json:"last_id"`
	StartedAt   time.Time `json:"started_at"`
	BacklogDone bool      `json:"backlog_done"`
}

// Fetcher owns the fetch cursor for a single bot session. It is not safe for
// concurrent use: one fetcher per polling loop, never shared across fetchers
// polling the same account.
type Fetcher struct {
	source api.UpdateSource
	cursor Cursor
}

// NewFetcher creates a fetcher for a session starting now. With
// processBacklog true no backlog filtering is performed and every fetched
// update is returned as live.
func NewFetcher(source api.UpdateSource, processBacklog bool) *Fetcher {
	return &Fetcher{
		source: source,
		cursor: Cursor{
			LastID:      -1,
			StartedAt:   time.Now(),
			BacklogDone: processBacklog,
		},
	}
}

// Resume reconstructs a fetcher from a previously saved cursor.
func Resume(source api.UpdateSource, cursor Cursor) *Fetcher {
	return &Fetcher{source: source, cursor: cursor}
}

// Cursor returns a copy of the current fetch state.
func (f *Fetcher) Cursor() Cursor {
	return f.cursor
}

// BacklogResolved reports whether the backlog/live boundary has been found.
func (f *Fetcher) BacklogResolved() bool {
	return f.cursor.BacklogDone
}

// Fetch performs one poll cycle and partitions the result into live and
// backlog updates. Backlog updates have already been acknowledged through
// the cursor and should be logged at most, never dispatched to hooks.
func (f *Fetcher) Fetch(ctx context.Context, timeout time.Duration) (live, backlog []api.Update, err error) {
	batch, err := f.source.GetUpdates(ctx, f.cursor.LastID+1, timeout)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, fmt.Errorf("%w: %w", ErrFetch, err)
	}

	// The remote API guarantees ascending update IDs, so the last entry is
	// the greatest one seen in this batch.
	if len(batch) > 0 {
		f.cursor.LastID = batch[len(batch)-1].UpdateID
	}

	if f.cursor.BacklogDone {
		return batch, nil, nil
	}

	// An empty batch means nothing accumulated while offline.
	if len(batch) == 0 {
		f.cursor.BacklogDone = true
		return nil, nil, nil
	}

	boundary, resolved := splitBacklog(batch, f.cursor.StartedAt)
	if resolved {
		f.cursor.BacklogDone = true
	}

	logger.WithFields(logrus.Fields{
		"batch_size":   len(batch),
		"backlog_size": boundary,
		"live_size":    len(batch) - boundary,
		"resolved":     resolved,
	}).Debug("backlog-boundary-search-completed")

	return batch[boundary:], batch[:boundary], nil
}

// splitBacklog finds the index of the first live update in a chronologically
// ordered batch, probing with a shrinking step instead of scanning linearly.
// A backlog left over from a long offline period can hold thousands of
// updates, and the probe converges in O(log n) classifications.
//
// It returns the boundary index and whether the boundary is final. When the
// probe overruns the end of the batch the boundary could not be bracketed
// yet; the whole batch is treated as backlog and the search resumes on the
// next fetch. When the probe underruns the start the batch is treated as all
// backlog and the search ends.
//
// The result is a heuristic: it relies on message dates being non-decreasing
// with batch index and can land on a wrong boundary if the remote reorders
// updates or clocks skew.
func splitBacklog(batch []api.Update, startedAt time.Time) (boundary int, resolved bool) {
	probe := len(batch) - 1
	step := len(batch)
	last := 0

	for {
		// Classify the probed update: backlog moves the probe toward the
		// end (+1), live moves it toward the start (-1).
		dir := -1
		if isBacklog(batch[probe], startedAt) {
			dir = 1
		}

		step /= 2
		if step == 0 {
			step = 1
		}

		// A backlog probe right after a live probe at step 1 brackets the
		// boundary: step back onto the live side and finish.
		if dir == 1 && last == -1 && step == 1 {
			return probe + 1, true
		}
		last = dir

		probe += dir * step

		if probe < 0 {
			return len(batch), true
		}
		if probe >= len(batch) {
			return len(batch), false
		}
	}
}

// isBacklog classifies one update. Updates without a message payload carry
// no date and are classified as live.
func isBacklog(u api.Update, startedAt time.Time) bool {
	return u.Message != nil && u.Message.Time().Before(startedAt)
}
