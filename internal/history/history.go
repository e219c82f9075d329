// Package history flattens the commit ancestry graph into a linear log.
package history

import (
	"fmt"
	"log/slog"

	"github.com/KostasZigo/mygit/internal/objects"
	"github.com/emirpasic/gods/queues/linkedlistqueue"
)

// CommitReader resolves a hash to a fully parsed commit.
type CommitReader interface {
	ReadCommit(hash objects.Hash) (*objects.Commit, error)
}

type traceOpts struct {
	maxCount int
}

// Option configures TraceCommitGraph.
type Option func(*traceOpts)

// WithMaxCount stops the walk once n commits have been emitted.
// n <= 0 means no limit.
func WithMaxCount(n int) Option {
	return func(opts *traceOpts) {
		opts.maxCount = n
	}
}

// TraceCommitGraph walks the ancestry of start breadth-first and returns every
// reachable commit exactly once, start first. Parents are read eagerly in the
// order they are written and enqueued in that same order, so first-parent
// lines come out ahead of later parents. No timestamp ordering is applied.
//
// The first read or parse error aborts the walk.
func TraceCommitGraph(reader CommitReader, start *objects.Commit, options ...Option) ([]*objects.Commit, error) {
	opts := &traceOpts{}
	for _, option := range options {
		option(opts)
	}

	queue := linkedlistqueue.New()
	queue.Enqueue(start)

	// A hash is in seen from the moment it is enqueued, so merge points are
	// read and queued once no matter how many descendants reach them and no
	// dequeued commit can already be in the log.
	seen := map[objects.Hash]struct{}{start.Hash: {}}
	var log []*objects.Commit

	for !queue.Empty() {
		value, _ := queue.Dequeue()
		current := value.(*objects.Commit)
		log = append(log, current)

		// Parents of the last emitted commit are never read.
		if opts.maxCount > 0 && len(log) >= opts.maxCount {
			break
		}

		if current.IsRoot() {
			slog.Debug("Reached root commit", "hash", current.Hash)
			continue
		}

		for _, parentHash := range current.Parents {
			if _, ok := seen[parentHash]; ok {
				slog.Debug("Skipping already queued commit",
					"hash", parentHash,
					"child", current.Hash)
				continue
			}
			parent, err := reader.ReadCommit(parentHash)
			if err != nil {
				return nil, fmt.Errorf("failed to resolve parent %s of commit %s: %w", parentHash, current.Hash, err)
			}
			seen[parentHash] = struct{}{}
			queue.Enqueue(parent)
		}
	}

	slog.Debug("Traced commit graph",
		"start", start.Hash,
		"commits", len(log))

	return log, nil
}
