// This file implements a generic, batched loader: it walks an in-memory
// result set and invokes the repository's bulk insert per batch. Backends
// implement the insert with their most efficient primitive (Postgres COPY,
// multi-row INSERT elsewhere).
package storage

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultBatchSize is used when a caller passes batchSize <= 0.
const DefaultBatchSize = 500

// Load inserts rows into repo in batches of batchSize and returns the total
// number of rows reported inserted. Progress is logged per flush with
// running totals and instantaneous rows/sec.
func Load(ctx context.Context, repo Repository, columns []string, rows [][]any, batchSize int) (int64, error) {
	if repo == nil {
		return 0, fmt.Errorf("repo must not be nil")
	}
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	var (
		total   int64
		batches int64
		start   = time.Now()
		lastTS  = start
		lastTot int64
	)

	for off := 0; off < len(rows); off += batchSize {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		end := off + batchSize
		if end > len(rows) {
			end = len(rows)
		}
		n, err := repo.CopyFrom(ctx, columns, rows[off:end])
		total += n
		if err != nil {
			log.Printf("loader: insert failed batch=%d total=%d err=%v", batches+1, total, err)
			return total, err
		}

		batches++
		now := time.Now()
		sinceLast := now.Sub(lastTS)
		rps := float64(0)
		if sinceLast > 0 {
			rps = float64(total-lastTot) / sinceLast.Seconds()
		}
		log.Printf("batch #%d: rps=%.0f inserted=%d total_inserted=%d elapsed=%s",
			batches, rps, n, total, now.Sub(start).Round(time.Millisecond))
		lastTS, lastTot = now, total
	}
	return total, nil
}
