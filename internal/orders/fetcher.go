// Package orders fetches full order detail records from the trading
// API in bounded-size batches.
package orders

import (
	"context"
	"sync"
	"time"

	"github.com/p2pdesk/backoffice/internal/external/trading"
	"github.com/p2pdesk/backoffice/pkg/logger"
)

const (
	defaultBatchSize  = 5
	defaultChunkDelay = 500 * time.Millisecond
)

// Getter is the trading API surface the fetcher needs
type Getter interface {
	GetOrder(ctx context.Context, token, orderID string) (*trading.Order, error)
}

// BatchFetcher fetches order details in fixed-size chunks. Fetches
// inside a chunk run concurrently and join before the next chunk
// starts; a fixed pause between chunks bounds the request rate toward
// the upstream. Individual failures are logged and dropped, never
// aborting the batch, and the output preserves input order.
type BatchFetcher struct {
	client     Getter
	logger     *logger.Logger
	batchSize  int
	chunkDelay time.Duration
}

// NewBatchFetcher creates a fetcher with default batch size and delay
func NewBatchFetcher(client Getter, log *logger.Logger) *BatchFetcher {
	return &BatchFetcher{
		client:     client,
		logger:     log.WithField("module", "orders"),
		batchSize:  defaultBatchSize,
		chunkDelay: defaultChunkDelay,
	}
}

// WithBatchSize overrides the chunk size
func (f *BatchFetcher) WithBatchSize(size int) *BatchFetcher {
	if size > 0 {
		f.batchSize = size
	}
	return f
}

// WithChunkDelay overrides the pause between chunks
func (f *BatchFetcher) WithChunkDelay(delay time.Duration) *BatchFetcher {
	if delay >= 0 {
		f.chunkDelay = delay
	}
	return f
}

// FetchDetails fetches detail records for the given order IDs. The
// result holds every successfully fetched order, in the relative order
// of the corresponding input IDs; failed fetches are absent.
func (f *BatchFetcher) FetchDetails(ctx context.Context, token string, orderIDs []string) []trading.Order {
	results := make([]trading.Order, 0, len(orderIDs))

	for start := 0; start < len(orderIDs); start += f.batchSize {
		end := start + f.batchSize
		if end > len(orderIDs) {
			end = len(orderIDs)
		}
		chunk := orderIDs[start:end]

		// Fan out within the chunk; each slot is written by exactly one
		// goroutine, so the indexed slice needs no locking.
		fetched := make([]*trading.Order, len(chunk))

		var wg sync.WaitGroup
		for i, id := range chunk {
			wg.Add(1)
			go func(i int, id string) {
				defer wg.Done()

				order, err := f.client.GetOrder(ctx, token, id)
				if err != nil {
					f.logger.WithFields(map[string]interface{}{
						"order_id": id,
						"error":    err.Error(),
					}).Warn("Order detail fetch failed, dropped from result")
					return
				}
				fetched[i] = order
			}(i, id)
		}
		wg.Wait()

		// Ordered join: append in slot order, skipping failures
		for _, order := range fetched {
			if order != nil {
				results = append(results, *order)
			}
		}

		// Courtesy pause between chunks, not after the last one
		if end < len(orderIDs) && f.chunkDelay > 0 {
			select {
			case <-ctx.Done():
				return results
			case <-time.After(f.chunkDelay):
			}
		}
	}

	f.logger.WithFields(map[string]interface{}{
		"requested": len(orderIDs),
		"fetched":   len(results),
	}).Debug("Order detail batch completed")

	return results
}
