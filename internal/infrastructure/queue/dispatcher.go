package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
)

// Notification is one pending push message for a user.
type Notification struct {
	UserID int64
	Text   string
}

// Sender delivers a single notification (the Telegram bot client).
type Sender interface {
	Notify(ctx context.Context, userID int64, text string) error
}

// Dispatcher fans notifications out to a fixed set of workers using
// consistent hashing on the user id, so each user's messages arrive in the
// order they were produced. It satisfies the Notifier port: Notify enqueues
// and returns immediately.
type Dispatcher struct {
	workers []chan Notification
	sender  Sender
	log     zerolog.Logger
}

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, sender Sender, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan Notification, numWorkers),
		sender:  sender,
		log:     log,
	}
	for i := range d.workers {
		d.workers[i] = make(chan Notification, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (d *Dispatcher) Start(ctx context.Context) {
	for i, ch := range d.workers {
		go d.runWorker(ctx, i, ch)
	}
}

// Notify enqueues a notification for delivery. Non-blocking up to
// channelBuffer capacity; delivery failures are logged by the worker.
func (d *Dispatcher) Notify(ctx context.Context, userID int64, text string) error {
	d.workers[d.shardIndex(userID)] <- Notification{UserID: userID, Text: text}
	return nil
}

// shardIndex maps a user id deterministically to a worker index.
func (d *Dispatcher) shardIndex(userID int64) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strconv.FormatInt(userID, 10)))
	return int(h.Sum32()) % len(d.workers)
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan Notification) {
	for {
		select {
		case <-ctx.Done():
			return
		case n, ok := <-ch:
			if !ok {
				return
			}
			if err := d.sender.Notify(ctx, n.UserID, n.Text); err != nil {
				d.log.Error().Err(err).
					Int64("user_id", n.UserID).
					Int("worker_id", id).
					Msg("notification delivery failed")
			}
		}
	}
}
