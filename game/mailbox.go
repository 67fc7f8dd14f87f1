package game

import "context"

type delivery struct {
	event PointerEvent
	// Closed once the event is picked up, if someone waits for it
	picked chan struct{}
}

// Mailbox hands pointer events from one producer goroutine to the goroutine
// owning the board. Only the latest undelivered event is kept.
type Mailbox struct {
	slot chan delivery
}

func NewMailbox() *Mailbox {
	return &Mailbox{slot: make(chan delivery, 1)}
}

// Post never blocks; a pending event that was not picked up yet is dropped
func (mailbox *Mailbox) Post(event PointerEvent) {
	mailbox.put(delivery{event: event})
}

// PostAndWait posts the event and blocks until the board's goroutine picked
// it up. An event replaced by a later Post is never picked up, so the wait
// then only ends with ctx.
func (mailbox *Mailbox) PostAndWait(ctx context.Context, event PointerEvent) error {
	picked := make(chan struct{})
	mailbox.put(delivery{event: event, picked: picked})

	select {
	case <-picked:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (mailbox *Mailbox) put(next delivery) {
	for {
		select {
		case mailbox.slot <- next:
			return
		default:
		}

		select {
		case <-mailbox.slot:
		default:
		}
	}
}

func (mailbox *Mailbox) Poll() (PointerEvent, bool) {
	select {
	case pending := <-mailbox.slot:
		return pending.open(), true
	default:
		return PointerEvent{}, false
	}
}

func (mailbox *Mailbox) Next(ctx context.Context) (PointerEvent, error) {
	select {
	case pending := <-mailbox.slot:
		return pending.open(), nil
	case <-ctx.Done():
		return PointerEvent{}, ctx.Err()
	}
}

func (pending delivery) open() PointerEvent {
	if pending.picked != nil {
		close(pending.picked)
	}
	return pending.event
}
