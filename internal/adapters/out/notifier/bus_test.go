package notifier_test

import (
	"context"
	"log/slog"
	"testing"

	"orderflow/internal/adapters/out/notifier"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	name string
	log  *[]string
}

func (o recordingObserver) Update(_ context.Context, message string) {
	*o.log = append(*o.log, o.name+": "+message)
}

type panickingObserver struct{}

func (panickingObserver) Update(context.Context, string) {
	panic("observer exploded")
}

func TestBus_Publish_DeliversInSubscriptionOrder(t *testing.T) {
	ctx := t.Context()
	bus := notifier.NewBus(slog.Default())

	var log []string
	bus.Subscribe(recordingObserver{name: "email", log: &log})
	bus.Subscribe(recordingObserver{name: "sms", log: &log})

	bus.Publish(ctx, "order created: 42")
	bus.Publish(ctx, "order placed: 42")

	assert.Equal(t, []string{
		"email: order created: 42",
		"sms: order created: 42",
		"email: order placed: 42",
		"sms: order placed: 42",
	}, log)
}

func TestBus_Publish_NoObservers(t *testing.T) {
	bus := notifier.NewBus(slog.Default())

	require.NotPanics(t, func() {
		bus.Publish(t.Context(), "order created: 42")
	})
}

func TestBus_Publish_PanickingObserverIsIsolated(t *testing.T) {
	ctx := t.Context()
	bus := notifier.NewBus(slog.Default())

	var log []string
	bus.Subscribe(recordingObserver{name: "before", log: &log})
	bus.Subscribe(panickingObserver{})
	bus.Subscribe(recordingObserver{name: "after", log: &log})

	require.NotPanics(t, func() {
		bus.Publish(ctx, "order cancelled: 42")
	})

	// Observers after the panicking one still receive the message.
	assert.Equal(t, []string{
		"before: order cancelled: 42",
		"after: order cancelled: 42",
	}, log)
}

func TestBus_SubscribeDuringDelivery(t *testing.T) {
	ctx := t.Context()
	bus := notifier.NewBus(slog.Default())

	var log []string
	bus.Subscribe(recordingObserver{name: "first", log: &log})
	bus.Publish(ctx, "one")

	bus.Subscribe(recordingObserver{name: "second", log: &log})
	bus.Publish(ctx, "two")

	assert.Equal(t, []string{
		"first: one",
		"first: two",
		"second: two",
	}, log)
}
