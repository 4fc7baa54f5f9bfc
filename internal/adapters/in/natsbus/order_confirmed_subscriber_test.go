package natsbus

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"kitchen/internal/core/application/usecases/commands"
	"kitchen/internal/core/domain/events"
)

type capturingBus struct {
	subject string
	handler HandlerFunc
	err     error
}

func (b *capturingBus) Subscribe(subject string, handler HandlerFunc) error {
	if b.err != nil {
		return b.err
	}
	b.subject = subject
	b.handler = handler
	return nil
}

type MockCreateKitchenOrderHandler struct {
	mock.Mock
}

func (m *MockCreateKitchenOrderHandler) Handle(ctx context.Context, cmd commands.CreateKitchenOrderCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func confirmationPayload() []byte {
	return []byte(`{
		"order_id": "a8098c1a-f86e-11da-bd1a-00112444be1e",
		"tenant_id": "b8098c1a-f86e-11da-bd1a-00112444be1e",
		"version": 1,
		"priority": "high",
		"lines": [
			{"product_id": "c8098c1a-f86e-11da-bd1a-00112444be1e",
			 "recipe_id": "d8098c1a-f86e-11da-bd1a-00112444be1e",
			 "recipe_version": 2,
			 "quantity": 1}
		],
		"occurred_at": "2025-06-01T12:00:00Z"
	}`)
}

func TestStart_SubscribesToConfirmationSubject(t *testing.T) {
	bus := &capturingBus{}
	handler := &MockCreateKitchenOrderHandler{}
	subscriber := NewOrderConfirmedSubscriber(bus, handler, testLogger())

	err := subscriber.Start()

	require.NoError(t, err)
	assert.Equal(t, events.SubjectOrderConfirmed, bus.subject)
	require.NotNil(t, bus.handler)
}

func TestStart_ReturnsSubscribeError(t *testing.T) {
	bus := &capturingBus{err: assert.AnError}
	subscriber := NewOrderConfirmedSubscriber(bus, &MockCreateKitchenOrderHandler{}, testLogger())

	err := subscriber.Start()

	assert.ErrorIs(t, err, assert.AnError)
}

func TestHandleMessage_DispatchesValidFact(t *testing.T) {
	bus := &capturingBus{}
	handler := &MockCreateKitchenOrderHandler{}
	handler.On("Handle", mock.Anything, mock.MatchedBy(func(cmd commands.CreateKitchenOrderCommand) bool {
		fact := cmd.Fact()
		return fact.OrderID == "a8098c1a-f86e-11da-bd1a-00112444be1e" &&
			fact.Version == 1 &&
			len(fact.Lines) == 1 &&
			fact.Lines[0].Quantity == 1 &&
			fact.OccurredAt.Equal(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))
	})).Return(nil)

	subscriber := NewOrderConfirmedSubscriber(bus, handler, testLogger())
	require.NoError(t, subscriber.Start())

	err := bus.handler(context.Background(), confirmationPayload())

	require.NoError(t, err)
	handler.AssertExpectations(t)
}

func TestHandleMessage_DropsMalformedPayload(t *testing.T) {
	bus := &capturingBus{}
	handler := &MockCreateKitchenOrderHandler{}

	subscriber := NewOrderConfirmedSubscriber(bus, handler, testLogger())
	require.NoError(t, subscriber.Start())

	err := bus.handler(context.Background(), []byte("not json"))

	assert.NoError(t, err)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestHandleMessage_DropsInvalidFact(t *testing.T) {
	bus := &capturingBus{}
	handler := &MockCreateKitchenOrderHandler{}

	subscriber := NewOrderConfirmedSubscriber(bus, handler, testLogger())
	require.NoError(t, subscriber.Start())

	// No order id and no lines: the fact can never become valid, drop it.
	err := bus.handler(context.Background(), []byte(`{"tenant_id": "t", "version": 1}`))

	assert.NoError(t, err)
	handler.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
}

func TestHandleMessage_PropagatesHandlerError(t *testing.T) {
	bus := &capturingBus{}
	handler := &MockCreateKitchenOrderHandler{}
	handler.On("Handle", mock.Anything, mock.Anything).Return(assert.AnError)

	subscriber := NewOrderConfirmedSubscriber(bus, handler, testLogger())
	require.NoError(t, subscriber.Start())

	err := bus.handler(context.Background(), confirmationPayload())

	assert.ErrorIs(t, err, assert.AnError)
}
