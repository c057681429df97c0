package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"github.com/muhammadheryan/stock-allocation/constant"
	ordermocks "github.com/muhammadheryan/stock-allocation/mocks/application/order"
	"github.com/muhammadheryan/stock-allocation/model"
	cerr "github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type fakeAcknowledger struct {
	acked   bool
	nacked  bool
	requeue bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error {
	f.acked = true
	return nil
}

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.nacked, f.requeue = true, requeue
	return nil
}

func TestConsumer_HandleDelivery(t *testing.T) {
	placed := `{"type":"placed","order_id":"O1","items":[{"item_id":"sku","quantity":2}]}`

	tests := []struct {
		name        string
		body        string
		redelivered bool
		mockCall    func(app *ordermocks.OrderApp)
		wantAck     bool
		wantRequeue bool
	}{
		{
			name: "placed event is applied",
			body: placed,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("PlaceOrder", mock.Anything, &model.OrderRequest{OrderID: "O1", Items: []model.LineItem{{ItemID: "sku", Quantity: 2}}}).
					Return(&model.OrderResponse{OrderID: "O1", Status: "ALLOCATED"}, nil).Once()
			},
			wantAck: true,
		},
		{
			name: "cancelled event",
			body: `{"type":"cancelled","order_id":"O1"}`,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("CancelOrder", mock.Anything, "O1").Return(&model.OrderResponse{OrderID: "O1", Status: "CANCELLED"}, nil).Once()
			},
			wantAck: true,
		},
		{
			name: "fulfilled event",
			body: `{"type":"fulfilled","order_id":"O1"}`,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("FulfillOrder", mock.Anything, "O1").Return(&model.OrderResponse{OrderID: "O1", Status: "FULFILLED"}, nil).Once()
			},
			wantAck: true,
		},
		{
			name:     "malformed body is dropped",
			body:     `{not json`,
			mockCall: func(app *ordermocks.OrderApp) {},
			wantAck:  true,
		},
		{
			name:     "unknown type is dropped",
			body:     `{"type":"shipped","order_id":"O1"}`,
			mockCall: func(app *ordermocks.OrderApp) {},
			wantAck:  true,
		},
		{
			name: "business rejection is acked",
			body: `{"type":"fulfilled","order_id":"O1"}`,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("FulfillOrder", mock.Anything, "O1").Return(nil, cerr.SetCustomError(constant.ErrInvalidOrderStatus)).Once()
			},
			wantAck: true,
		},
		{
			name: "unavailable is requeued on first delivery",
			body: placed,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, cerr.SetCustomError(constant.ErrServiceUnavailable)).Once()
			},
			wantRequeue: true,
		},
		{
			name:        "unavailable is rejected on redelivery",
			body:        placed,
			redelivered: true,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, cerr.SetCustomError(constant.ErrStorage)).Once()
			},
		},
		{
			name: "internal error is acked on first delivery",
			body: placed,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, cerr.SetCustomError(constant.ErrInternal)).Once()
			},
			wantAck: true,
		},
		{
			name: "storage error is requeued on first delivery",
			body: placed,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("PlaceOrder", mock.Anything, mock.Anything).Return(nil, cerr.SetCustomError(constant.ErrStorage)).Once()
			},
			wantRequeue: true,
		},
		{
			name: "plain error is acked",
			body: `{"type":"cancelled","order_id":"O1"}`,
			mockCall: func(app *ordermocks.OrderApp) {
				app.On("CancelOrder", mock.Anything, "O1").Return(nil, errors.New("unexpected")).Once()
			},
			wantAck: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := ordermocks.NewOrderApp(t)
			tt.mockCall(app)
			ack := &fakeAcknowledger{}
			c := &Consumer{orderApp: app}

			c.handleDelivery(context.Background(), amqp091.Delivery{
				Acknowledger: ack,
				DeliveryTag:  1,
				Redelivered:  tt.redelivered,
				Body:         []byte(tt.body),
			})

			assert.Equal(t, tt.wantAck, ack.acked)
			assert.Equal(t, !tt.wantAck, ack.nacked)
			assert.Equal(t, tt.wantRequeue, ack.requeue)
		})
	}
}
