package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	apporder "github.com/muhammadheryan/stock-allocation/application/order"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	utilsContext "github.com/muhammadheryan/stock-allocation/utils/context"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Consumer applies upstream order events from a durable queue to the order lifecycle.
type Consumer struct {
	conn     *amqp091.Connection
	channel  *amqp091.Channel
	queue    string
	orderApp apporder.OrderApp
}

func NewConsumer(url, queue string, orderApp apporder.OrderApp) (*Consumer, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, err
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	// Declare the queue
	_, err = channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // auto-delete
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &Consumer{conn: conn, channel: channel, queue: queue, orderApp: orderApp}, nil
}

func (c *Consumer) Start(ctx context.Context) error {
	// Set QoS to 1 - process one message at a time
	err := c.channel.Qos(1, 0, false)
	if err != nil {
		return err
	}

	msgs, err := c.channel.Consume(
		c.queue,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return err
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok { // channel closed
					return
				}
				c.handleDelivery(ctx, msg)
			}
		}
	}()

	return nil
}

// handleDelivery dispatches one event. Failures worth another attempt are requeued once and
// then rejected without requeue; everything else is acknowledged.
func (c *Consumer) handleDelivery(ctx context.Context, msg amqp091.Delivery) {
	requestID := msg.MessageId
	if requestID == "" {
		requestID = uuid.NewString()
	}
	ctx = utilsContext.WithRequestID(ctx, requestID)
	log := logger.Ctx(ctx)

	var event model.OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Warn("[OrderEventConsumer] malformed message", zap.String("error", err.Error()))
		_ = msg.Ack(false)
		return
	}

	resp, err := c.dispatch(ctx, event)
	if err == nil {
		log.Info("[OrderEventConsumer] event applied",
			zap.String("type", string(event.Type)),
			zap.String("order_id", event.OrderID),
			zap.String("status", resp.Status))
		_ = msg.Ack(false)
		return
	}

	if shouldRetry(err) {
		log.Warn("[OrderEventConsumer] event failed, will retry",
			zap.String("order_id", event.OrderID),
			zap.Bool("redelivered", msg.Redelivered),
			zap.String("error", err.Error()))
		_ = msg.Nack(false, !msg.Redelivered)
		return
	}

	log.Warn("[OrderEventConsumer] event rejected",
		zap.String("type", string(event.Type)),
		zap.String("order_id", event.OrderID),
		zap.String("error", err.Error()))
	_ = msg.Ack(false)
}

func (c *Consumer) dispatch(ctx context.Context, event model.OrderEvent) (*model.OrderResponse, error) {
	switch event.Type {
	case constant.OrderEventPlaced:
		return c.orderApp.PlaceOrder(ctx, &model.OrderRequest{OrderID: event.OrderID, Items: event.Items})
	case constant.OrderEventCancelled:
		return c.orderApp.CancelOrder(ctx, event.OrderID)
	case constant.OrderEventFulfilled:
		return c.orderApp.FulfillOrder(ctx, event.OrderID)
	default:
		return nil, errors.SetCustomErrorf(constant.ErrInvalidRequest, "unknown event type %q", event.Type)
	}
}

// shouldRetry is true only for transient failures.
func shouldRetry(err error) bool {
	return errors.IsRetryable(err) || errors.IsType(err, constant.ErrServiceUnavailable)
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}
