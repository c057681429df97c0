package order_test

import (
	"context"
	"testing"

	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	"github.com/muhammadheryan/stock-allocation/repository/order"
	"github.com/muhammadheryan/stock-allocation/repository/sqlitetest"
	cerr "github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository(t *testing.T) {
	db := sqlitetest.New(t)
	ctx := context.Background()
	repo := order.NewOrderRepository(db)

	missing, err := repo.GetOrderDetail(ctx, "o1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	tx, err := db.BeginTxx(ctx, nil)
	require.NoError(t, err)
	require.NoError(t, repo.InsertOrderTx(ctx, tx, &model.InsertOrderItem{OrderID: "o1", Status: constant.OrderStatusPending}))
	require.NoError(t, repo.InsertOrderItemsTx(ctx, tx, "o1", []model.LineItem{
		{ItemID: "b", Quantity: 2},
		{ItemID: "a", LocationID: "wh1", Quantity: 1},
	}))
	require.NoError(t, tx.Commit())

	detail, err := repo.GetOrderDetail(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, constant.OrderStatusPending, detail.Status)

	items, err := repo.GetOrderItems(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, []model.LineItem{
		{ItemID: "a", LocationID: "wh1", Quantity: 1},
		{ItemID: "b", Quantity: 2},
	}, items)

	require.NoError(t, repo.UpdateOrderStatus(ctx, "o1", constant.OrderStatusPending, constant.OrderStatusBackordered, "short"))
	err = repo.UpdateOrderStatus(ctx, "o1", constant.OrderStatusPending, constant.OrderStatusAllocated, "")
	assert.True(t, cerr.IsType(err, constant.ErrConflict))

	detail, err = repo.GetOrderDetail(ctx, "o1")
	require.NoError(t, err)
	assert.Equal(t, constant.OrderStatusBackordered, detail.Status)
	assert.Equal(t, "short", detail.FailureReason)
}
