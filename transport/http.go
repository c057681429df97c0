package transport

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	allocationapp "github.com/muhammadheryan/stock-allocation/application/allocation"
	orderapp "github.com/muhammadheryan/stock-allocation/application/order"
	stockapp "github.com/muhammadheryan/stock-allocation/application/stock"
	"github.com/muhammadheryan/stock-allocation/constant"
	"github.com/muhammadheryan/stock-allocation/model"
	"github.com/muhammadheryan/stock-allocation/utils/errors"
	"github.com/muhammadheryan/stock-allocation/utils/logger"
	"go.uber.org/zap"
)

type RestHandler struct {
	OrderApp      orderapp.OrderApp
	AllocationApp allocationapp.AllocationApp
	StockApp      stockapp.StockApp
	HealthCheck   func(ctx context.Context) error
}

// NewTransport builds the router. Everything under /v1 requires the internal API key;
// /healthz and /metrics are public.
func NewTransport(rh *RestHandler, apiKey string, metricsHandler http.Handler) http.Handler {
	mux := mux.NewRouter()

	// Public routes
	mux.HandleFunc("/healthz", rh.Health).Methods(http.MethodGet)
	if metricsHandler != nil {
		mux.Handle("/metrics", metricsHandler).Methods(http.MethodGet)
	}

	// internal routes
	api := mux.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/orders", rh.PlaceOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{order_id}", rh.GetOrder).Methods(http.MethodGet)
	api.HandleFunc("/orders/{order_id}/cancel", rh.CancelOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{order_id}/fulfill", rh.FulfillOrder).Methods(http.MethodPost)
	api.HandleFunc("/orders/{order_id}/allocations", rh.GetOrderAllocations).Methods(http.MethodGet)
	api.HandleFunc("/lots", rh.ReceiveLot).Methods(http.MethodPost)
	api.HandleFunc("/lots/{lot_id}", rh.GetLot).Methods(http.MethodGet)
	api.HandleFunc("/lots/{lot_id}", rh.RemoveLot).Methods(http.MethodDelete)
	api.HandleFunc("/items/{item_id}/lots", rh.ListItemLots).Methods(http.MethodGet)
	api.HandleFunc("/items/{item_id}/availability", rh.GetItemAvailability).Methods(http.MethodGet)
	api.Use(InternalMiddleware(apiKey))

	// middleware
	mux.Use(LoggingMiddleware())

	return mux
}

// Health handler
// @Summary Health check
// @Description Reports whether the service can reach its database
// @Tags Health
// @Produce json
// @Success 200 {object} response
// @Failure 503 {object} errors.CustomError
// @Router /healthz [get]
func (s *RestHandler) Health(w http.ResponseWriter, r *http.Request) {
	if s.HealthCheck != nil {
		if err := s.HealthCheck(r.Context()); err != nil {
			logger.Ctx(r.Context()).Warn("[Health] check failed", zap.String("error", err.Error()))
			writeError(w, errors.SetCustomError(constant.ErrServiceUnavailable))
			return
		}
	}
	writeSuccess(w, map[string]string{"status": "ok"})
}

// PlaceOrder handler
// @Summary Place order
// @Description Records the order and reserves stock for every line item. A backordered order is a successful response carrying the short item and shortfall
// @Tags Orders
// @Accept json
// @Produce json
// @Security InternalKey
// @Param request body model.OrderRequest true "Order Request"
// @Success 200 {object} model.OrderResponse
// @Failure 400 {object} errors.CustomError
// @Failure 503 {object} errors.CustomError
// @Router /v1/orders [post]
func (s *RestHandler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.OrderApp.PlaceOrder(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrder handler
// @Summary Get order
// @Description Returns the order status with its allocation summary
// @Tags Orders
// @Produce json
// @Security InternalKey
// @Param order_id path string true "Order ID"
// @Success 200 {object} model.OrderResponse
// @Failure 404 {object} errors.CustomError
// @Router /v1/orders/{order_id} [get]
func (s *RestHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.GetOrder(r.Context(), mux.Vars(r)["order_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// CancelOrder handler
// @Summary Cancel order
// @Description Releases the order's reserved stock back to its lots
// @Tags Orders
// @Produce json
// @Security InternalKey
// @Param order_id path string true "Order ID"
// @Success 200 {object} model.OrderResponse
// @Failure 404 {object} errors.CustomError
// @Failure 422 {object} errors.CustomError
// @Router /v1/orders/{order_id}/cancel [post]
func (s *RestHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.CancelOrder(r.Context(), mux.Vars(r)["order_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// FulfillOrder handler
// @Summary Fulfill order
// @Description Marks the reserved stock of an allocated order as consumed
// @Tags Orders
// @Produce json
// @Security InternalKey
// @Param order_id path string true "Order ID"
// @Success 200 {object} model.OrderResponse
// @Failure 404 {object} errors.CustomError
// @Failure 422 {object} errors.CustomError
// @Router /v1/orders/{order_id}/fulfill [post]
func (s *RestHandler) FulfillOrder(w http.ResponseWriter, r *http.Request) {
	res, err := s.OrderApp.FulfillOrder(r.Context(), mux.Vars(r)["order_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetOrderAllocations handler
// @Summary Order allocations
// @Description Per item reserved, consumed and released totals with every allocation of the order
// @Tags Orders
// @Produce json
// @Security InternalKey
// @Param order_id path string true "Order ID"
// @Success 200 {object} model.OrderAllocationSummary
// @Failure 503 {object} errors.CustomError
// @Router /v1/orders/{order_id}/allocations [get]
func (s *RestHandler) GetOrderAllocations(w http.ResponseWriter, r *http.Request) {
	res, err := s.AllocationApp.GetAllocationSummary(r.Context(), mux.Vars(r)["order_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// ReceiveLot handler
// @Summary Receive stock lot
// @Description Records a newly received lot of an item at a location
// @Tags Lots
// @Accept json
// @Produce json
// @Security InternalKey
// @Param request body model.ReceiveLotRequest true "Receive Lot Request"
// @Success 201 {object} model.LotResponse
// @Failure 400 {object} errors.CustomError
// @Router /v1/lots [post]
func (s *RestHandler) ReceiveLot(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.ReceiveLotRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.StockApp.ReceiveLot(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccessStatus(w, http.StatusCreated, res)
}

// GetLot handler
// @Summary Get stock lot
// @Tags Lots
// @Produce json
// @Security InternalKey
// @Param lot_id path string true "Lot ID"
// @Success 200 {object} model.LotResponse
// @Failure 404 {object} errors.CustomError
// @Router /v1/lots/{lot_id} [get]
func (s *RestHandler) GetLot(w http.ResponseWriter, r *http.Request) {
	res, err := s.StockApp.GetLot(r.Context(), mux.Vars(r)["lot_id"])
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// RemoveLot handler
// @Summary Remove stock lot
// @Description Deletes a lot that holds no reservations
// @Tags Lots
// @Produce json
// @Security InternalKey
// @Param lot_id path string true "Lot ID"
// @Success 200 {object} response
// @Failure 404 {object} errors.CustomError
// @Failure 409 {object} errors.CustomError
// @Router /v1/lots/{lot_id} [delete]
func (s *RestHandler) RemoveLot(w http.ResponseWriter, r *http.Request) {
	if err := s.StockApp.RemoveLot(r.Context(), mux.Vars(r)["lot_id"]); err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, nil)
}

// ListItemLots handler
// @Summary List item lots
// @Description Lots of an item in allocation order, optionally at one location
// @Tags Items
// @Produce json
// @Security InternalKey
// @Param item_id path string true "Item ID"
// @Param location_id query string false "Location ID"
// @Success 200 {array} model.LotResponse
// @Failure 400 {object} errors.CustomError
// @Router /v1/items/{item_id}/lots [get]
func (s *RestHandler) ListItemLots(w http.ResponseWriter, r *http.Request) {
	res, err := s.StockApp.ListLots(r.Context(), mux.Vars(r)["item_id"], r.URL.Query().Get("location_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// GetItemAvailability handler
// @Summary Item availability
// @Description Total, reserved and available quantity of an item, optionally at one location
// @Tags Items
// @Produce json
// @Security InternalKey
// @Param item_id path string true "Item ID"
// @Param location_id query string false "Location ID"
// @Success 200 {object} model.ItemAvailability
// @Failure 400 {object} errors.CustomError
// @Router /v1/items/{item_id}/availability [get]
func (s *RestHandler) GetItemAvailability(w http.ResponseWriter, r *http.Request) {
	res, err := s.StockApp.GetItemAvailability(r.Context(), mux.Vars(r)["item_id"], r.URL.Query().Get("location_id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}
