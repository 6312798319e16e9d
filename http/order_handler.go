package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"go.uber.org/zap"

	"github.com/orderly-app/orderly"
	octx "github.com/orderly-app/orderly/context"
	"github.com/orderly-app/orderly/job"
	"github.com/orderly-app/orderly/kit/platform/errors"
	kithttp "github.com/orderly-app/orderly/kit/transport/http"
	"github.com/orderly-app/orderly/tenancy"
)

// OrderEnqueuer schedules background work produced by order mutations.
// job.Runner implements it.
type OrderEnqueuer interface {
	Enqueue(j job.Job) error
}

// OrderHandler serves the order API. The order service it calls is not a
// field: every request uses whichever variant the tenancy binder bound
// to the request context.
type OrderHandler struct {
	chi.Router
	kithttp.ErrorHandler

	log  *zap.Logger
	jobs OrderEnqueuer
}

// NewOrderHandler returns a handler for the order API. jobs may be nil,
// in which case mutations skip notification dispatch.
func NewOrderHandler(log *zap.Logger, jobs OrderEnqueuer) *OrderHandler {
	h := &OrderHandler{
		log:  log,
		jobs: jobs,
	}

	r := chi.NewRouter()
	r.Post("/", h.handlePostOrder)
	r.Get("/", h.handleGetOrders)
	r.Route("/{guid}", func(r chi.Router) {
		r.Get("/", h.handleGetOrder)
		r.Patch("/", h.handlePatchOrder)
		r.Delete("/", h.handleDeleteOrder)
	})
	h.Router = r
	return h
}

type postOrderRequest struct {
	ProjectID orderly.ID `json:"project_id"`
	Details   string     `json:"details"`
}

func (h *OrderHandler) handlePostOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	u, err := octx.GetPrincipal(ctx)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	var req postOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.HandleHTTPError(ctx, &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to decode order request body",
			Err:  err,
		}, w)
		return
	}

	svc, err := tenancy.GetOrderService(ctx)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	o := &orderly.Order{
		UserID:    u.ID,
		ProjectID: req.ProjectID,
		Details:   req.Details,
	}
	if err := svc.CreateOrder(ctx, o); err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	h.notify(ctx, "order-created", o, orderly.NotificationService.OrderCreated)
	h.encodeResponse(ctx, w, http.StatusCreated, o)
}

func (h *OrderHandler) handleGetOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	svc, err := tenancy.GetOrderService(ctx)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	o, err := svc.FindOrderByGUID(ctx, chi.URLParam(r, "guid"))
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}
	h.encodeResponse(ctx, w, http.StatusOK, o)
}

type getOrdersResponse struct {
	Orders []*orderly.Order `json:"orders"`
	Total  int              `json:"total"`
}

func (h *OrderHandler) handleGetOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	filter, opts, err := decodeOrderFilter(r)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	svc, err := tenancy.GetOrderService(ctx)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	orders, total, err := svc.FindOrders(ctx, filter, opts)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}
	if orders == nil {
		orders = []*orderly.Order{}
	}
	h.encodeResponse(ctx, w, http.StatusOK, getOrdersResponse{Orders: orders, Total: total})
}

func (h *OrderHandler) handlePatchOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var upd orderly.OrderUpdate
	if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
		h.HandleHTTPError(ctx, &errors.Error{
			Code: errors.EInvalid,
			Msg:  "failed to decode order update body",
			Err:  err,
		}, w)
		return
	}

	svc, err := tenancy.GetOrderService(ctx)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	o, err := svc.FindOrderByGUID(ctx, chi.URLParam(r, "guid"))
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}
	o, err = svc.UpdateOrder(ctx, o.ID, upd)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	h.notify(ctx, "order-updated", o, orderly.NotificationService.OrderUpdated)
	h.encodeResponse(ctx, w, http.StatusOK, o)
}

func (h *OrderHandler) handleDeleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	svc, err := tenancy.GetOrderService(ctx)
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}

	o, err := svc.FindOrderByGUID(ctx, chi.URLParam(r, "guid"))
	if err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}
	if err := svc.DeleteOrder(ctx, o.ID); err != nil {
		h.HandleHTTPError(ctx, err, w)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// notify enqueues a notification job carrying the request's tenant, so
// the worker rebinds the same variants this request saw.
func (h *OrderHandler) notify(ctx context.Context, name string, o *orderly.Order, send func(orderly.NotificationService, context.Context, *orderly.Order) error) {
	if h.jobs == nil {
		return
	}

	var tenant orderly.TenantID
	if t, ok := tenancy.TenantFromContext(ctx); ok {
		tenant = t
	}

	err := h.jobs.Enqueue(job.Job{
		Name:   name,
		Tenant: tenant,
		Fn: func(ctx context.Context) error {
			svc, err := tenancy.GetNotificationService(ctx)
			if err != nil {
				return err
			}
			return send(svc, ctx, o)
		},
	})
	if err != nil {
		// Notification loss is not a request failure.
		h.log.Warn("Failed to enqueue notification",
			zap.String("job", name),
			zap.String("order_guid", o.GUID),
			zap.Error(err))
	}
}

func decodeOrderFilter(r *http.Request) (orderly.OrderFilter, orderly.FindOptions, error) {
	var (
		filter orderly.OrderFilter
		opts   orderly.FindOptions
	)
	q := r.URL.Query()

	if v := q.Get("user_id"); v != "" {
		id, err := orderly.IDFromString(v)
		if err != nil {
			return filter, opts, err
		}
		filter.UserID = id
	}
	if v := q.Get("project_id"); v != "" {
		id, err := orderly.IDFromString(v)
		if err != nil {
			return filter, opts, err
		}
		filter.ProjectID = id
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, opts, &errors.Error{
				Code: errors.EInvalid,
				Msg:  "limit must be an integer",
			}
		}
		opts.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return filter, opts, &errors.Error{
				Code: errors.EInvalid,
				Msg:  "offset must be an integer",
			}
		}
		opts.Offset = n
	}
	return filter, opts, nil
}

func (h *OrderHandler) encodeResponse(ctx context.Context, w http.ResponseWriter, code int, res interface{}) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(res); err != nil {
		h.log.Error("Failed to encode response", zap.Error(err))
	}
}
