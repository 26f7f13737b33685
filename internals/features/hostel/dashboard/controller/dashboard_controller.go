package controller

import (
	"context"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	paymentService "hostelhub_backend/internals/features/finance/payments/service"
	"hostelhub_backend/internals/features/hostel/dashboard/dto"
	residentService "hostelhub_backend/internals/features/hostel/residents/service"
	roomService "hostelhub_backend/internals/features/hostel/rooms/service"
	helper "hostelhub_backend/internals/helpers"
	"hostelhub_backend/internals/helpers/cache"
)

// StatsKey is the cache key of the aggregated dashboard figures.
const StatsKey = "hostelhub:dashboard:stats"

type DashboardController struct {
	Rooms     *roomService.RoomService
	Residents *residentService.ResidentService
	Payments  *paymentService.PaymentService

	// Cache is optional; nil or a zero TTL reads straight from the database.
	Cache cache.KV
	TTL   time.Duration
}

func NewDashboardController(rooms *roomService.RoomService, residents *residentService.ResidentService, payments *paymentService.PaymentService, kv cache.KV, ttl time.Duration) *DashboardController {
	return &DashboardController{Rooms: rooms, Residents: residents, Payments: payments, Cache: kv, TTL: ttl}
}

// GET /dashboard/stats
func (h *DashboardController) Stats(c *fiber.Ctx) error {
	ctx := c.UserContext()
	useCache := h.Cache != nil && h.TTL > 0

	if useCache {
		var cached dto.DashboardStats
		err := cache.GetJSON(ctx, h.Cache, StatsKey, &cached)
		if err == nil {
			return helper.JsonOK(c, "", cached)
		}
		if !errors.Is(err, cache.ErrMiss) {
			zap.L().Warn("dashboard cache read failed", zap.Error(err))
		}
	}

	out, err := h.collect(ctx)
	if err != nil {
		return helper.FromError(c, err)
	}

	if useCache {
		if err := cache.SetJSON(ctx, h.Cache, StatsKey, out, h.TTL); err != nil {
			zap.L().Warn("dashboard cache write failed", zap.Error(err))
		}
	}
	return helper.JsonOK(c, "", out)
}

func (h *DashboardController) collect(ctx context.Context) (dto.DashboardStats, error) {
	var out dto.DashboardStats
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		out.Rooms, err = h.Rooms.Stats(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Residents, err = h.Residents.Stats(ctx)
		return err
	})
	g.Go(func() (err error) {
		out.Payments, err = h.Payments.Stats(ctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return dto.DashboardStats{}, err
	}
	return out, nil
}
