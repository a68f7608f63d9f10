package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/smartlocker/smartlocker/internal/identity"
	"github.com/smartlocker/smartlocker/internal/locker"
	"github.com/smartlocker/smartlocker/internal/locker/service"
	"github.com/smartlocker/smartlocker/pkg/logger"
	"github.com/smartlocker/smartlocker/pkg/metrics"
)

// Response messages are part of the external contract and must not change.
const (
	msgCreated       = "Locker created successfully"
	msgDeleted       = "Locker deleted successfully"
	msgConflict      = "Locker already exists"
	msgNotFound      = "Locker not found"
	msgForbidden     = "You are not the owner of this locker"
	msgInternalError = "Internal Server Error"
)

// RegisterLockerRoutes mounts the five locker operations on r. Every route
// expects the auth middleware to have stored the caller identity in the
// context; requests without one are rejected.
func RegisterLockerRoutes(r gin.IRoutes, svc service.Service) {
	r.POST("/api/lockers", createLocker(svc))
	r.GET("/api/lockers", listLockers(svc))
	r.GET("/api/lockers/:id", getLocker(svc))
	r.PUT("/api/lockers/:id", updateLocker(svc))
	r.DELETE("/api/lockers/:id", deleteLocker(svc))
}

func createLocker(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerIdentity(c, "create")
		if !ok {
			return
		}
		var req struct {
			UUID     string `json:"uuid" binding:"required"`
			Location string `json:"location" binding:"required"`
			Size     string `json:"size" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			metrics.LockerOps.WithLabelValues("create", "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		l, err := svc.Create(c.Request.Context(), caller, service.CreateInput{
			LockerID: req.UUID,
			Location: req.Location,
			Size:     req.Size,
		})
		if err != nil {
			if errors.Is(err, service.ErrConflict) {
				metrics.LockerOps.WithLabelValues("create", "conflict").Inc()
				c.JSON(http.StatusConflict, gin.H{"message": msgConflict})
				return
			}
			internalError(c, "create", err)
			return
		}
		metrics.LockerOps.WithLabelValues("create", "ok").Inc()
		c.JSON(http.StatusCreated, gin.H{"message": msgCreated, "locker": l})
	}
}

func getLocker(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerIdentity(c, "get")
		if !ok {
			return
		}
		l, err := svc.Get(c.Request.Context(), caller, c.Param("id"))
		if err != nil {
			guardError(c, "get", err)
			return
		}
		metrics.LockerOps.WithLabelValues("get", "ok").Inc()
		c.JSON(http.StatusOK, l)
	}
}

func listLockers(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerIdentity(c, "list")
		if !ok {
			return
		}
		list, err := svc.List(c.Request.Context(), caller)
		if err != nil {
			internalError(c, "list", err)
			return
		}
		metrics.LockerOps.WithLabelValues("list", "ok").Inc()
		c.JSON(http.StatusOK, gin.H{"lockers": list})
	}
}

func updateLocker(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerIdentity(c, "update")
		if !ok {
			return
		}
		var patch locker.Patch
		if err := c.ShouldBindJSON(&patch); err != nil {
			metrics.LockerOps.WithLabelValues("update", "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}
		if patch.Empty() {
			metrics.LockerOps.WithLabelValues("update", "invalid").Inc()
			c.JSON(http.StatusBadRequest, gin.H{"message": "no updatable fields in request body"})
			return
		}
		updated, err := svc.Update(c.Request.Context(), caller, c.Param("id"), patch)
		if err != nil {
			guardError(c, "update", err)
			return
		}
		metrics.LockerOps.WithLabelValues("update", "ok").Inc()
		c.JSON(http.StatusOK, updated)
	}
}

func deleteLocker(svc service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := callerIdentity(c, "delete")
		if !ok {
			return
		}
		id := c.Param("id")
		if err := svc.Delete(c.Request.Context(), caller, id); err != nil {
			guardError(c, "delete", err)
			return
		}
		metrics.LockerOps.WithLabelValues("delete", "ok").Inc()
		// 201 on delete is historical but is the published contract.
		c.JSON(http.StatusCreated, gin.H{"message": msgDeleted, "locker": id})
	}
}

// guardError maps the service's expected failures; anything unrecognized
// falls through to the catch-all 500.
func guardError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		metrics.LockerOps.WithLabelValues(op, "not_found").Inc()
		c.JSON(http.StatusNotFound, gin.H{"message": msgNotFound})
	case errors.Is(err, service.ErrForbidden):
		metrics.LockerOps.WithLabelValues(op, "forbidden").Inc()
		c.JSON(http.StatusForbidden, gin.H{"message": msgForbidden})
	default:
		internalError(c, op, err)
	}
}

// internalError is the single place unexpected failures become a response.
// Full detail goes to the log only; the body stays generic.
func internalError(c *gin.Context, op string, err error) {
	logger.Errorf("locker %s failed: %v", op, err)
	metrics.LockerOps.WithLabelValues(op, "error").Inc()
	c.JSON(http.StatusInternalServerError, gin.H{"message": msgInternalError})
}

func callerIdentity(c *gin.Context, op string) (identity.Identity, bool) {
	v, ok := c.Get("identity")
	if ok {
		if id, ok2 := v.(identity.Identity); ok2 {
			return id, true
		}
	}
	metrics.LockerOps.WithLabelValues(op, "unauthorized").Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
	return identity.Identity{}, false
}
