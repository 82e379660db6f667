package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BruksfildServices01/clinic-scheduler/internal/domain/actor"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/middleware"
	"github.com/BruksfildServices01/clinic-scheduler/internal/timezone"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	// Keeps (page-1)*limit far from overflow for any limit we accept.
	maxPage = 100000
)

// pagination reads page/limit, falling back to the defaults on junk input.
func pagination(c *gin.Context, def, max int) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = defaultPage
	}
	if page > maxPage {
		page = maxPage
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(def)))
	if limit <= 0 {
		limit = def
	}
	if limit > max {
		limit = max
	}
	return page, limit
}

// uuidParam writes a 400 and returns false when the path parameter is not a
// uuid.
func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		httperr.BadRequest(c, "invalid_"+name, "Invalid identifier.")
		return uuid.Nil, false
	}
	return id, true
}

func currentActor(c *gin.Context) (actor.Actor, bool) {
	a, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Unauthorized(c, "unauthenticated", "Authentication required.")
	}
	return a, ok
}

func parseUUID(c *gin.Context, s, field string) (uuid.UUID, bool) {
	id, err := uuid.Parse(s)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+field, "Invalid identifier.")
		return uuid.Nil, false
	}
	return id, true
}

// optionalDate validates a YYYY-MM-DD query value; empty is allowed.
func optionalDate(c *gin.Context, key string) (time.Time, bool) {
	s := c.Query(key)
	if s == "" {
		return time.Time{}, true
	}
	d, err := timezone.ParseDate(s)
	if err != nil {
		httperr.BadRequest(c, "invalid_"+key, "Date must be YYYY-MM-DD.")
		return time.Time{}, false
	}
	return d, true
}
