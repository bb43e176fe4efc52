package main

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"

	"vols_gis/backend/schemas"
	"vols_gis/backend/store"
)

// Error kinds of the response envelope. Every failure path returns
// {"error": kind, "message": text} plus optional details/hint.
const (
	kindValidation   = "ValidationError"
	kindUnauthorized = "Unauthorized"
	kindForbidden    = "Forbidden"
	kindNotFound     = "NotFound"
	kindConflict     = "Conflict"
	kindStorage      = "StorageUnavailable"
	kindInternal     = "InternalError"
)

func fail(c *gin.Context, status int, kind, message string) {
	c.JSON(status, gin.H{"error": kind, "message": message})
}

func failDetails(c *gin.Context, status int, kind, message string, details []string) {
	c.JSON(status, gin.H{"error": kind, "message": message, "details": details})
}

// storeError translates a store-layer error into the envelope. Raw backend
// text is logged for operators, never sent to the client.
func storeError(c *gin.Context, err error, resource string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		fail(c, 404, kindNotFound, resource+" not found")
	case errors.Is(err, store.ErrConflict):
		fail(c, 409, kindConflict, resource+" already exists")
	case errors.Is(err, store.ErrUnavailable):
		log.Error().Err(err).Str("resource", resource).Msg("storage unavailable")
		c.JSON(500, gin.H{
			"error":   kindStorage,
			"message": "database is unreachable",
			"hint":    "check that the database is running and the connection settings are correct",
		})
	default:
		log.Error().Err(err).Str("resource", resource).Msg("unhandled store error")
		fail(c, 500, kindInternal, "internal server error")
	}
}

// bindCreate decodes and validates a create payload. Malformed JSON and
// schema violations both answer 400 before any store access.
func bindCreate(c *gin.Context, dst interface{}) bool {
	body, err := c.GetRawData()
	if err != nil {
		fail(c, 400, kindValidation, "cannot read request body")
		return false
	}
	return bindBody(c, body, dst)
}

// bindUpdate additionally returns the set of keys the body carried, which is
// what separates "field omitted" from "field explicitly null".
func bindUpdate(c *gin.Context, dst interface{}) (schemas.Presence, bool) {
	body, err := c.GetRawData()
	if err != nil {
		fail(c, 400, kindValidation, "cannot read request body")
		return nil, false
	}
	presence, err := schemas.ParsePresence(body)
	if err != nil {
		fail(c, 400, kindValidation, "malformed JSON body")
		return nil, false
	}
	if !bindBody(c, body, dst) {
		return nil, false
	}
	return presence, true
}

func bindBody(c *gin.Context, body []byte, dst interface{}) bool {
	if err := binding.JSON.BindBody(body, dst); err != nil {
		if details := schemas.ValidationDetails(err); details != nil {
			failDetails(c, 400, kindValidation, "request validation failed", details)
		} else {
			fail(c, 400, kindValidation, "malformed JSON body")
		}
		return false
	}
	return true
}
