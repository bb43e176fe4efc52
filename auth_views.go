package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"vols_gis/backend/auth"
	"vols_gis/backend/schemas"
	"vols_gis/backend/store"
)

// login verifies credentials and issues a bearer token. Unknown username and
// wrong password answer identically so usernames cannot be enumerated; only
// an inactive account gets a distinct response.
func (a *app) login(c *gin.Context) {
	var sch schemas.UserLogin
	if !bindCreate(c, &sch) {
		return
	}
	user, err := store.GetUserByUsername(a.db, sch.Username)
	if err != nil {
		if err == store.ErrNotFound {
			fail(c, 401, kindUnauthorized, "invalid username or password")
			return
		}
		storeError(c, err, "user")
		return
	}
	if !user.IsActive {
		fail(c, 403, kindForbidden, "account is disabled")
		return
	}
	if !auth.CheckPassword(user.PasswordHash, sch.Password) {
		fail(c, 401, kindUnauthorized, "invalid username or password")
		return
	}
	token, err := auth.IssueToken(a.secret(), a.cfg.TokenTTL, user.ID, user.Username, user.Role)
	if err != nil {
		log.Error().Err(err).Msg("failed to sign token")
		fail(c, 500, kindInternal, "internal server error")
		return
	}
	c.JSON(200, gin.H{
		"access_token": token,
		"token_type":   "Bearer",
		"user":         user,
	})
}

// me re-reads the authenticated user from the store so disabled or deleted
// accounts show up even while their token is still valid.
func (a *app) me(c *gin.Context) {
	claims, ok := auth.CurrentUser(c)
	if !ok {
		fail(c, 401, kindUnauthorized, "authentication required")
		return
	}
	user, err := store.GetUser(a.db, claims.UserID)
	if err != nil {
		storeError(c, err, "user")
		return
	}
	c.JSON(200, gin.H{"user": user})
}
