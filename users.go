package main

import (
	"github.com/gin-gonic/gin"

	"vols_gis/backend/auth"
	"vols_gis/backend/models"
	"vols_gis/backend/schemas"
	"vols_gis/backend/store"
)

func (a *app) listUsers(c *gin.Context) {
	users, err := store.ListUsers(a.db)
	if err != nil {
		storeError(c, err, "users")
		return
	}
	c.JSON(200, gin.H{"users": users, "count": len(users)})
}

func (a *app) createUser(c *gin.Context) {
	var sch schemas.UserCreate
	if !bindCreate(c, &sch) {
		return
	}
	hash, err := auth.HashPassword(sch.Password)
	if err != nil {
		fail(c, 500, kindInternal, "failed to hash password")
		return
	}
	role := sch.Role
	if role == "" {
		role = "viewer"
	}
	isActive := true
	if sch.IsActive != nil {
		isActive = *sch.IsActive
	}
	user := models.User{
		Username:     sch.Username,
		Email:        sch.Email,
		PasswordHash: hash,
		Role:         role,
		IsActive:     isActive,
	}
	if err := store.CreateUser(a.db, &user); err != nil {
		storeError(c, err, "user")
		return
	}
	c.JSON(201, gin.H{"user": user})
}

func (a *app) getUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	user, err := store.GetUser(a.db, id)
	if err != nil {
		storeError(c, err, "user")
		return
	}
	c.JSON(200, gin.H{"user": user})
}

// updateUser lets a user edit their own profile; editing anyone else
// requires the admin role.
func (a *app) updateUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	claims, ok := auth.CurrentUser(c)
	if !ok {
		fail(c, 401, kindUnauthorized, "authentication required")
		return
	}
	if claims.Role != "admin" && claims.UserID != id {
		fail(c, 403, kindForbidden, "you can only update your own profile")
		return
	}
	var sch schemas.UserUpdate
	presence, ok := bindUpdate(c, &sch)
	if !ok {
		return
	}
	changes, err := sch.Changes(presence)
	if err != nil {
		fail(c, 400, kindValidation, err.Error())
		return
	}
	if presence.Has("password") {
		if sch.Password == nil {
			fail(c, 400, kindValidation, "password: field cannot be null")
			return
		}
		hash, err := auth.HashPassword(*sch.Password)
		if err != nil {
			fail(c, 500, kindInternal, "failed to hash password")
			return
		}
		changes["password_hash"] = hash
	}
	user, err := store.UpdateUser(a.db, id, changes)
	if err != nil {
		storeError(c, err, "user")
		return
	}
	c.JSON(200, gin.H{"user": user})
}

func (a *app) deleteUser(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := store.DeleteUser(a.db, id); err != nil {
		storeError(c, err, "user")
		return
	}
	c.JSON(200, gin.H{"message": "user deleted"})
}
