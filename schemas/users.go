package schemas

type UserCreate struct {
	Username string `json:"username" binding:"required,min=3,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin operator viewer"`
	IsActive *bool  `json:"is_active"`
}

type UserUpdate struct {
	Username *string `json:"username" binding:"omitempty,min=3,max=100"`
	Email    *string `json:"email" binding:"omitempty,email"`
	Password *string `json:"password" binding:"omitempty,min=6"`
	Role     *string `json:"role" binding:"omitempty,oneof=admin operator viewer"`
	IsActive *bool   `json:"is_active"`
}

type UserLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Changes builds the column change-set. The password, when present, is hashed
// by the caller before it reaches the store.
func (u UserUpdate) Changes(p Presence) (map[string]interface{}, error) {
	changes := map[string]interface{}{}
	if p.Has("username") {
		if u.Username == nil {
			return nil, nullErr("username")
		}
		changes["username"] = *u.Username
	}
	if p.Has("email") {
		if u.Email == nil {
			return nil, nullErr("email")
		}
		changes["email"] = *u.Email
	}
	if p.Has("role") {
		if u.Role == nil {
			return nil, nullErr("role")
		}
		changes["role"] = *u.Role
	}
	if p.Has("is_active") {
		if u.IsActive == nil {
			return nil, nullErr("is_active")
		}
		changes["is_active"] = *u.IsActive
	}
	return changes, nil
}
