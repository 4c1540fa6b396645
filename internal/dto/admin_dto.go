package dto

// UpdateRoleRequest changes a user's role (admin only).
type UpdateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=student teacher admin"`
}

// SetActiveRequest suspends or reactivates an account.
type SetActiveRequest struct {
	IsActive *bool `json:"is_active" binding:"required"`
}
