package rbac

type CreateRoleRequest struct {
	Name string `json:"name" binding:"required"`
}

type UserRoleRequest struct {
	Email string `json:"email" binding:"required,email"`
	Role  string `json:"role" binding:"required"`
}

type AddClaimRequest struct {
	Email string `json:"email" binding:"required,email"`
	Name  string `json:"name" binding:"required"`
	Value string `json:"value" binding:"required"`
}

type RevokeTokenRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}
