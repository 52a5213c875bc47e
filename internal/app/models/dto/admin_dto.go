package dto

// UserFilterRequest carries admin user list filters
type UserFilterRequest struct {
	RoleType *string `form:"roleType" binding:"omitempty,oneof=ADMIN STUDENT TUTOR"`
	Page     int     `form:"page,default=1"`
	PageSize int     `form:"pageSize,default=10"`
}

// UserListResponse is a paginated list of users
type UserListResponse struct {
	Users          []UserResponse `json:"users"`
	PaginationInfo PaginationInfo `json:"pagination"`
}

// SetApprovalRequest toggles a tutor's approval flag
type SetApprovalRequest struct {
	Approved bool `json:"approved"`
}

// SetActiveRequest toggles a user's active flag
type SetActiveRequest struct {
	Active bool `json:"active"`
}
