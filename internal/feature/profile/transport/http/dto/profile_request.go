// Package dto defines data transfer objects for the profile feature's HTTP transport layer.
package dto

// UpdateProfileReq represents the request body for PATCH /profile/me.
// Omitted fields are left unchanged.
type UpdateProfileReq struct {
	Username *string `json:"username" binding:"omitnil,min=1,max=255"`
	Avatar   *string `json:"avatar" binding:"omitnil,max=1024"`
}
