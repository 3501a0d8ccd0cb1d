package api

import (
	"errors"
	"fmt"
	"net/http"

	"fittrack/fitness-tracker/internal/service"

	"github.com/gin-gonic/gin"
)

// ProfileHandler holds the profile service dependency.
type ProfileHandler struct {
	profileService service.ProfileService
}

// NewProfileHandler creates a new ProfileHandler.
func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// --- DTOs ---

// UpdateProfileRequest edits the mutable profile fields. Email is
// immutable and absent on purpose.
type UpdateProfileRequest struct {
	Username string  `json:"username" binding:"required"`
	Bio      string  `json:"bio"`
	Password *string `json:"password" binding:"omitempty,min=8"`
}

// PictureUploadRequest asks for a presigned upload slot.
type PictureUploadRequest struct {
	ContentType string `json:"content_type" binding:"required"`
}

// ProfileResponse is the user's own account view.
type ProfileResponse struct {
	UserResponse
	ProfilePictureURL string `json:"profile_picture_url,omitempty"`
}

// PictureUploadResponse returns the presigned PUT URL for the client to
// upload against.
type PictureUploadResponse struct {
	UploadURL string `json:"upload_url"`
}

func mapProfileToResponse(p *service.Profile) ProfileResponse {
	return ProfileResponse{
		UserResponse:      MapUserToResponse(&p.User),
		ProfilePictureURL: p.ProfilePictureURL,
	}
}

// --- Handler Methods ---

// GetProfile returns the authenticated user's profile.
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	profile, err := h.profileService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapProfileToResponse(profile))
}

// UpdateProfile edits username, bio and optionally the password.
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	profile, err := h.profileService.UpdateProfile(c.Request.Context(), userID, req.Username, req.Bio, req.Password)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, mapProfileToResponse(profile))
}

// RequestPictureUpload hands out a presigned PUT URL for the profile
// picture.
func (h *ProfileHandler) RequestPictureUpload(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	var req PictureUploadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, fmt.Sprintf("Validation error: %v", err))
		return
	}

	uploadURL, err := h.profileService.RequestPictureUpload(c.Request.Context(), userID, req.ContentType)
	if err != nil {
		respondProfileError(c, err)
		return
	}

	c.JSON(http.StatusOK, PictureUploadResponse{UploadURL: uploadURL})
}

// DeleteAccount removes the account and everything it owns.
func (h *ProfileHandler) DeleteAccount(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.profileService.DeleteAccount(c.Request.Context(), userID); err != nil {
		respondProfileError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func respondProfileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUsernameTaken):
		abortWithError(c, http.StatusConflict, err.Error())
	default:
		abortWithError(c, http.StatusInternalServerError, "Failed to process profile request.")
	}
}
