package domain

import (
	"mime/multipart"
)

var (
	MessageSuccessRegister     = "user registered successfully"
	MessageSuccessLogin        = "user logged in successfully"
	MessageSuccessRefreshToken = "token refreshed successfully"
	MessageSuccessGetProfile   = "success get user profile"
	MessageSuccessUpdateUser   = "user updated successfully"
	MessageSuccessDeleteUser   = "user deleted successfully"
	MessageSuccessUploadAvatar = "avatar uploaded successfully"

	MessageFailedRegister     = "failed to register user"
	MessageFailedLogin        = "failed to login user"
	MessageFailedRefreshToken = "failed to refresh token"
	MessageFailedGetProfile   = "failed to get user profile"
	MessageFailedUpdateUser   = "failed to update user"
	MessageFailedDeleteUser   = "failed to delete user"
	MessageFailedUploadAvatar = "failed to upload avatar"

	ErrUserNotFound         = NewError(ErrNotFound, "user not found")
	ErrUsernameTaken        = NewFieldError(ErrConflict, "username", "this username is already taken")
	ErrEmailTaken           = NewFieldError(ErrConflict, "email", "this email is already in use")
	ErrInvalidCredentials   = NewError(ErrValidation, "incorrect email or password")
	ErrIncorrectOldPassword = NewFieldError(ErrValidation, "old_password", "old password is incorrect")
	ErrIncorrectPassword    = NewFieldError(ErrValidation, "password", "password is incorrect")
)

type (
	RegisterRequest struct {
		Username  string `json:"username" validate:"required,notblank,max=255"`
		Email     string `json:"email" validate:"required,email,max=255"`
		Password  string `json:"password" validate:"required,max=128"`
		ImageLink string `json:"image_link" validate:"omitempty,max=255"`
	}

	RegisterResponse struct {
		ID        string `json:"id"`
		Username  string `json:"username"`
		Email     string `json:"email"`
		ImageLink string `json:"image_link"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Access        string `json:"access"`
		Refresh       string `json:"refresh"`
		Username      string `json:"username"`
		Email         string `json:"email"`
		RegDate       string `json:"reg_date"`
		ImageLink     string `json:"image_link"`
		RecipeCount   int64  `json:"recipe_count"`
		BookmarkCount int64  `json:"bookmark_count"`
	}

	RefreshTokenRequest struct {
		Refresh string `json:"refresh" validate:"required"`
	}

	RefreshTokenResponse struct {
		Access string `json:"access"`
	}

	// UpdateUserRequest is a patch: nil fields are left untouched.
	UpdateUserRequest struct {
		OldPassword string  `json:"old_password" validate:"required"`
		Username    *string `json:"username" validate:"omitnil,notblank,max=255"`
		Email       *string `json:"email" validate:"omitnil,email,max=255"`
		NewPassword *string `json:"new_password" validate:"omitnil,min=1,max=128"`
	}

	DeleteUserRequest struct {
		Password string `json:"password" validate:"required"`
	}

	UploadAvatarRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ProfileResponse struct {
		ID            string `json:"id"`
		Username      string `json:"username"`
		Email         string `json:"email"`
		ImageLink     string `json:"image_link"`
		RegDate       string `json:"reg_date"`
		RecipeCount   int64  `json:"recipe_count"`
		BookmarkCount int64  `json:"bookmark_count"`
	}
)
