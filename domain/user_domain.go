package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessRegister       = "user registered successfully"
	MessageSuccessLogin          = "login successful"
	MessageSuccessGetMe          = "user retrieved successfully"
	MessageSuccessUpdateProfile  = "profile updated successfully"
	MessageSuccessChangePassword = "password changed successfully"
	MessageSuccessGetUsers       = "users retrieved successfully"
	MessageSuccessCreateUser     = "user created successfully"
	MessageSuccessUpdateUser     = "user updated successfully"
	MessageSuccessDeleteUser     = "user deleted successfully"
	MessageSuccessGetUserDetail  = "user details retrieved successfully"
	MessageSuccessImportUsers    = "users imported"
	MessageSuccessExportUsers    = "users exported successfully"

	MessageFailedRegister       = "failed to register user"
	MessageFailedLogin          = "failed to login"
	MessageFailedGetMe          = "failed to retrieve user"
	MessageFailedUpdateProfile  = "failed to update profile"
	MessageFailedChangePassword = "failed to change password"
	MessageFailedGetUsers       = "failed to retrieve users"
	MessageFailedCreateUser     = "failed to create user"
	MessageFailedUpdateUser     = "failed to update user"
	MessageFailedDeleteUser     = "failed to delete user"
	MessageFailedImportUsers    = "failed to import users"
	MessageFailedExportUsers    = "failed to export users"

	ErrUserAlreadyExists   = errors.New("user already exists with this email or phone")
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrAccountDeactivated  = errors.New("account is deactivated")
	ErrWrongPassword       = errors.New("current password is incorrect")
	ErrCardNumberExhausted = errors.New("could not allocate a unique virtual card number")
)

type (
	RegisterRequest struct {
		Name        string     `json:"name" validate:"required"`
		Email       string     `json:"email" validate:"required,email"`
		Phone       string     `json:"phone" validate:"required"`
		Password    string     `json:"password" validate:"required,min=6"`
		City        string     `json:"city" validate:"required"`
		Address     string     `json:"address"`
		DateOfBirth *time.Time `json:"date_of_birth"`
	}

	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required"`
	}

	UpdateProfileRequest struct {
		Name        string     `json:"name"`
		Phone       string     `json:"phone"`
		City        string     `json:"city"`
		Address     string     `json:"address"`
		DateOfBirth *time.Time `json:"date_of_birth"`
	}

	ChangePasswordRequest struct {
		CurrentPassword string `json:"current_password" validate:"required"`
		NewPassword     string `json:"new_password" validate:"required,min=6"`
	}

	// Admin user management. CreateUserRequest allows an empty password;
	// the service falls back to the generated default.
	CreateUserRequest struct {
		Name        string     `json:"name" validate:"required"`
		Email       string     `json:"email" validate:"required,email"`
		Phone       string     `json:"phone" validate:"required"`
		Password    string     `json:"password"`
		City        string     `json:"city"`
		Address     string     `json:"address"`
		Branch      string     `json:"branch"`
		DateOfBirth *time.Time `json:"date_of_birth"`
	}

	UpdateUserRequest struct {
		Name        string     `json:"name"`
		Email       string     `json:"email"`
		Phone       string     `json:"phone"`
		City        string     `json:"city"`
		Address     string     `json:"address"`
		Branch      string     `json:"branch"`
		DateOfBirth *time.Time `json:"date_of_birth"`
		IsActive    *bool      `json:"is_active"`
	}

	UserResponse struct {
		ID                string     `json:"id"`
		Name              string     `json:"name"`
		Email             string     `json:"email"`
		Phone             string     `json:"phone"`
		VirtualCardNumber string     `json:"virtual_card_number"`
		City              string     `json:"city"`
		Address           string     `json:"address,omitempty"`
		DateOfBirth       *time.Time `json:"date_of_birth,omitempty"`
		Role              string     `json:"role"`
		TotalAmountPaid   float64    `json:"total_amount_paid"`
		MonthsPaid        int        `json:"months_paid"`
	}

	AuthResponse struct {
		Token string       `json:"token"`
		User  UserResponse `json:"user"`
	}

	ImportRowError struct {
		Row   int    `json:"row"`
		Error string `json:"error"`
	}

	ImportResult struct {
		Imported int              `json:"imported"`
		Errors   []ImportRowError `json:"errors"`
	}
)
