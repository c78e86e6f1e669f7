package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetPackages   = "packages retrieved successfully"
	MessageSuccessGetPackage    = "package retrieved successfully"
	MessageSuccessGetCurrent    = "current package retrieved successfully"
	MessageSuccessCreatePackage = "package created successfully"
	MessageSuccessUpdatePackage = "package updated successfully"
	MessageSuccessDeletePackage = "package deleted successfully"
	MessageSuccessSetCurrent    = "package set as current successfully"
	MessageSuccessUpdateCurrent = "current package updated successfully"
	MessageSuccessUploadImage   = "package image uploaded successfully"
	MessageSuccessGetLiveVideos = "live videos retrieved successfully"

	MessageFailedGetPackages   = "failed to retrieve packages"
	MessageFailedGetPackage    = "failed to retrieve package"
	MessageFailedCreatePackage = "failed to create package"
	MessageFailedUpdatePackage = "failed to update package"
	MessageFailedDeletePackage = "failed to delete package"
	MessageFailedSetCurrent    = "failed to set current package"
	MessageFailedUpdateCurrent = "failed to update current package"
	MessageFailedUploadImage   = "failed to upload package image"
	MessageFailedGetLiveVideos = "failed to retrieve live videos"

	ErrPackageNotFound   = errors.New("package not found")
	ErrNoCurrentPackage  = errors.New("no current package found")
	ErrWinnerNotFound    = errors.New("winner not found")
	ErrDrawAlreadyClosed = errors.New("package draw is already completed")
)

type (
	CreatePackageRequest struct {
		PackageID          string    `json:"package_id"`
		Name               string    `json:"name" validate:"required"`
		Destination        []string  `json:"destination" validate:"required,min=1"`
		Couples            int       `json:"couples" validate:"required,min=1"`
		Duration           string    `json:"duration" validate:"required"`
		Images             []string  `json:"images"`
		Description        string    `json:"description" validate:"required"`
		Inclusions         []string  `json:"inclusions"`
		DrawDate           time.Time `json:"draw_date" validate:"required"`
		Month              string    `json:"month" validate:"required"`
		Year               int       `json:"year" validate:"required"`
		MonthlyInstallment float64   `json:"monthly_installment" validate:"required,min=0"`
		PrizeDescription   string    `json:"prize_description"`
	}

	// UpdatePackageRequest deliberately has no status field: lifecycle
	// transitions only happen through SetCurrent and UpdateCurrent.
	UpdatePackageRequest struct {
		Name               string     `json:"name"`
		Destination        []string   `json:"destination"`
		Couples            *int       `json:"couples"`
		Duration           string     `json:"duration"`
		Images             []string   `json:"images"`
		Description        string     `json:"description"`
		Inclusions         []string   `json:"inclusions"`
		DrawDate           *time.Time `json:"draw_date"`
		Month              string     `json:"month"`
		Year               *int       `json:"year"`
		MonthlyInstallment *float64   `json:"monthly_installment"`
		PrizeDescription   *string    `json:"prize_description"`
	}

	UpdateCurrentPackageRequest struct {
		LiveVideoURL    string `json:"live_video_url"`
		WinnerID        string `json:"winner_id"`
		FeedbackMessage string `json:"feedback_message"`
		FeedbackVideo   string `json:"feedback_video"`
		ChosenPrize     string `json:"chosen_prize"`
	}

	LiveVideo struct {
		ID       string `json:"id"`
		Title    string `json:"title"`
		VideoURL string `json:"video_url"`
		Month    string `json:"month"`
		Year     int    `json:"year"`
	}
)
