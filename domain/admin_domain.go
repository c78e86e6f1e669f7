package domain

import "lucky-tours-api/entities"

var (
	MessageSuccessGetStats = "dashboard stats retrieved successfully"
	MessageFailedGetStats  = "failed to retrieve dashboard stats"
)

type (
	CurrentPackageSummary struct {
		Name              string  `json:"name"`
		Month             string  `json:"month"`
		Year              int     `json:"year"`
		TotalParticipants int     `json:"total_participants"`
		TotalRevenue      float64 `json:"total_revenue"`
	}

	DashboardStats struct {
		TotalPackages        int64                  `json:"total_packages"`
		TotalUsers           int64                  `json:"total_users"`
		TotalAmountCollected float64                `json:"total_amount_collected"`
		CurrentPackage       *CurrentPackageSummary `json:"current_package"`
	}

	AdminDashboard struct {
		Stats          DashboardStats      `json:"stats"`
		RecentPayments []*entities.Payment `json:"recent_payments"`
		RecentPackages []*entities.Package `json:"recent_packages"`
		RecentWinners  []*entities.Package `json:"recent_winners"`
	}

	UserDetail struct {
		User     *entities.User      `json:"user"`
		Payments []*entities.Payment `json:"payments"`
	}

	UserDashboard struct {
		MonthsPaid      int                 `json:"months_paid"`
		TotalAmountPaid float64             `json:"total_amount_paid"`
		CurrentPackage  *entities.Package   `json:"current_package"`
		NextDrawDate    string              `json:"next_draw_date"`
		Payments        []*entities.Payment `json:"payments"`
	}
)
