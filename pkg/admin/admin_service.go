package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/pkg/packages"
	"lucky-tours-api/pkg/payment"
	"lucky-tours-api/pkg/user"
)

type (
	AdminService interface {
		GetDashboard(ctx context.Context) (*domain.AdminDashboard, error)
		GetUserDetail(ctx context.Context, id string) (*domain.UserDetail, error)
	}

	adminService struct {
		userRepository    user.UserRepository
		packageRepository packages.PackageRepository
		paymentRepository payment.PaymentRepository
	}
)

func NewAdminService(
	userRepository user.UserRepository,
	packageRepository packages.PackageRepository,
	paymentRepository payment.PaymentRepository,
) AdminService {
	return &adminService{
		userRepository:    userRepository,
		packageRepository: packageRepository,
		paymentRepository: paymentRepository,
	}
}

// GetDashboard aggregates the admin overview. The collected total comes
// straight from the payment ledger rather than the per-user counters.
func (s *adminService) GetDashboard(ctx context.Context) (*domain.AdminDashboard, error) {
	totalPackages, err := s.packageRepository.CountPackages(ctx)
	if err != nil {
		return nil, err
	}

	totalUsers, err := s.userRepository.CountByRole(ctx, entities.RoleUser)
	if err != nil {
		return nil, err
	}

	totalCollected, err := s.paymentRepository.SumCompletedAmount(ctx)
	if err != nil {
		return nil, err
	}

	var currentSummary *domain.CurrentPackageSummary
	current, err := s.packageRepository.GetCurrentPackage(ctx)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if current != nil {
		currentSummary = &domain.CurrentPackageSummary{
			Name:              current.Name,
			Month:             current.Month,
			Year:              current.Year,
			TotalParticipants: current.TotalParticipants,
			TotalRevenue:      current.TotalRevenue,
		}
	}

	recentPayments, err := s.paymentRepository.GetRecentPayments(ctx, 10)
	if err != nil {
		return nil, err
	}

	recentPackages, err := s.packageRepository.GetRecentCompleted(ctx, 5)
	if err != nil {
		return nil, err
	}

	recentWinners, err := s.packageRepository.GetRecentWinners(ctx, 5)
	if err != nil {
		return nil, err
	}

	return &domain.AdminDashboard{
		Stats: domain.DashboardStats{
			TotalPackages:        totalPackages,
			TotalUsers:           totalUsers,
			TotalAmountCollected: totalCollected,
			CurrentPackage:       currentSummary,
		},
		RecentPayments: recentPayments,
		RecentPackages: recentPackages,
		RecentWinners:  recentWinners,
	}, nil
}

func (s *adminService) GetUserDetail(ctx context.Context, id string) (*domain.UserDetail, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	detail, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	payments, err := s.paymentRepository.GetPaymentsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &domain.UserDetail{
		User:     detail,
		Payments: payments,
	}, nil
}
