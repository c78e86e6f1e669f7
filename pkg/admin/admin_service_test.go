package admin

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/pkg/packages"
	"lucky-tours-api/pkg/payment"
	"lucky-tours-api/pkg/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entities.User{}, &entities.Package{}, &entities.Payment{},
	))
	return db
}

func newTestService(t *testing.T) (AdminService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewAdminService(
		user.NewUserRepository(db),
		packages.NewPackageRepository(db),
		payment.NewPaymentRepository(db),
	)
	return svc, db
}

func seedUser(t *testing.T, db *gorm.DB, role, email, phone string) *entities.User {
	t.Helper()
	u := &entities.User{
		ID:                uuid.New(),
		Name:              "Seed " + email,
		Email:             email,
		Phone:             phone,
		Password:          "x",
		VirtualCardNumber: "HLT-2026-" + phone[len(phone)-6:],
		Role:              role,
		IsActive:          true,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}

func seedPayment(t *testing.T, db *gorm.DB, userID, packageID uuid.UUID, amount float64, status string) {
	t.Helper()
	require.NoError(t, db.Create(&entities.Payment{
		ID:            uuid.New(),
		UserID:        userID,
		PackageID:     packageID,
		Amount:        amount,
		PaymentMode:   "UPI",
		Month:         "January",
		Year:          2026,
		Status:        status,
		TransactionID: "TXN" + uuid.NewString()[:12],
	}).Error)
}

func TestGetDashboardAggregatesFromLedger(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	seedUser(t, db, entities.RoleAdmin, "admin@example.com", "+910000000000")
	participant := seedUser(t, db, entities.RoleUser, "asha@example.com", "+911111111111")
	seedUser(t, db, entities.RoleUser, "ravi@example.com", "+912222222222")

	current := &entities.Package{
		ID:                 uuid.New(),
		PackageID:          "PKG001",
		Name:               "Goa Getaway",
		Month:              "January",
		Year:               2026,
		MonthlyInstallment: 2000,
		Status:             entities.PackageStatusCurrent,
		TotalParticipants:  2,
		TotalRevenue:       4000,
	}
	require.NoError(t, db.Create(current).Error)

	seedPayment(t, db, participant.ID, current.ID, 2000, entities.PaymentStatusCompleted)
	seedPayment(t, db, participant.ID, current.ID, 2000, entities.PaymentStatusCompleted)
	// Only completed payments count toward the collected total.
	seedPayment(t, db, participant.ID, current.ID, 999, entities.PaymentStatusFailed)

	dash, err := svc.GetDashboard(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(1), dash.Stats.TotalPackages)
	require.Equal(t, int64(2), dash.Stats.TotalUsers) // admins are not participants
	require.Equal(t, 4000.0, dash.Stats.TotalAmountCollected)
	require.NotNil(t, dash.Stats.CurrentPackage)
	require.Equal(t, "Goa Getaway", dash.Stats.CurrentPackage.Name)
	require.Len(t, dash.RecentPayments, 3)
}

func TestGetDashboardWithoutCurrentPackage(t *testing.T) {
	svc, _ := newTestService(t)

	dash, err := svc.GetDashboard(context.Background())
	require.NoError(t, err)
	require.Nil(t, dash.Stats.CurrentPackage)
	require.Equal(t, 0.0, dash.Stats.TotalAmountCollected)
}

func TestGetUserDetail(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	participant := seedUser(t, db, entities.RoleUser, "asha@example.com", "+911111111111")
	pkg := &entities.Package{
		ID:        uuid.New(),
		PackageID: "PKG001",
		Name:      "Goa Getaway",
		Month:     "January",
		Year:      2026,
		Status:    entities.PackageStatusCurrent,
	}
	require.NoError(t, db.Create(pkg).Error)
	seedPayment(t, db, participant.ID, pkg.ID, 2000, entities.PaymentStatusCompleted)

	detail, err := svc.GetUserDetail(ctx, participant.ID.String())
	require.NoError(t, err)
	require.Equal(t, participant.ID, detail.User.ID)
	require.Len(t, detail.Payments, 1)

	_, err = svc.GetUserDetail(ctx, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = svc.GetUserDetail(ctx, "bogus")
	require.ErrorIs(t, err, domain.ErrParseUUID)
}
