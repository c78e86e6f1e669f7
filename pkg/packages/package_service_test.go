package packages

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/pkg/user"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}, &entities.Package{}))
	return db
}

func newTestService(t *testing.T) (PackageService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewPackageService(NewPackageRepository(db), user.NewUserRepository(db), nil), db
}

func createPackage(t *testing.T, svc PackageService, name, month string) *entities.Package {
	t.Helper()
	pkg, err := svc.CreatePackage(context.Background(), domain.CreatePackageRequest{
		Name:               name,
		Destination:        []string{"Goa"},
		Couples:            50,
		Duration:           "4 days",
		Description:        "Beachside stay",
		DrawDate:           time.Date(2026, 9, 28, 0, 0, 0, 0, time.UTC),
		Month:              month,
		Year:               2026,
		MonthlyInstallment: 2000,
	})
	require.NoError(t, err)
	return pkg
}

func TestCreatePackageAllocatesSequentialIDs(t *testing.T) {
	svc, _ := newTestService(t)

	first := createPackage(t, svc, "Goa Getaway", "September")
	require.Equal(t, "PKG001", first.PackageID)
	require.Equal(t, entities.PackageStatusUpcoming, first.Status)

	second := createPackage(t, svc, "Kerala Cruise", "October")
	require.Equal(t, "PKG002", second.PackageID)
}

func TestSetCurrentKeepsSinglePackageCurrent(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	first := createPackage(t, svc, "Goa Getaway", "September")
	second := createPackage(t, svc, "Kerala Cruise", "October")

	promoted, err := svc.SetCurrent(ctx, first.ID.String())
	require.NoError(t, err)
	require.Equal(t, entities.PackageStatusCurrent, promoted.Status)

	promoted, err = svc.SetCurrent(ctx, second.ID.String())
	require.NoError(t, err)
	require.Equal(t, entities.PackageStatusCurrent, promoted.Status)

	var currentCount int64
	require.NoError(t, db.Model(&entities.Package{}).
		Where("status = ?", entities.PackageStatusCurrent).
		Count(&currentCount).Error)
	require.Equal(t, int64(1), currentCount)

	var demoted entities.Package
	require.NoError(t, db.First(&demoted, "id = ?", first.ID).Error)
	require.Equal(t, entities.PackageStatusUpcoming, demoted.Status)
}

func TestSetCurrentRejectsClosedDraw(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	pkg := createPackage(t, svc, "Goa Getaway", "September")
	require.NoError(t, db.Model(&entities.Package{}).
		Where("id = ?", pkg.ID).
		Update("status", entities.PackageStatusDrawCompleted).Error)

	_, err := svc.SetCurrent(ctx, pkg.ID.String())
	require.ErrorIs(t, err, domain.ErrDrawAlreadyClosed)

	_, err = svc.SetCurrent(ctx, uuid.NewString())
	require.ErrorIs(t, err, domain.ErrPackageNotFound)
}

func TestUpdateCurrentWithoutCurrentPackage(t *testing.T) {
	svc, _ := newTestService(t)

	createPackage(t, svc, "Goa Getaway", "September")

	_, err := svc.UpdateCurrent(context.Background(), domain.UpdateCurrentPackageRequest{
		LiveVideoURL: "https://video.example.com/draw",
	})
	require.ErrorIs(t, err, domain.ErrNoCurrentPackage)
}

func TestUpdateCurrentSnapshotsWinnerAndClosesDraw(t *testing.T) {
	svc, db := newTestService(t)
	ctx := context.Background()

	pkg := createPackage(t, svc, "Goa Getaway", "September")
	_, err := svc.SetCurrent(ctx, pkg.ID.String())
	require.NoError(t, err)

	winner := &entities.User{
		ID:                uuid.New(),
		Name:              "Asha Nair",
		Email:             "asha@example.com",
		Phone:             "+911234567890",
		Password:          "x",
		VirtualCardNumber: "HLT-2026-000001",
		City:              "Kochi",
		Role:              entities.RoleUser,
		IsActive:          true,
	}
	require.NoError(t, db.Create(winner).Error)

	closed, err := svc.UpdateCurrent(ctx, domain.UpdateCurrentPackageRequest{
		WinnerID:    winner.ID.String(),
		ChosenPrize: "trip",
	})
	require.NoError(t, err)
	require.Equal(t, entities.PackageStatusDrawCompleted, closed.Status)
	require.NotNil(t, closed.Winner)
	require.Equal(t, "Asha Nair", closed.Winner.Name)
	require.Equal(t, "HLT-2026-000001", closed.Winner.VirtualCardNumber)

	// Later profile edits must not rewrite the recorded winner.
	winner.Name = "A. Nair"
	winner.City = "Bengaluru"
	require.NoError(t, db.Save(winner).Error)

	var stored entities.Package
	require.NoError(t, db.First(&stored, "id = ?", pkg.ID).Error)
	require.Equal(t, "Asha Nair", stored.Winner.Name)
	require.Equal(t, "Kochi", stored.Winner.City)

	// The draw stays closed; there is no current package afterwards.
	current, err := svc.GetCurrentPackage(ctx)
	require.NoError(t, err)
	require.Nil(t, current)
}

func TestUpdateCurrentUnknownWinner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pkg := createPackage(t, svc, "Goa Getaway", "September")
	_, err := svc.SetCurrent(ctx, pkg.ID.String())
	require.NoError(t, err)

	_, err = svc.UpdateCurrent(ctx, domain.UpdateCurrentPackageRequest{WinnerID: uuid.NewString()})
	require.ErrorIs(t, err, domain.ErrWinnerNotFound)
}

func TestGetLiveVideos(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pkg := createPackage(t, svc, "Goa Getaway", "September")
	createPackage(t, svc, "Kerala Cruise", "October")

	_, err := svc.SetCurrent(ctx, pkg.ID.String())
	require.NoError(t, err)
	_, err = svc.UpdateCurrent(ctx, domain.UpdateCurrentPackageRequest{
		LiveVideoURL: "https://video.example.com/draw",
	})
	require.NoError(t, err)

	videos, err := svc.GetLiveVideos(ctx)
	require.NoError(t, err)
	require.Len(t, videos, 1)
	require.Equal(t, "Goa Getaway", videos[0].Title)
	require.Equal(t, "https://video.example.com/draw", videos[0].VideoURL)
}

func TestUpdatePackageHasNoLifecycleSideEffects(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	pkg := createPackage(t, svc, "Goa Getaway", "September")
	_, err := svc.SetCurrent(ctx, pkg.ID.String())
	require.NoError(t, err)

	installment := 2500.0
	updated, err := svc.UpdatePackage(ctx, pkg.ID.String(), domain.UpdatePackageRequest{
		Name:               "Goa Getaway Deluxe",
		MonthlyInstallment: &installment,
	})
	require.NoError(t, err)
	require.Equal(t, "Goa Getaway Deluxe", updated.Name)
	require.Equal(t, 2500.0, updated.MonthlyInstallment)
	require.Equal(t, entities.PackageStatusCurrent, updated.Status)
}
