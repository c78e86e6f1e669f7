package packages

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lucky-tours-api/entities"
)

type (
	PackageRepository interface {
		CreatePackage(ctx context.Context, pkg *entities.Package) error
		GetPackages(ctx context.Context) ([]*entities.Package, error)
		GetPackageByID(ctx context.Context, id uuid.UUID) (*entities.Package, error)
		GetCurrentPackage(ctx context.Context) (*entities.Package, error)
		UpdatePackage(ctx context.Context, pkg *entities.Package) error
		DeletePackage(ctx context.Context, id uuid.UUID) (bool, error)
		SetCurrent(ctx context.Context, id uuid.UUID) (*entities.Package, error)
		CompleteDraw(ctx context.Context, pkg *entities.Package) error
		CountPackages(ctx context.Context) (int64, error)
		BusinessIDExists(ctx context.Context, packageID string) (bool, error)
		GetRecentCompleted(ctx context.Context, limit int) ([]*entities.Package, error)
		GetRecentWinners(ctx context.Context, limit int) ([]*entities.Package, error)
		GetLiveVideoPackages(ctx context.Context) ([]*entities.Package, error)
	}

	packageRepository struct {
		db *gorm.DB
	}
)

func NewPackageRepository(db *gorm.DB) PackageRepository {
	return &packageRepository{
		db: db,
	}
}

func (r *packageRepository) CreatePackage(ctx context.Context, pkg *entities.Package) error {
	return r.db.WithContext(ctx).Create(pkg).Error
}

func (r *packageRepository) GetPackages(ctx context.Context) ([]*entities.Package, error) {
	var pkgs []*entities.Package
	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *packageRepository) GetPackageByID(ctx context.Context, id uuid.UUID) (*entities.Package, error) {
	var pkg entities.Package
	if err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) GetCurrentPackage(ctx context.Context) (*entities.Package, error) {
	var pkg entities.Package
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.PackageStatusCurrent).
		First(&pkg).Error; err != nil {
		return nil, err
	}
	return &pkg, nil
}

func (r *packageRepository) UpdatePackage(ctx context.Context, pkg *entities.Package) error {
	return r.db.WithContext(ctx).Save(pkg).Error
}

func (r *packageRepository) DeletePackage(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&entities.Package{}, "id = ?", id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// SetCurrent promotes one package and demotes whichever package held the
// slot, inside a single transaction, so at most one package is ever current.
func (r *packageRepository) SetCurrent(ctx context.Context, id uuid.UUID) (*entities.Package, error) {
	var pkg entities.Package
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&pkg).Error; err != nil {
			return err
		}

		if err := tx.Model(&entities.Package{}).
			Where("status = ? AND id <> ?", entities.PackageStatusCurrent, id).
			Update("status", entities.PackageStatusUpcoming).Error; err != nil {
			return err
		}

		pkg.Status = entities.PackageStatusCurrent
		return tx.Save(&pkg).Error
	})
	if err != nil {
		return nil, err
	}
	return &pkg, nil
}

// CompleteDraw persists a winner snapshot and the terminal status flip
// atomically.
func (r *packageRepository) CompleteDraw(ctx context.Context, pkg *entities.Package) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(pkg).Error
	})
}

func (r *packageRepository) CountPackages(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Package{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *packageRepository) BusinessIDExists(ctx context.Context, packageID string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&entities.Package{}).
		Where("package_id = ?", packageID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *packageRepository) GetRecentCompleted(ctx context.Context, limit int) ([]*entities.Package, error) {
	var pkgs []*entities.Package
	if err := r.db.WithContext(ctx).
		Where("status = ?", entities.PackageStatusDrawCompleted).
		Order("created_at DESC").
		Limit(limit).
		Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *packageRepository) GetRecentWinners(ctx context.Context, limit int) ([]*entities.Package, error) {
	var pkgs []*entities.Package
	if err := r.db.WithContext(ctx).
		Where("status = ? AND winner_name IS NOT NULL AND winner_name <> ''", entities.PackageStatusDrawCompleted).
		Order("created_at DESC").
		Limit(limit).
		Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}

func (r *packageRepository) GetLiveVideoPackages(ctx context.Context) ([]*entities.Package, error) {
	var pkgs []*entities.Package
	if err := r.db.WithContext(ctx).
		Where("live_video_url IS NOT NULL AND live_video_url <> ''").
		Order("created_at DESC").
		Find(&pkgs).Error; err != nil {
		return nil, err
	}
	return pkgs, nil
}
