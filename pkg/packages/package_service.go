package packages

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"path/filepath"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/internal/utils/storage"
	"lucky-tours-api/pkg/user"
)

type (
	PackageService interface {
		CreatePackage(ctx context.Context, req domain.CreatePackageRequest) (*entities.Package, error)
		GetPackages(ctx context.Context) ([]*entities.Package, error)
		GetPackage(ctx context.Context, id string) (*entities.Package, error)
		GetCurrentPackage(ctx context.Context) (*entities.Package, error)
		UpdatePackage(ctx context.Context, id string, req domain.UpdatePackageRequest) (*entities.Package, error)
		DeletePackage(ctx context.Context, id string) error
		SetCurrent(ctx context.Context, id string) (*entities.Package, error)
		UpdateCurrent(ctx context.Context, req domain.UpdateCurrentPackageRequest) (*entities.Package, error)
		UploadPackageImage(ctx context.Context, id string, file *multipart.FileHeader) (*entities.Package, error)
		GetLiveVideos(ctx context.Context) ([]domain.LiveVideo, error)
	}

	packageService struct {
		packageRepository PackageRepository
		userRepository    user.UserRepository
		s3                *storage.AwsS3
	}
)

func NewPackageService(packageRepository PackageRepository, userRepository user.UserRepository, s3 *storage.AwsS3) PackageService {
	return &packageService{
		packageRepository: packageRepository,
		userRepository:    userRepository,
		s3:                s3,
	}
}

func (s *packageService) CreatePackage(ctx context.Context, req domain.CreatePackageRequest) (*entities.Package, error) {
	businessID := req.PackageID
	if businessID == "" {
		allocated, err := s.allocateBusinessID(ctx)
		if err != nil {
			return nil, err
		}
		businessID = allocated
	}

	pkg := &entities.Package{
		ID:                 uuid.New(),
		PackageID:          businessID,
		Name:               req.Name,
		Destination:        req.Destination,
		Couples:            req.Couples,
		Duration:           req.Duration,
		Images:             req.Images,
		Description:        req.Description,
		Inclusions:         req.Inclusions,
		DrawDate:           req.DrawDate,
		Month:              req.Month,
		Year:               req.Year,
		MonthlyInstallment: req.MonthlyInstallment,
		Status:             entities.PackageStatusUpcoming,
		PrizeDescription:   req.PrizeDescription,
	}

	if err := s.packageRepository.CreatePackage(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) GetPackages(ctx context.Context) ([]*entities.Package, error) {
	return s.packageRepository.GetPackages(ctx)
}

func (s *packageService) GetPackage(ctx context.Context, id string) (*entities.Package, error) {
	return s.getByStringID(ctx, id)
}

// GetCurrentPackage returns nil without error when no draw cycle is active;
// the public endpoint renders that as a null payload.
func (s *packageService) GetCurrentPackage(ctx context.Context) (*entities.Package, error) {
	pkg, err := s.packageRepository.GetCurrentPackage(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) UpdatePackage(ctx context.Context, id string, req domain.UpdatePackageRequest) (*entities.Package, error) {
	pkg, err := s.getByStringID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		pkg.Name = req.Name
	}
	if req.Destination != nil {
		pkg.Destination = req.Destination
	}
	if req.Couples != nil {
		pkg.Couples = *req.Couples
	}
	if req.Duration != "" {
		pkg.Duration = req.Duration
	}
	if req.Images != nil {
		pkg.Images = req.Images
	}
	if req.Description != "" {
		pkg.Description = req.Description
	}
	if req.Inclusions != nil {
		pkg.Inclusions = req.Inclusions
	}
	if req.DrawDate != nil {
		pkg.DrawDate = *req.DrawDate
	}
	if req.Month != "" {
		pkg.Month = req.Month
	}
	if req.Year != nil {
		pkg.Year = *req.Year
	}
	if req.MonthlyInstallment != nil {
		pkg.MonthlyInstallment = *req.MonthlyInstallment
	}
	if req.PrizeDescription != nil {
		pkg.PrizeDescription = *req.PrizeDescription
	}

	if err := s.packageRepository.UpdatePackage(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) DeletePackage(ctx context.Context, id string) error {
	pkgID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}

	deleted, err := s.packageRepository.DeletePackage(ctx, pkgID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrPackageNotFound
	}
	return nil
}

func (s *packageService) SetCurrent(ctx context.Context, id string) (*entities.Package, error) {
	pkg, err := s.getByStringID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pkg.Status == entities.PackageStatusDrawCompleted {
		return nil, domain.ErrDrawAlreadyClosed
	}

	promoted, err := s.packageRepository.SetCurrent(ctx, pkg.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, err
	}
	return promoted, nil
}

// UpdateCurrent touches only the active draw cycle. Supplying a winner id
// snapshots the winner and closes the draw; the transition is one-way.
func (s *packageService) UpdateCurrent(ctx context.Context, req domain.UpdateCurrentPackageRequest) (*entities.Package, error) {
	pkg, err := s.packageRepository.GetCurrentPackage(ctx)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNoCurrentPackage
		}
		return nil, err
	}

	if req.LiveVideoURL != "" {
		pkg.LiveVideoURL = req.LiveVideoURL
	}

	if req.WinnerID != "" {
		winnerID, err := uuid.Parse(req.WinnerID)
		if err != nil {
			return nil, domain.ErrParseUUID
		}

		winner, err := s.userRepository.GetUserByID(ctx, winnerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, domain.ErrWinnerNotFound
			}
			return nil, err
		}

		pkg.Winner = &entities.Winner{
			Name:              winner.Name,
			VirtualCardNumber: winner.VirtualCardNumber,
			City:              winner.City,
			Phone:             winner.Phone,
			FeedbackMessage:   req.FeedbackMessage,
			FeedbackVideo:     req.FeedbackVideo,
			ChosenPrize:       req.ChosenPrize,
			UserID:            &winner.ID,
		}
		pkg.Status = entities.PackageStatusDrawCompleted
	}

	if err := s.packageRepository.CompleteDraw(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) UploadPackageImage(ctx context.Context, id string, file *multipart.FileHeader) (*entities.Package, error) {
	pkg, err := s.getByStringID(ctx, id)
	if err != nil {
		return nil, err
	}

	src, err := file.Open()
	if err != nil {
		return nil, err
	}
	defer src.Close()

	key := fmt.Sprintf("packages/%s/%s%s", pkg.PackageID, uuid.NewString(), filepath.Ext(file.Filename))
	url, err := s.s3.UploadFile(ctx, key, file.Header.Get("Content-Type"), src)
	if err != nil {
		return nil, err
	}

	pkg.Images = append(pkg.Images, url)
	if err := s.packageRepository.UpdatePackage(ctx, pkg); err != nil {
		return nil, err
	}
	return pkg, nil
}

func (s *packageService) GetLiveVideos(ctx context.Context) ([]domain.LiveVideo, error) {
	pkgs, err := s.packageRepository.GetLiveVideoPackages(ctx)
	if err != nil {
		return nil, err
	}

	videos := make([]domain.LiveVideo, 0, len(pkgs))
	for _, pkg := range pkgs {
		videos = append(videos, domain.LiveVideo{
			ID:       pkg.ID.String(),
			Title:    pkg.Name,
			VideoURL: pkg.LiveVideoURL,
			Month:    pkg.Month,
			Year:     pkg.Year,
		})
	}
	return videos, nil
}

func (s *packageService) getByStringID(ctx context.Context, id string) (*entities.Package, error) {
	pkgID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	pkg, err := s.packageRepository.GetPackageByID(ctx, pkgID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPackageNotFound
		}
		return nil, err
	}
	return pkg, nil
}

// allocateBusinessID hands out the next PKG<NNN> identifier, probing past
// collisions instead of trusting the raw document count.
func (s *packageService) allocateBusinessID(ctx context.Context) (string, error) {
	count, err := s.packageRepository.CountPackages(ctx)
	if err != nil {
		return "", err
	}

	next := int(count) + 1
	for {
		candidate := fmt.Sprintf("PKG%03d", next)
		exists, err := s.packageRepository.BusinessIDExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
		next++
	}
}
