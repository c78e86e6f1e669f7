package user

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/internal/utils/spreadsheet"
	"lucky-tours-api/pkg/jwt"
)

const cardNumberAttempts = 10

type (
	UserService interface {
		Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error)
		Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error)
		Me(ctx context.Context, userID string) (*domain.UserResponse, error)
		UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (*domain.UserResponse, error)
		ChangePassword(ctx context.Context, req domain.ChangePasswordRequest, userID string) error
		CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error)
		GetUsers(ctx context.Context, search string, page, limit int) ([]*entities.User, int64, error)
		UpdateUser(ctx context.Context, id string, req domain.UpdateUserRequest) (*entities.User, error)
		DeleteUser(ctx context.Context, id string) error
		ImportUsers(ctx context.Context, file io.Reader) (*domain.ImportResult, error)
		ExportUsers(ctx context.Context) ([]byte, error)
	}

	userService struct {
		userRepository UserRepository
		jwtService     jwt.JWTService
	}
)

func NewUserService(userRepository UserRepository, jwtService jwt.JWTService) UserService {
	return &userService{
		userRepository: userRepository,
		jwtService:     jwtService,
	}
}

func (s *userService) Register(ctx context.Context, req domain.RegisterRequest) (*domain.AuthResponse, error) {
	if _, err := s.userRepository.GetUserByEmailOrPhone(ctx, req.Email, req.Phone); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cardNumber, err := s.generateVirtualCardNumber(ctx)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:                uuid.New(),
		Name:              req.Name,
		Email:             strings.ToLower(req.Email),
		Phone:             req.Phone,
		Password:          string(hashedPassword),
		VirtualCardNumber: cardNumber,
		City:              req.City,
		Address:           req.Address,
		DateOfBirth:       req.DateOfBirth,
		Role:              entities.RoleUser,
		IsActive:          true,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) Login(ctx context.Context, req domain.LoginRequest) (*domain.AuthResponse, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, strings.ToLower(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, domain.ErrAccountDeactivated
	}

	token := s.jwtService.GenerateTokenUser(user.ID.String(), user.Role)
	return &domain.AuthResponse{
		Token: token,
		User:  toUserResponse(user),
	}, nil
}

func (s *userService) Me(ctx context.Context, userID string) (*domain.UserResponse, error) {
	user, err := s.getByStringID(ctx, userID)
	if err != nil {
		return nil, err
	}
	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) UpdateProfile(ctx context.Context, req domain.UpdateProfileRequest, userID string) (*domain.UserResponse, error) {
	user, err := s.getByStringID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) ChangePassword(ctx context.Context, req domain.ChangePasswordRequest, userID string) error {
	user, err := s.getByStringID(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.CurrentPassword)); err != nil {
		return domain.ErrWrongPassword
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user.Password = string(hashedPassword)
	return s.userRepository.UpdateUser(ctx, user)
}

func (s *userService) CreateUser(ctx context.Context, req domain.CreateUserRequest) (*domain.UserResponse, error) {
	if _, err := s.userRepository.GetUserByEmailOrPhone(ctx, req.Email, req.Phone); err == nil {
		return nil, domain.ErrUserAlreadyExists
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	password := req.Password
	if password == "" {
		password = defaultPassword(req.Email)
	}
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	cardNumber, err := s.generateVirtualCardNumber(ctx)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		ID:                uuid.New(),
		Name:              req.Name,
		Email:             strings.ToLower(req.Email),
		Phone:             req.Phone,
		Password:          string(hashedPassword),
		VirtualCardNumber: cardNumber,
		City:              req.City,
		Address:           req.Address,
		Branch:            req.Branch,
		DateOfBirth:       req.DateOfBirth,
		Role:              entities.RoleUser,
		IsActive:          true,
	}

	if err := s.userRepository.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	resp := toUserResponse(user)
	return &resp, nil
}

func (s *userService) GetUsers(ctx context.Context, search string, page, limit int) ([]*entities.User, int64, error) {
	return s.userRepository.GetUsers(ctx, search, page, limit)
}

func (s *userService) UpdateUser(ctx context.Context, id string, req domain.UpdateUserRequest) (*entities.User, error) {
	user, err := s.getByStringID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = strings.ToLower(req.Email)
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.City != "" {
		user.City = req.City
	}
	if req.Address != "" {
		user.Address = req.Address
	}
	if req.Branch != "" {
		user.Branch = req.Branch
	}
	if req.DateOfBirth != nil {
		user.DateOfBirth = req.DateOfBirth
	}
	if req.IsActive != nil {
		user.IsActive = *req.IsActive
	}

	if err := s.userRepository.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id string) error {
	userID, err := uuid.Parse(id)
	if err != nil {
		return domain.ErrParseUUID
	}

	deleted, err := s.userRepository.DeleteUser(ctx, userID)
	if err != nil {
		return err
	}
	if !deleted {
		return domain.ErrUserNotFound
	}
	return nil
}

// ImportUsers processes an XLSX roster with row-level isolation: a bad row
// becomes an error entry and the rest of the batch continues.
func (s *userService) ImportUsers(ctx context.Context, file io.Reader) (*domain.ImportResult, error) {
	rows, err := spreadsheet.ReadRows(file)
	if err != nil {
		return nil, err
	}

	result := &domain.ImportResult{Errors: []domain.ImportRowError{}}
	for i, row := range rows {
		rowNum := i + 1
		req := domain.CreateUserRequest{
			Name:    row["name"],
			Email:   row["email"],
			Phone:   row["phone"],
			City:    row["city"],
			Address: row["address"],
			Branch:  row["branch"],
		}
		dob := row["dateofbirth"]
		if dob == "" {
			dob = row["date of birth"]
		}
		if dob != "" {
			if parsed, err := time.Parse("2006-01-02", dob); err == nil {
				req.DateOfBirth = &parsed
			}
		}

		if req.Name == "" || req.Email == "" || req.Phone == "" {
			result.Errors = append(result.Errors, domain.ImportRowError{
				Row:   rowNum,
				Error: "name, email and phone are required",
			})
			continue
		}

		if _, err := s.CreateUser(ctx, req); err != nil {
			result.Errors = append(result.Errors, domain.ImportRowError{
				Row:   rowNum,
				Error: err.Error(),
			})
			continue
		}
		result.Imported++
	}

	return result, nil
}

func (s *userService) ExportUsers(ctx context.Context) ([]byte, error) {
	users, err := s.userRepository.GetAllUsers(ctx)
	if err != nil {
		return nil, err
	}

	headers := []string{
		"Name", "Email", "Phone", "City", "Address", "Branch",
		"Virtual Card Number", "Date of Birth", "Role", "Is Active",
		"Total Amount Paid", "Months Paid", "Created At",
	}

	rows := make([][]interface{}, 0, len(users))
	for _, u := range users {
		dob := ""
		if u.DateOfBirth != nil {
			dob = u.DateOfBirth.Format("2006-01-02")
		}
		rows = append(rows, []interface{}{
			u.Name, u.Email, u.Phone, u.City, u.Address, u.Branch,
			u.VirtualCardNumber, dob, u.Role, u.IsActive,
			u.TotalAmountPaid, u.MonthsPaid, u.CreatedAt.Format("2006-01-02"),
		})
	}

	return spreadsheet.WriteRows("Users", headers, rows)
}

func (s *userService) getByStringID(ctx context.Context, id string) (*entities.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, domain.ErrParseUUID
	}

	user, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// generateVirtualCardNumber allocates an HLT-<year>-<6 digits> identifier,
// probing for collisions instead of trusting the random suffix.
func (s *userService) generateVirtualCardNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	for i := 0; i < cardNumberAttempts; i++ {
		cardNumber := fmt.Sprintf("HLT-%d-%06d", year, rand.Intn(1000000))
		exists, err := s.userRepository.CardNumberExists(ctx, cardNumber)
		if err != nil {
			return "", err
		}
		if !exists {
			return cardNumber, nil
		}
	}
	return "", domain.ErrCardNumberExhausted
}

func defaultPassword(email string) string {
	localPart, _, _ := strings.Cut(email, "@")
	return localPart + "@123"
}

func toUserResponse(user *entities.User) domain.UserResponse {
	return domain.UserResponse{
		ID:                user.ID.String(),
		Name:              user.Name,
		Email:             user.Email,
		Phone:             user.Phone,
		VirtualCardNumber: user.VirtualCardNumber,
		City:              user.City,
		Address:           user.Address,
		DateOfBirth:       user.DateOfBirth,
		Role:              user.Role,
		TotalAmountPaid:   user.TotalAmountPaid,
		MonthsPaid:        user.MonthsPaid,
	}
}
