package user

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lucky-tours-api/domain"
	"lucky-tours-api/entities"
	"lucky-tours-api/internal/utils/spreadsheet"
	"lucky-tours-api/pkg/jwt"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entities.User{}))
	return db
}

func newTestService(t *testing.T) (UserService, UserRepository) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")
	repo := NewUserRepository(newTestDB(t))
	return NewUserService(repo, jwt.NewJWTService()), repo
}

var cardNumberPattern = regexp.MustCompile(`^HLT-\d{4}-\d{6}$`)

func TestRegisterAssignsCardNumberAndToken(t *testing.T) {
	svc, _ := newTestService(t)

	res, err := svc.Register(context.Background(), domain.RegisterRequest{
		Name:     "Asha Nair",
		Email:    "Asha@Example.com",
		Phone:    "+911234567890",
		Password: "secret123",
		City:     "Kochi",
	})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)
	require.Equal(t, "asha@example.com", res.User.Email)
	require.Equal(t, entities.RoleUser, res.User.Role)
	require.Regexp(t, cardNumberPattern, res.User.VirtualCardNumber)
}

func TestRegisterRejectsDuplicateEmailOrPhone(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "First", Email: "dup@example.com", Phone: "+911111111111",
		Password: "secret123", City: "Pune",
	})
	require.NoError(t, err)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Name: "Second", Email: "dup@example.com", Phone: "+912222222222",
		Password: "secret123", City: "Pune",
	})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = svc.Register(ctx, domain.RegisterRequest{
		Name: "Third", Email: "other@example.com", Phone: "+911111111111",
		Password: "secret123", City: "Pune",
	})
	require.ErrorIs(t, err, domain.ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Ravi", Email: "ravi@example.com", Phone: "+913333333333",
		Password: "secret123", City: "Chennai",
	})
	require.NoError(t, err)

	res, err := svc.Login(ctx, domain.LoginRequest{Email: "ravi@example.com", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, res.Token)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "ravi@example.com", Password: "wrong"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	require.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginDeactivatedAccount(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Meena", Email: "meena@example.com", Phone: "+914444444444",
		Password: "secret123", City: "Delhi",
	})
	require.NoError(t, err)

	id, err := uuid.Parse(res.User.ID)
	require.NoError(t, err)
	account, err := repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	account.IsActive = false
	require.NoError(t, repo.UpdateUser(ctx, account))

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "meena@example.com", Password: "secret123"})
	require.ErrorIs(t, err, domain.ErrAccountDeactivated)
}

func TestCreateUserDefaultPassword(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	res, err := svc.CreateUser(ctx, domain.CreateUserRequest{
		Name: "Kiran", Email: "kiran.s@example.com", Phone: "+915555555555",
	})
	require.NoError(t, err)

	id, err := uuid.Parse(res.ID)
	require.NoError(t, err)
	account, err := repo.GetUserByID(ctx, id)
	require.NoError(t, err)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(account.Password), []byte("kiran.s@123")))
}

func TestChangePassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Vijay", Email: "vijay@example.com", Phone: "+916666666666",
		Password: "oldpass1", City: "Mumbai",
	})
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, domain.ChangePasswordRequest{
		CurrentPassword: "wrong", NewPassword: "newpass1",
	}, res.User.ID)
	require.ErrorIs(t, err, domain.ErrWrongPassword)

	err = svc.ChangePassword(ctx, domain.ChangePasswordRequest{
		CurrentPassword: "oldpass1", NewPassword: "newpass1",
	}, res.User.ID)
	require.NoError(t, err)

	_, err = svc.Login(ctx, domain.LoginRequest{Email: "vijay@example.com", Password: "newpass1"})
	require.NoError(t, err)
}

func TestDeleteUserNotFound(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.DeleteUser(context.Background(), uuid.NewString())
	require.ErrorIs(t, err, domain.ErrUserNotFound)

	err = svc.DeleteUser(context.Background(), "not-a-uuid")
	require.ErrorIs(t, err, domain.ErrParseUUID)
}

func TestImportUsersRowIsolation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	data, err := spreadsheet.WriteRows("Users",
		[]string{"Name", "Email", "Phone", "City"},
		[][]interface{}{
			{"Amit", "amit@example.com", "+917777777771", "Jaipur"},
			{"NoPhone", "nophone@example.com", "", "Jaipur"},
			{"Sunita", "sunita@example.com", "+917777777772", "Jaipur"},
		})
	require.NoError(t, err)

	result, err := svc.ImportUsers(ctx, bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 2, result.Imported)
	require.Len(t, result.Errors, 1)
	require.Equal(t, 2, result.Errors[0].Row)

	// A duplicate in a later batch is a row error, not a batch failure.
	data, err = spreadsheet.WriteRows("Users",
		[]string{"Name", "Email", "Phone", "City"},
		[][]interface{}{
			{"Amit", "amit@example.com", "+917777777771", "Jaipur"},
		})
	require.NoError(t, err)

	result, err = svc.ImportUsers(ctx, bytes.NewReader(data))
	require.NoError(t, err)
	require.Equal(t, 0, result.Imported)
	require.Len(t, result.Errors, 1)
}

func TestExportUsersRoundTrip(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, domain.RegisterRequest{
		Name: "Lata", Email: "lata@example.com", Phone: "+918888888888",
		Password: "secret123", City: "Nagpur",
	})
	require.NoError(t, err)

	data, err := svc.ExportUsers(ctx)
	require.NoError(t, err)

	rows, err := spreadsheet.ReadRows(bytes.NewReader(data))
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "lata@example.com", rows[0]["email"])
	require.Regexp(t, cardNumberPattern, rows[0]["virtual card number"])
}
