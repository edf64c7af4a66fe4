package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/mainmeal/mainmeal_backend/internal/apperrors"
	portssvc "github.com/mainmeal/mainmeal_backend/internal/core/ports/services"
	"github.com/mainmeal/mainmeal_backend/internal/dto"
	"github.com/mainmeal/mainmeal_backend/internal/handlers"
	"github.com/mainmeal/mainmeal_backend/internal/models"
	"github.com/mainmeal/mainmeal_backend/internal/utils"
)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) CreateUser(ctx context.Context, req dto.RegisterRequest) (*models.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*models.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) ChangePassword(ctx context.Context, userID string, req dto.ChangePasswordRequest) error {
	args := m.Called(ctx, userID, req)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

func (m *MockUserService) AuthenticateUser(ctx context.Context, email, password string) (*models.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// Ensure mock implements the interface
var _ portssvc.UserSvcFacade = (*MockUserService)(nil)

// --- Mock TokenService ---
type MockTokenService struct {
	mock.Mock
}

func (m *MockTokenService) IssuePair(ctx context.Context, userID string) (dto.TokenPair, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(dto.TokenPair), args.Error(1)
}

func (m *MockTokenService) ValidateToken(ctx context.Context, tokenString, wantType string) (*utils.AuthClaims, error) {
	args := m.Called(ctx, tokenString, wantType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*utils.AuthClaims), args.Error(1)
}

func (m *MockTokenService) RotateRefreshToken(ctx context.Context, refreshToken string) (string, dto.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	return args.String(0), args.Get(1).(dto.TokenPair), args.Error(2)
}

func (m *MockTokenService) RevokeAll(ctx context.Context, accessToken string) error {
	args := m.Called(ctx, accessToken)
	return args.Error(0)
}

func (m *MockTokenService) CleanupExpired(ctx context.Context, now time.Time) error {
	args := m.Called(ctx, now)
	return args.Error(0)
}

// Ensure mock implements the interface
var _ portssvc.TokenSvcFacade = (*MockTokenService)(nil)

// --- Test Suite ---
type AuthHandlerTestSuite struct {
	suite.Suite
	router           *gin.Engine
	mockUserService  *MockUserService
	mockTokenService *MockTokenService
}

func (suite *AuthHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.mockUserService = new(MockUserService)
	suite.mockTokenService = new(MockTokenService)

	h := handlers.NewAuthHandler(suite.mockUserService, suite.mockTokenService)

	// Mimic the real route registration without the per-IP limiter.
	auth := suite.router.Group("/api/auth")
	auth.POST("/register", h.Register)
	auth.POST("/login", h.Login)
	auth.POST("/refresh", h.Refresh)
	auth.POST("/logout", h.Logout)
}

func (suite *AuthHandlerTestSuite) performJSON(method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func testUser() *models.User {
	now := time.Now().UTC()
	return &models.User{
		UserID:    "user-123",
		Email:     "anna@example.com",
		Name:      "Anna",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (suite *AuthHandlerTestSuite) TestRegister_Success() {
	user := testUser()
	pair := dto.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}

	suite.mockUserService.On("CreateUser", mock.Anything, mock.AnythingOfType("dto.RegisterRequest")).Return(user, nil)
	suite.mockTokenService.On("IssuePair", mock.Anything, user.UserID).Return(pair, nil)

	w := suite.performJSON(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:    "anna@example.com",
		Password: "password-123",
		Name:     "Anna",
	}, nil)

	suite.Equal(http.StatusCreated, w.Code)

	var resp dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("anna@example.com", resp.User.Email)
	suite.Equal("access-token", resp.AccessToken)
	suite.Equal("refresh-token", resp.RefreshToken)
	suite.Equal("bearer", resp.TokenType)

	suite.mockUserService.AssertExpectations(suite.T())
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestRegister_DuplicateEmail() {
	suite.mockUserService.On("CreateUser", mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicate)

	w := suite.performJSON(http.MethodPost, "/api/auth/register", dto.RegisterRequest{
		Email:    "anna@example.com",
		Password: "password-123",
		Name:     "Anna",
	}, nil)

	suite.Equal(http.StatusConflict, w.Code)
	suite.mockTokenService.AssertNotCalled(suite.T(), "IssuePair")
}

func (suite *AuthHandlerTestSuite) TestRegister_InvalidBody() {
	w := suite.performJSON(http.MethodPost, "/api/auth/register", gin.H{"email": "not-an-email"}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "CreateUser")
}

func (suite *AuthHandlerTestSuite) TestLogin_Success() {
	user := testUser()
	pair := dto.TokenPair{AccessToken: "access-token", RefreshToken: "refresh-token"}

	suite.mockUserService.On("AuthenticateUser", mock.Anything, "anna@example.com", "password-123").Return(user, nil)
	suite.mockTokenService.On("IssuePair", mock.Anything, user.UserID).Return(pair, nil)

	w := suite.performJSON(http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "anna@example.com",
		Password: "password-123",
	}, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(user.UserID, resp.User.ID)
}

func (suite *AuthHandlerTestSuite) TestLogin_BadCredentials() {
	suite.mockUserService.On("AuthenticateUser", mock.Anything, "anna@example.com", "wrong").Return(nil, apperrors.ErrUnauthorized)

	w := suite.performJSON(http.MethodPost, "/api/auth/login", dto.LoginRequest{
		Email:    "anna@example.com",
		Password: "wrong",
	}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.NotEmpty(w.Header().Get("WWW-Authenticate"))
	suite.mockTokenService.AssertNotCalled(suite.T(), "IssuePair")
}

func (suite *AuthHandlerTestSuite) TestRefresh_Success() {
	user := testUser()
	newPair := dto.TokenPair{AccessToken: "new-access", RefreshToken: "new-refresh"}

	suite.mockTokenService.On("RotateRefreshToken", mock.Anything, "old-refresh").Return(user.UserID, newPair, nil)
	suite.mockUserService.On("GetUserByID", mock.Anything, user.UserID).Return(user, nil)

	w := suite.performJSON(http.MethodPost, "/api/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "old-refresh"}, nil)

	suite.Equal(http.StatusOK, w.Code)

	var resp dto.AuthResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("new-access", resp.AccessToken)
	suite.Equal("new-refresh", resp.RefreshToken)
}

func (suite *AuthHandlerTestSuite) TestRefresh_ConsumedTokenRejected() {
	suite.mockTokenService.On("RotateRefreshToken", mock.Anything, "stale-refresh").
		Return("", dto.TokenPair{}, apperrors.ErrUnauthorized)

	w := suite.performJSON(http.MethodPost, "/api/auth/refresh", dto.RefreshTokenRequest{RefreshToken: "stale-refresh"}, nil)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockUserService.AssertNotCalled(suite.T(), "GetUserByID")
}

func (suite *AuthHandlerTestSuite) TestRefresh_MissingToken() {
	w := suite.performJSON(http.MethodPost, "/api/auth/refresh", gin.H{}, nil)
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockTokenService.AssertNotCalled(suite.T(), "RotateRefreshToken")
}

func (suite *AuthHandlerTestSuite) TestLogout_Success() {
	suite.mockTokenService.On("RevokeAll", mock.Anything, "the-access-token").Return(nil)

	w := suite.performJSON(http.MethodPost, "/api/auth/logout", nil, map[string]string{
		"Authorization": "Bearer the-access-token",
	})

	suite.Equal(http.StatusOK, w.Code)
	suite.mockTokenService.AssertExpectations(suite.T())
}

func (suite *AuthHandlerTestSuite) TestLogout_MissingBearer() {
	w := suite.performJSON(http.MethodPost, "/api/auth/logout", nil, nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockTokenService.AssertNotCalled(suite.T(), "RevokeAll")
}

func TestAuthHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(AuthHandlerTestSuite))
}
