package auth

import (
	"context"
	"fmt"

	"github.com/nominapy/payroll-backend-go/internal/domain/auth"
	"github.com/nominapy/payroll-backend-go/internal/domain/employee"
	"github.com/nominapy/payroll-backend-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	employee.EmployeeRepository
	jwtService jwt.Service
}

func NewAuthService(employeeRepo employee.EmployeeRepository, jwtService jwt.Service) auth.AuthService {
	return &AuthServiceImpl{
		EmployeeRepository: employeeRepo,
		jwtService:         jwtService,
	}
}

// Login implements auth.AuthService.
func (s *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByCode(ctx, req.EmployeeCode)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}
	if !emp.Active {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(emp.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return s.issueTokens(emp)
}

// Refresh implements auth.AuthService.
func (s *AuthServiceImpl) Refresh(ctx context.Context, req auth.RefreshRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if s.jwtService.IsTokenRevoked(req.RefreshToken) {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	employeeID, companyID, err := s.jwtService.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}
	if !emp.Active {
		return auth.TokenResponse{}, auth.ErrInvalidToken
	}

	// Rotate: the old refresh token dies with the new pair.
	s.jwtService.RevokeToken(req.RefreshToken)

	return s.issueTokens(emp)
}

func (s *AuthServiceImpl) issueTokens(emp employee.Employee) (auth.TokenResponse, error) {
	accessToken, _, err := s.jwtService.GenerateAccessToken(emp.ID, emp.CompanyID, string(emp.JobCategory))
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate access token: %w", err)
	}

	refreshToken, _, err := s.jwtService.GenerateRefreshToken(emp.ID, emp.CompanyID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		EmployeeID:   emp.ID,
		CompanyID:    emp.CompanyID,
		EmployeeName: emp.FullName(),
	}, nil
}
