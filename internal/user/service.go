package user

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"foodbox-be/internal/logger"
	"foodbox-be/internal/utils"
)

const (
	codeTTL        = 5 * time.Minute
	maxOTPAttempts = 5
)

type Service interface {
	// RequestOTP generates a one-time code for phone and delivers it
	// through the configured sender.
	RequestOTP(ctx context.Context, phone string) error
	// VerifyOTP checks the submitted code, provisions the user on first
	// login, and issues an access/refresh token pair.
	VerifyOTP(ctx context.Context, phone, code string) (*User, *TokenPair, error)
	// Refresh rotates a refresh token into a fresh token pair.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	// Logout revokes a refresh token.
	Logout(ctx context.Context, refreshToken string) error
	GetUser(ctx context.Context, id string) (*User, error)
}

type service struct {
	repo    Repository
	codes   CodeStore
	refresh RefreshStore
	sms     SMSSender
}

func NewService(repo Repository, codes CodeStore, refresh RefreshStore, sms SMSSender) Service {
	return &service{repo: repo, codes: codes, refresh: refresh, sms: sms}
}

func (s *service) RequestOTP(ctx context.Context, phone string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "userService"),
		zap.String("method", "RequestOTP"),
	)
	log.Debug("start requesting otp")

	normalized, err := utils.NormalizePhone(phone)
	if err != nil {
		return ErrInvalidPhone
	}

	code, err := GenerateCode()
	if err != nil {
		log.Error("failed to generate code", zap.Error(err))
		return err
	}
	hash, err := HashCode(code)
	if err != nil {
		log.Error("failed to hash code", zap.Error(err))
		return err
	}
	if err := s.codes.SaveCode(ctx, normalized, hash, codeTTL); err != nil {
		log.Error("failed to store code", zap.Error(err))
		return err
	}
	if err := s.sms.Send(ctx, normalized, otpMessage(code)); err != nil {
		log.Error("failed to send code", zap.Error(err))
		return err
	}

	log.Info("success requesting otp")
	return nil
}

func (s *service) VerifyOTP(ctx context.Context, phone, code string) (*User, *TokenPair, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "userService"),
		zap.String("method", "VerifyOTP"),
	)
	log.Debug("start verifying otp")

	normalized, err := utils.NormalizePhone(phone)
	if err != nil {
		return nil, nil, ErrInvalidPhone
	}
	if len(code) != 6 {
		return nil, nil, ErrInvalidCode
	}

	hash, err := s.codes.GetCode(ctx, normalized)
	if err != nil {
		return nil, nil, err
	}

	attempts, err := s.codes.IncrAttempts(ctx, normalized)
	if err != nil {
		log.Error("failed to count attempt", zap.Error(err))
		return nil, nil, err
	}
	if attempts > maxOTPAttempts {
		log.Warn("too many otp attempts", zap.String("phone", normalized))
		s.codes.DeleteCode(ctx, normalized)
		return nil, nil, ErrTooManyAttempts
	}

	if !CheckCodeHash(code, hash) {
		return nil, nil, ErrInvalidCode
	}
	// consume on success
	if err := s.codes.DeleteCode(ctx, normalized); err != nil {
		log.Warn("failed to consume code", zap.Error(err))
	}

	u, err := s.repo.GetByPhone(ctx, normalized)
	if errors.Is(err, ErrUserNotFound) {
		u, err = s.repo.Create(ctx, normalized)
	}
	if err != nil {
		return nil, nil, err
	}

	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		log.Error("failed to issue tokens", zap.Error(err))
		return nil, nil, err
	}

	log.Info("success verifying otp", zap.String("userID", u.ID))
	return u, pair, nil
}

func (s *service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "userService"),
		zap.String("method", "Refresh"),
	)
	log.Debug("start refreshing tokens")

	claims, err := ParseJWT(refreshToken)
	if err != nil || claims.TokenType != TokenTypeRefresh {
		return nil, ErrInvalidToken
	}

	userID, err := s.refresh.TokenUserID(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if userID != claims.UserID {
		return nil, ErrInvalidToken
	}

	u, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// rotate: old token stops working the moment a new pair exists
	if err := s.refresh.DeleteToken(ctx, refreshToken); err != nil {
		log.Warn("failed to revoke old token", zap.Error(err))
	}
	pair, err := s.issueTokens(ctx, u)
	if err != nil {
		log.Error("failed to issue tokens", zap.Error(err))
		return nil, err
	}

	log.Info("success refreshing tokens", zap.String("userID", u.ID))
	return pair, nil
}

func (s *service) Logout(ctx context.Context, refreshToken string) error {
	log := logger.FromCtx(ctx).With(
		zap.String("layer", "userService"),
		zap.String("method", "Logout"),
	)

	if err := s.refresh.DeleteToken(ctx, refreshToken); err != nil {
		log.Error("failed to revoke token", zap.Error(err))
		return err
	}
	log.Info("success logging out")
	return nil
}

func (s *service) GetUser(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) issueTokens(ctx context.Context, u *User) (*TokenPair, error) {
	pair, err := GenerateTokenPair(u)
	if err != nil {
		return nil, err
	}
	if err := s.refresh.SaveToken(ctx, pair.RefreshToken, u.ID, RefreshTokenTTL); err != nil {
		return nil, err
	}
	return pair, nil
}
