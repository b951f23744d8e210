// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"journal_backend/internal/feature/auth/domain/entity"
	"journal_backend/internal/platform/jwks"
)

// ErrUserNotFound indicates the verified token's subject has no user record.
// It must surface as an authorization failure, not a generic lookup error.
var ErrUserNotFound = errors.New("user not found")

// UserRepository はユーザーレコードの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// GetByID は指定されたIDに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	GetByID(ctx context.Context, userID string) (*entity.User, error)
}

// AuthorizeUsecase turns verified token claims into an authenticated request
// identity. It is the single gate between token verification and every
// authorized operation.
type AuthorizeUsecase struct {
	users UserRepository
}

// NewAuthorizeUsecase はAuthorizeUsecaseの新しいインスタンスを生成します。
func NewAuthorizeUsecase(users UserRepository) *AuthorizeUsecase {
	return &AuthorizeUsecase{users: users}
}

// Authorize は検証済みクレームのsubjectからユーザーを読み込み、AuthTokenを返します。
// ユーザーが存在しない場合はErrUserNotFoundを返します。
func (u *AuthorizeUsecase) Authorize(ctx context.Context, claims *jwks.Claims) (*entity.AuthToken, error) {
	if claims == nil || claims.Subject == "" {
		return nil, ErrUserNotFound
	}

	user, err := u.users.GetByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to load user %s: %w", claims.Subject, err)
	}

	return &entity.AuthToken{User: user}, nil
}
