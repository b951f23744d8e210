// Package usecase はthemesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"journal_backend/internal/feature/themes/domain/entity"
)

// Business-logic failures for theme operations. Upper layers translate these
// to HTTP status codes.
var (
	// ErrUnknownTheme is returned when the requested theme is not in the
	// catalog.
	ErrUnknownTheme = errors.New("unknown theme")

	// ErrInvalidSampleSize is returned when a sample request asks for fewer
	// than one record.
	ErrInvalidSampleSize = errors.New("sample_size must be at least 1")

	// ErrNoThemeData is returned when no data records exist for the
	// requested theme.
	ErrNoThemeData = errors.New("no theme data found")
)

// catalog is the built-in theme catalog. Themes are static; only their data
// records live in storage.
var catalog = []entity.Theme{
	{
		Theme:               entity.ThemeAmorFati,
		Name:                "Amor Fati",
		ShortDescription:    "A Love of Fate",
		DetailedDescription: "Treating each and every moment, no matter how challenging, as something to be embraced, not avoided.",
		AccentColor:         "#008fb3",
	},
	{
		Theme:               entity.ThemePremeditatioMalorum,
		Name:                "Premeditatio Malorum",
		ShortDescription:    "Premeditation of Evils",
		DetailedDescription: "This is a Stoic exercise of imagining things that could go wrong or be taken away from us",
		AccentColor:         "#7575a3",
	},
}

// ThemeDataRepository はテーマデータの読み取りを抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type ThemeDataRepository interface {
	// SampleByTheme はテーマのデータレコードをランダムにsampleSize件返します。
	// themeが空の場合は全テーマを母集団とします。
	SampleByTheme(ctx context.Context, theme entity.ThemeType, sampleSize int) ([]entity.ThemeData, error)
}

// ThemeUsecase serves the theme catalog and random theme data samples.
type ThemeUsecase struct {
	repo ThemeDataRepository
}

// NewThemeUsecase はThemeUsecaseの新しいインスタンスを生成します。
func NewThemeUsecase(repo ThemeDataRepository) *ThemeUsecase {
	return &ThemeUsecase{repo: repo}
}

// List はカタログの全テーマを、それぞれランダムな1件のデータと共に返します。
// データレコードが1件もないテーマはDataがnilのまま返されます。
func (u *ThemeUsecase) List(ctx context.Context) ([]entity.Theme, error) {
	themes := make([]entity.Theme, 0, len(catalog))
	for _, t := range catalog {
		theme := t
		data, err := u.repo.SampleByTheme(ctx, theme.Theme, 1)
		if err != nil {
			return nil, fmt.Errorf("failed to sample theme data for %s: %w", theme.Theme, err)
		}
		if len(data) > 0 {
			theme.Data = &data[0]
		}
		themes = append(themes, theme)
	}
	return themes, nil
}

// Sample はテーマのデータレコードをランダムにsampleSize件返します。
// カタログにないテーマはErrUnknownTheme、レコードが存在しない場合は
// ErrNoThemeDataです。
func (u *ThemeUsecase) Sample(ctx context.Context, theme entity.ThemeType, sampleSize int) ([]entity.ThemeData, error) {
	if sampleSize < 1 {
		return nil, ErrInvalidSampleSize
	}
	if !knownTheme(theme) {
		return nil, ErrUnknownTheme
	}

	data, err := u.repo.SampleByTheme(ctx, theme, sampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample theme data: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoThemeData
	}

	return data, nil
}

func knownTheme(theme entity.ThemeType) bool {
	for _, t := range catalog {
		if t.Theme == theme {
			return true
		}
	}
	return false
}
