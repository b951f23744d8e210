// Package usecase はcollectionsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"
	"time"

	authentity "journal_backend/internal/feature/auth/domain/entity"
	"journal_backend/internal/feature/collections/domain/entity"
	"journal_backend/internal/platform/identifier"
)

// Page size bounds for collection listing.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// CollectionRepository はコレクションの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type CollectionRepository interface {
	// Insert はコレクションレコードを永続化します。
	Insert(ctx context.Context, collection *entity.Collection) error

	// GetByID は(owner, collectionID)のポイントルックアップです。
	// レコードが存在しない場合、ErrCollectionNotFoundを返します。
	GetByID(ctx context.Context, userID, collectionID string) (*entity.Collection, error)

	// ListByUser はオーナーのコレクションをキーセットページネーションで取得します。
	// 戻り値の2番目は打ち切り時の継続キー（最後に評価されたsecondary key）です。
	ListByUser(ctx context.Context, userID, cursor string, limit int, scanForward bool) ([]entity.Collection, string, error)

	// UpdateActiveCollections はコレクションへの参照をユーザーのactive_collections
	// にマージして永続化し、更新後のマッピングを返します。
	UpdateActiveCollections(ctx context.Context, user *authentity.User, collection *entity.Collection) (map[string]authentity.ActiveCollection, error)
}

// IDGenerator は時系列順にソート可能なIDの発行を抽象化します。
type IDGenerator interface {
	NewID(prefix string) string
}

// Page is one page of a bidirectional collection listing. Exactly one
// direction cursor is populated per page unless the listing is exhausted.
type Page struct {
	NextCursor string
	PrevCursor string
	Limit      int
	Records    []entity.Collection
}

// CollectionUsecase orchestrates collection creation and paginated listing
// for an authenticated owner.
type CollectionUsecase struct {
	repo CollectionRepository
	ids  IDGenerator
	now  func() time.Time
}

// NewCollectionUsecase はCollectionUsecaseの新しいインスタンスを生成します。
func NewCollectionUsecase(repo CollectionRepository, ids IDGenerator) *CollectionUsecase {
	return &CollectionUsecase{
		repo: repo,
		ids:  ids,
		now:  time.Now,
	}
}

// Create は新しいコレクションを作成します。
// オーナーのactive_collectionsに同名のコレクションが存在する場合は
// ストレージに触れずにErrNameConflictを返します。
//
// The collection put and the active_collections update are two separate
// writes; a crash between them leaves a collection row absent from the
// owner's active set. See the repository documentation for the trade-off.
func (u *CollectionUsecase) Create(ctx context.Context, token *authentity.AuthToken, name string, template []entity.TemplateField, active bool) (*entity.Collection, error) {
	for _, ref := range token.User.ActiveCollections {
		if ref.Name == name {
			return nil, ErrNameConflict
		}
	}

	now := u.now().Unix()
	collection := &entity.Collection{
		UserID:                token.User.UserID,
		CollectionID:          u.ids.NewID(identifier.CollectionPrefix),
		Name:                  name,
		Template:              template,
		Active:                active,
		PublishedEntriesCount: 0,
		CreatedAt:             now,
		UpdatedAt:             now,
	}

	if err := u.repo.Insert(ctx, collection); err != nil {
		return nil, fmt.Errorf("failed to insert collection: %w", err)
	}

	if _, err := u.repo.UpdateActiveCollections(ctx, token.User, collection); err != nil {
		return nil, fmt.Errorf("failed to update active collections: %w", err)
	}

	return collection, nil
}

// Get はオーナーのコレクションをIDで取得します。
func (u *CollectionUsecase) Get(ctx context.Context, token *authentity.AuthToken, collectionID string) (*entity.Collection, error) {
	return u.repo.GetByID(ctx, token.User.UserID, collectionID)
}

// List はオーナーのコレクションを1ページ分取得します。
// nextCursorは順方向、prevCursorは逆方向のスキャンを指示し、両方の指定は
// クライアントエラーです。ストアの継続キーはスキャン方向と逆向きの
// カーソルとしてレスポンスに載せ、呼び出し側のカーソルをもう一方に
// そのまま返します。これにより単一のレンジインデックスで双方向の
// ページングが成立します。
func (u *CollectionUsecase) List(ctx context.Context, token *authentity.AuthToken, nextCursor, prevCursor string, limit int) (*Page, error) {
	if nextCursor != "" && prevCursor != "" {
		return nil, ErrBothCursors
	}

	if limit <= 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	scanForward := prevCursor == ""
	cursor := nextCursor
	if !scanForward {
		cursor = prevCursor
	}

	records, continuation, err := u.repo.ListByUser(ctx, token.User.UserID, cursor, limit, scanForward)
	if err != nil {
		return nil, fmt.Errorf("failed to list collections: %w", err)
	}

	page := &Page{Limit: limit, Records: records}
	if scanForward {
		page.NextCursor = continuation
		page.PrevCursor = nextCursor
	} else {
		page.PrevCursor = continuation
		page.NextCursor = prevCursor
	}

	return page, nil
}
