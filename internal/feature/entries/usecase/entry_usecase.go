// Package usecase はentriesフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	authentity "journal_backend/internal/feature/auth/domain/entity"
	colentity "journal_backend/internal/feature/collections/domain/entity"
	colusecase "journal_backend/internal/feature/collections/usecase"
	"journal_backend/internal/feature/entries/domain/entity"
	"journal_backend/internal/platform/identifier"
)

// Page size bounds for entry listing.
const (
	DefaultPageSize = 10
	MaxPageSize     = 50
)

// EntryRepository はエントリーの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type EntryRepository interface {
	// Insert はエントリーレコードを永続化します。
	Insert(ctx context.Context, entry *entity.Entry) error

	// GetByID は(owner, entryID)のポイントルックアップです。
	// レコードが存在しない場合、ErrEntryNotFoundを返します。
	GetByID(ctx context.Context, userID, entryID string) (*entity.Entry, error)

	// ListByUser はオーナーのエントリーをキーセットページネーションで取得します。
	// 戻り値の2番目は打ち切り時の継続キー（最後に評価されたsecondary key）です。
	ListByUser(ctx context.Context, userID, cursor string, limit int, scanForward bool) ([]entity.Entry, string, error)

	// Delete はエントリーを削除し、削除されたレコードを返します。
	// レコードが存在しない場合、ErrEntryNotFoundを返します。
	Delete(ctx context.Context, userID, entryID string) (*entity.Entry, error)
}

// CollectionGetter はエントリー作成時の対象コレクションの検証に必要な
// 読み取り操作です。collectionsフィーチャーのリポジトリが満たします。
type CollectionGetter interface {
	GetByID(ctx context.Context, userID, collectionID string) (*colentity.Collection, error)
}

// IDGenerator は時系列順にソート可能なIDの発行を抽象化します。
type IDGenerator interface {
	NewID(prefix string) string
}

// Page is one page of a bidirectional entry listing.
type Page struct {
	NextCursor string
	PrevCursor string
	Limit      int
	Records    []entity.Entry
}

// EntryUsecase orchestrates entry creation, retrieval, paginated listing and
// deletion for an authenticated owner.
type EntryUsecase struct {
	repo        EntryRepository
	collections CollectionGetter
	ids         IDGenerator
	now         func() time.Time
}

// NewEntryUsecase はEntryUsecaseの新しいインスタンスを生成します。
func NewEntryUsecase(repo EntryRepository, collections CollectionGetter, ids IDGenerator) *EntryUsecase {
	return &EntryUsecase{
		repo:        repo,
		collections: collections,
		ids:         ids,
		now:         time.Now,
	}
}

// Create は新しいエントリーを作成します。
// 対象コレクションがオーナーに存在しない場合はErrCollectionNotFound、
// 非アクティブな場合はErrCollectionInactiveを返します。作成時点の
// コレクションテンプレートをエントリーにスナップショットとして保持します。
func (u *EntryUsecase) Create(ctx context.Context, token *authentity.AuthToken, collectionID string, content map[string]string, isDraft bool) (*entity.Entry, error) {
	collection, err := u.collections.GetByID(ctx, token.User.UserID, collectionID)
	if err != nil {
		if errors.Is(err, colusecase.ErrCollectionNotFound) {
			return nil, ErrCollectionNotFound
		}
		return nil, fmt.Errorf("failed to load target collection: %w", err)
	}
	if !collection.Active {
		return nil, ErrCollectionInactive
	}

	if content == nil {
		content = map[string]string{}
	}

	now := u.now().Unix()
	entry := &entity.Entry{
		UserID:       token.User.UserID,
		EntryID:      u.ids.NewID(identifier.EntryPrefix),
		CollectionID: collectionID,
		Content:      content,
		Template:     snapshotTemplate(collection.Template),
		IsDraft:      isDraft,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.repo.Insert(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}

	return entry, nil
}

// Get はオーナーのエントリーをIDで取得します。
func (u *EntryUsecase) Get(ctx context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error) {
	return u.repo.GetByID(ctx, token.User.UserID, entryID)
}

// List はオーナーのエントリーを1ページ分取得します。
// カーソルの扱いはコレクション一覧と同じで、ストアの継続キーを
// スキャン方向と逆向きのカーソルとして返します。
func (u *EntryUsecase) List(ctx context.Context, token *authentity.AuthToken, nextCursor, prevCursor string, limit int) (*Page, error) {
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
		return nil, fmt.Errorf("failed to list entries: %w", err)
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

// Delete はオーナーのエントリーを削除し、削除されたエントリーを返します。
func (u *EntryUsecase) Delete(ctx context.Context, token *authentity.AuthToken, entryID string) (*entity.Entry, error) {
	return u.repo.Delete(ctx, token.User.UserID, entryID)
}

func snapshotTemplate(fields []colentity.TemplateField) []entity.TemplateField {
	snapshot := make([]entity.TemplateField, 0, len(fields))
	for _, f := range fields {
		snapshot = append(snapshot, entity.TemplateField{Key: f.Key, DisplayName: f.DisplayName})
	}
	return snapshot
}
