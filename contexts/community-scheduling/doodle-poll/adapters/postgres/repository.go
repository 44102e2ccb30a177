package postgresadapter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	domainerrors "doodle/contexts/community-scheduling/doodle-poll/domain/errors"
	"doodle/contexts/community-scheduling/doodle-poll/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository stores vote set blobs in a single keyed table. It works with any
// gorm dialect; Postgres error codes are translated when present.
type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// Migrate creates the blob table when missing.
func (r *Repository) Migrate(ctx context.Context) error {
	if err := r.db.WithContext(ctx).AutoMigrate(&voteSetBlobModel{}); err != nil {
		return r.logError("doodle_repo_migrate_failed", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var row voteSetBlobModel
	err := r.db.WithContext(ctx).
		Where("storage_key = ?", strings.TrimSpace(key)).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, r.logError("doodle_repo_get_blob_failed", err, "storage_key", strings.TrimSpace(key))
	}
	return row.Payload, true, nil
}

func (r *Repository) Put(ctx context.Context, key string, blob []byte) error {
	row := voteSetBlobModel{
		StorageKey: strings.TrimSpace(key),
		Payload:    append([]byte(nil), blob...),
		UpdatedAt:  time.Now().UTC(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "storage_key"}},
		DoUpdates: clause.Assignments(map[string]any{
			"payload":    row.Payload,
			"updated_at": row.UpdatedAt,
		}),
	}).Create(&row).Error
	if err != nil {
		return r.logError("doodle_repo_put_blob_failed", err,
			"storage_key", row.StorageKey,
			"bytes", len(blob),
		)
	}
	return nil
}

func (r *Repository) logError(event string, err error, attrs ...any) error {
	fields := make([]any, 0, len(attrs)+8)
	fields = append(fields,
		"event", event,
		"module", "community-scheduling/doodle-poll",
		"layer", "adapter",
		"error", err.Error(),
	)
	if isUndefinedTable(err) {
		fields = append(fields, "hint", "vote set table missing, run migrations")
	}
	fields = append(fields, attrs...)
	r.logger.Error("doodle repository operation failed", fields...)
	return fmt.Errorf("%w: %w", domainerrors.ErrStorage, err)
}

type voteSetBlobModel struct {
	StorageKey string    `gorm:"column:storage_key;primaryKey"`
	Payload    []byte    `gorm:"column:payload"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (voteSetBlobModel) TableName() string {
	return "doodle_vote_sets"
}

func isUndefinedTable(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "42P01"
}

var _ ports.BlobStore = (*Repository)(nil)
var _ ports.Clock = SystemClock{}
var _ ports.IDGenerator = UUIDGenerator{}
