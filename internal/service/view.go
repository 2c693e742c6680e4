package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const viewKeyPrefix = "views:statement:"

// ViewService counts statement views in Redis and periodically flushes them
// into statements.view_count, which feeds the public engagement criterion.
// Counting in Redis keeps the hot path off the database.
type ViewService struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewViewService(db *gorm.DB, rdb *redis.Client) *ViewService {
	return &ViewService{db: db, rdb: rdb}
}

func viewKey(statementID string) string {
	return viewKeyPrefix + statementID
}

// RecordView increments the pending view counter for a statement.
func (s *ViewService) RecordView(ctx context.Context, statementID string) error {
	if err := s.rdb.Incr(ctx, viewKey(statementID)).Err(); err != nil {
		return fmt.Errorf("incr view counter: %w", err)
	}
	return nil
}

// PendingViews returns the unflushed count for a statement.
func (s *ViewService) PendingViews(ctx context.Context, statementID string) (int64, error) {
	v, err := s.rdb.Get(ctx, viewKey(statementID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return strconv.ParseInt(v, 10, 64)
}

// FlushViews drains all pending counters into the database. Invoked by the
// cron surface. A counter that fails to apply is re-credited so no views are
// lost across runs.
func (s *ViewService) FlushViews(ctx context.Context) (int, error) {
	var (
		cursor  uint64
		flushed int
	)
	for {
		keys, next, err := s.rdb.Scan(ctx, cursor, viewKeyPrefix+"*", 100).Result()
		if err != nil {
			return flushed, fmt.Errorf("scan view counters: %w", err)
		}
		for _, key := range keys {
			v, err := s.rdb.GetDel(ctx, key).Result()
			if err == redis.Nil {
				continue
			}
			if err != nil {
				return flushed, err
			}
			count, err := strconv.ParseInt(v, 10, 64)
			if err != nil || count <= 0 {
				continue
			}
			statementID := strings.TrimPrefix(key, viewKeyPrefix)
			if err := s.db.WithContext(ctx).Model(&model.Statement{}).
				Where("id = ?", statementID).
				UpdateColumn("view_count", gorm.Expr("view_count + ?", count)).Error; err != nil {
				s.rdb.IncrBy(ctx, key, count)
				return flushed, fmt.Errorf("flush views for %s: %w", statementID, err)
			}
			flushed++
		}
		cursor = next
		if cursor == 0 {
			return flushed, nil
		}
	}
}
