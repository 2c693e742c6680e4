// Package audit records back-office actions. Recording is best-effort:
// callers dispatch in a goroutine and a failed write never fails the request.
package audit

import (
	"context"
	"log"

	"github.com/miles-brown/The-Words-Record-sub005/internal/model"
	"gorm.io/gorm"
)

// Audit actions.
const (
	ActionLogin         = "login"
	ActionCreate        = "create"
	ActionUpdate        = "update"
	ActionDelete        = "delete"
	ActionPromote       = "promote_statement"
	ActionAutoPromote   = "auto_promote"
	ActionUpdateSetting = "update_setting"
)

// Resource types.
const (
	ResourceStatement = "statement"
	ResourceCase      = "case"
	ResourceUser      = "user"
	ResourceSetting   = "setting"
)

type Event struct {
	UserID       uint
	Actor        string
	Action       string
	ResourceType string
	ResourceID   string
	Detail       model.JSONMap
	IP           string
}

// Recorder is the audit sink port.
type Recorder interface {
	Record(ctx context.Context, e Event) error
}

// NoopRecorder discards events. Used in tests and when auditing is disabled.
type NoopRecorder struct{}

func (NoopRecorder) Record(context.Context, Event) error { return nil }

// DBRecorder writes events to the operation_logs table.
type DBRecorder struct {
	db *gorm.DB
}

func NewDBRecorder(db *gorm.DB) *DBRecorder {
	return &DBRecorder{db: db}
}

func (r *DBRecorder) Record(ctx context.Context, e Event) error {
	row := &model.OperationLog{
		UserID:       e.UserID,
		Actor:        e.Actor,
		Action:       e.Action,
		ResourceType: e.ResourceType,
		ResourceID:   e.ResourceID,
		Detail:       e.Detail,
		IP:           e.IP,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		log.Printf("audit: record %s/%s: %v", e.Action, e.ResourceID, err)
		return err
	}
	return nil
}

// Dispatch records an event on a fresh goroutine so the caller never blocks
// on the audit sink.
func Dispatch(rec Recorder, e Event) {
	if rec == nil {
		return
	}
	go func() {
		_ = rec.Record(context.Background(), e)
	}()
}
