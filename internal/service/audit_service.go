package service

import (
	"context"

	"github.com/sirupsen/logrus"
)

// AuditService records security relevant actions as structured log entries.
type AuditService interface {
	LogCreate(ctx context.Context, actorID int64, action, entityName, entityID string, newValue interface{})
	LogUpdate(ctx context.Context, actorID int64, action, entityName, entityID string, oldValue, newValue interface{})
	LogDelete(ctx context.Context, actorID int64, action, entityName, entityID string, oldValue interface{})
}

type auditService struct {
	log *logrus.Logger
}

func NewAuditService(log *logrus.Logger) AuditService {
	return &auditService{log: log}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, actorID int64, action, entityName, entityID string, newValue interface{}) {
	s.entry(ctx, actorID, action, entityName, entityID).
		WithField("new_value", newValue).
		Info("audit")
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, actorID int64, action, entityName, entityID string, oldValue, newValue interface{}) {
	s.entry(ctx, actorID, action, entityName, entityID).
		WithField("old_value", oldValue).
		WithField("new_value", newValue).
		Info("audit")
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, actorID int64, action, entityName, entityID string, oldValue interface{}) {
	s.entry(ctx, actorID, action, entityName, entityID).
		WithField("old_value", oldValue).
		Info("audit")
}

func (s *auditService) entry(ctx context.Context, actorID int64, action, entityName, entityID string) *logrus.Entry {
	fields := logrus.Fields{
		"audit":     true,
		"action":    action,
		"entity":    entityName,
		"entity_id": entityID,
	}
	if actorID != 0 {
		fields["actor_id"] = actorID
	}
	return s.log.WithContext(ctx).WithFields(fields)
}
