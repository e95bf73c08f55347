package service

import (
	"context"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuditService_EmitsStructuredEntries(t *testing.T) {
	log, hook := test.NewNullLogger()
	audit := NewAuditService(log)

	audit.LogCreate(context.Background(), 7, "rating.submit", "rating", "101", map[string]int{"rating": 4})

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, logrus.InfoLevel, entry.Level)
	assert.Equal(t, true, entry.Data["audit"])
	assert.Equal(t, "rating.submit", entry.Data["action"])
	assert.Equal(t, "101", entry.Data["entity_id"])
	assert.Equal(t, int64(7), entry.Data["actor_id"])
	assert.Equal(t, map[string]int{"rating": 4}, entry.Data["new_value"])
}

func TestAuditService_AnonymousActor(t *testing.T) {
	log, hook := test.NewNullLogger()
	audit := NewAuditService(log)

	audit.LogDelete(context.Background(), 0, "patient.delete", "patient", "3", nil)

	entry := hook.LastEntry()
	require.NotNil(t, entry)
	_, hasActor := entry.Data["actor_id"]
	assert.False(t, hasActor)
	assert.Contains(t, entry.Data, "old_value")
}
