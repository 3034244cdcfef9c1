// filepath: internal/services/mocks/auditor_mock.go
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/Popap2/forymusic/internal/services"
)

// MockAuditor records audit expectations for handler tests. Tests
// assert on the action, actor, resource and detail fields to pin the
// audit contract of each endpoint.
type MockAuditor struct {
	mock.Mock
}

var _ services.Auditor = (*MockAuditor)(nil)

func (m *MockAuditor) Log(ctx context.Context, action string, actor string, resource string, details map[string]interface{}) {
	m.Called(ctx, action, actor, resource, details)
}
