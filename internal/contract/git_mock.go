package contract

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockGitClient is a mock implementation of GitClient for testing.
type MockGitClient struct {
	mock.Mock
}

var _ GitClient = &MockGitClient{} // Compile-time check

// Run implements the GitClient interface.
func (m *MockGitClient) Run(ctx context.Context, repoPath string, args ...string) ([]byte, error) {
	callArgs := make([]any, 0, len(args)+2)
	callArgs = append(callArgs, ctx, repoPath)
	for _, a := range args {
		callArgs = append(callArgs, a)
	}
	ret := m.Called(callArgs...)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetChangeLog implements the GitClient interface.
func (m *MockGitClient) GetChangeLog(ctx context.Context, dir string) ([]byte, error) {
	ret := m.Called(ctx, dir)
	out, _ := ret.Get(0).([]byte)
	return out, ret.Error(1)
}

// GetRepoRoot implements the GitClient interface.
func (m *MockGitClient) GetRepoRoot(ctx context.Context, contextPath string) (string, error) {
	ret := m.Called(ctx, contextPath)
	return ret.String(0), ret.Error(1)
}

// GetRepoHash implements the GitClient interface.
func (m *MockGitClient) GetRepoHash(ctx context.Context, repoPath string) (string, error) {
	ret := m.Called(ctx, repoPath)
	return ret.String(0), ret.Error(1)
}
