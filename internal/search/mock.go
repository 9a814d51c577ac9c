package search

import (
	"github.com/cristianoliveira/chatbuf/internal/domain"
	"github.com/stretchr/testify/mock"
)

// MockProvider is a mock implementation of Provider for testing.
type MockProvider struct {
	mock.Mock
}

// Match provides a mock function with given fields: line, query.
func (_m *MockProvider) Match(line domain.Line, query string) bool {
	ret := _m.Called(line, query)
	if rf, ok := ret.Get(0).(func(domain.Line, string) bool); ok {
		return rf(line, query)
	}
	return ret.Bool(0)
}

// Name provides a mock function with given fields: .
func (_m *MockProvider) Name() string {
	ret := _m.Called()
	return ret.String(0)
}
