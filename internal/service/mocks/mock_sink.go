package mocks

import (
	"sync"

	"github.com/stretchr/testify/mock"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) Update(text string) error {
	args := m.Called(text)
	return args.Error(0)
}

// RecordingSink collects every delivered text, for tests that only care about
// what reached the user.
type RecordingSink struct {
	mu    sync.Mutex
	Texts []string
}

func (s *RecordingSink) Update(text string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Texts = append(s.Texts, text)
	return nil
}

func (s *RecordingSink) All() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Texts))
	copy(out, s.Texts)
	return out
}
