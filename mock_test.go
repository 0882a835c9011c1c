// FILE: lixenwraith/confinit/mock_test.go
package confinit

import (
	"os"

	"github.com/stretchr/testify/mock"
)

var (
	_ FileReader = (*mockFS)(nil)
	_ FileWriter = (*mockFS)(nil)
)

// mockFS is a testify mock of the file collaborators.
type mockFS struct {
	mock.Mock
}

// ReadFile mocks the ReadFile method.
func (m *mockFS) ReadFile(path string) ([]byte, error) {
	args := m.Called(path)
	var data []byte
	if args.Get(0) != nil {
		data = args.Get(0).([]byte)
	}
	return data, args.Error(1)
}

// WriteFile mocks the WriteFile method.
func (m *mockFS) WriteFile(path string, data []byte, perm os.FileMode) error {
	args := m.Called(path, data, perm)
	return args.Error(0)
}
