// package testing contains shared testing utilities
package testing

import (
	"errors"
	"io"
	"net/http"
	"os"
	"testing"
)

// StubGate is a test double for [session.Gate] with settable state.
type StubGate struct {
	ReadyVal    bool
	ValidVal    bool
	TokenVal    string
	Invalidated bool
}

func (g *StubGate) Ready() bool   { return g.ReadyVal }
func (g *StubGate) Valid() bool   { return g.ValidVal }
func (g *StubGate) Token() string { return g.TokenVal }
func (g *StubGate) Invalidate() {
	g.Invalidated = true
	g.ValidVal = false
	g.TokenVal = ""
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
	Calls    int
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	m.Calls++
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

// NoNetwork is a [http.RoundTripper] that fails the test if any request is
// made through it. Used to prove gate short-circuits never touch the wire.
type NoNetwork struct {
	T *testing.T
}

func (n *NoNetwork) RoundTrip(req *http.Request) (*http.Response, error) {
	n.T.Helper()
	n.T.Errorf("unexpected network call: %s %s", req.Method, req.URL)
	return nil, errors.New("network disabled")
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}

var _ io.ReadCloser = (*FCloser)(nil)
