//go:build tools

package tools

// Tool dependencies are not tracked here with blank imports.
// mockery is used as an installed binary (not via go run), so no
// import is needed. Run: mockery (from the repository root) to
// regenerate pkg/discovery/mocks.
