// Package testsupport holds helpers shared by package tests: golden file
// handling, cmp-based diffs and a manually advanced clock for debounce tests.
package testsupport
