//go:build brownstone_debug

package fixedbuf

const debugChecks = true
