//go:build !chunkqueue_debug

package queue

const debugAssertions = false
