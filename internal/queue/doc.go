// Package queue provides the chunk list that backs the public byte and text
// queues. A List is a singly-linked FIFO of chunks that can hand out an exact
// number of units from its front, splitting or draining as many chunks as the
// request spans.
//
// The unit a List counts in is fixed at construction by its Units strategy:
// Bytes counts bytes and splits chunks by re-slicing, so the returned front
// and the retained rest share the chunk's backing array. Runes counts Unicode
// code points and splits strings at the byte offset of the n-th rune.
//
// A List never tracks how many units it holds; that accounting belongs to the
// owner. Requests for more units than are buffered, or for fewer than one,
// are not checked unless the module is built with the chunkqueue_debug tag,
// in which case they panic with one of the exported error classes.
//
// A List is not safe for concurrent use.
package queue
