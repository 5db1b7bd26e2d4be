// Package bounded provides fixed-capacity LIFO and FIFO containers.
//
// Capacity is a hard ceiling enforced by rejection, never by growth: Push
// and Append report false when the container is full and leave it
// unchanged. Neither container is safe for concurrent use.
package bounded
