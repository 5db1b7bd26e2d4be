// Package cell implements the per-square composition cells.
//
// Every grid square owns one Cell. A Cell accumulates layer kinds under one
// of three policies:
//
//   - SET (LastWrite): at most one layer; special toggles inversion.
//   - ADD (Accumulate): bounded FIFO of layers; special reverses the order.
//   - SEQUENCE (DedupOrdered): at most one entry per layer index, applied
//     in index order; special removes the median-named layer.
//
// Add and Erase return whether the cell actually changed. A full, empty or
// absent condition is a no-op reported as false, never an error. Colour
// fails only on negative coordinates.
package cell
