// Package layer provides the layer catalog: the ordered, read-only set of
// colour transforms a grid square can accumulate.
//
// A Kind is a named, indexed, pure function of (colour, tick, x, y). Kinds
// are created only by building a Catalog, which assigns indices in
// declaration order. The process-wide catalog returned by Default is
// compiled once from the embedded CUE table catalog.cue and must not be
// mutated afterwards.
//
// Catalog tables are CUE documents of the form:
//
//	layers: {
//		black:   {transform: "solid", colour: [0, 0, 0]}
//		lighten: {transform: "shift", amount: 40}
//		invert:  {transform: "invert"}
//	}
//
// Every catalog must define the distinguished "invert" kind.
package layer
