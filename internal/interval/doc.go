// Package interval implements arithmetic over integer ranges with open or
// closed bounds.
//
// An Interval has an optional lower and an optional upper bound; a missing
// bound means the range is unbounded on that side. Emptiness is never
// stored: consumers ask IsEmpty. Comparisons follow real-line semantics, so
// (3, 4) is non-empty even though it holds no integer. That keeps every
// "empty" or "subsumes" answer sound for integers while never claiming more
// than the bounds prove.
//
// The package has no dependencies on the rest of the compiler and all of its
// operations are pure.
package interval
