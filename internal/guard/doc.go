// Package guard checks guard-clause overload groups.
//
// A function name may be declared several times with the same arity; each
// declaration (an overload) may attach a guard predicate to its parameters.
// For every group the Validator reports exhaustiveness (E1001), unreachable
// overloads (W1002), base placement (E1004, E1005) and two size heuristics
// (W1101, W1102).
//
// Pipeline per compilation unit:
//
//	Collector -> Normalizer -> passes -> Emitter -> []diag.Diagnostic
//
// Guards are reduced to integer intervals on a single parameter
// (see internal/interval); anything else is classified Unknown and only
// feeds the explosion heuristic.
package guard
