// Package graph turns filtered doclet records into the page/anchor graph that
// the renderer consumes.
//
// A run has four steps, all single-threaded and pure over their input:
//
//  1. Build creates one Node per record in input order, allocating a unique
//     page filename and an anchor for each, then links every node to the
//     owner its memberof reference resolves to (or makes it a root) and sorts
//     every bucket by the kind order policy.
//  2. FinalizeLinks walks the tree parents-first and points member-like nodes
//     at an anchor on their parent's page.
//  3. AssembleNav groups the roots by kind in policy order.
//
// Run performs all steps. Recoverable problems (ambiguous or unresolved
// references, filename collisions, duplicate anchors) are recorded as
// Diagnostics; invariant violations abort the run with a fatal graph error.
package graph
