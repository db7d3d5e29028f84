// Package publish drives a complete symdoc run: it loads doclets, builds the
// symbol graph, renders the site and verifies its links as a sequence of
// named, timed stages whose outcomes are collected in a BuildReport.
package publish
