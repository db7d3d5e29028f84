// Package linkverify checks the links of a generated site: every relative
// href must name an existing file, every fragment an element id on its target
// page, and, when enabled, every external URL must answer.
package linkverify
