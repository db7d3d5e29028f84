// Package git reads the revision of the repository the doclet input lives in,
// so generated pages can name the commit they document.
package git
