// Package render turns a finished symbol graph into HTML pages.
//
// Views are html/template files embedded in the binary (tmpl/). A templates
// directory may override any of them by file name. A Renderer holds the
// parsed views and is bound to one graph at a time with Bind; the resulting
// Site renders the landing page and one page per standalone symbol.
package render
