// Package template defines the seam the widget renderer uses to turn
// embedded templates into HTML fragments. The default implementation lives
// in the gotemplate subpackage.
package template
