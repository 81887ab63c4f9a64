// Package output provides output formatting for tracemesh-cli.
//
// Three formats are supported: an aligned text table (the default),
// indented JSON, and YAML. The table formatter tabulates slices of
// structs, single structs, and maps via reflection; struct fields can
// opt out with a `table:"-"` tag or show only in wide mode with
// `table:"wide"`.
//
// @design DS-0502
package output
