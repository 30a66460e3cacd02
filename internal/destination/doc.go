// Package destination inspects a transfer target directory without any
// database involvement: episode records are reconstructed purely from path
// structure and filesystem attributes, so the view stays truthful even when
// the destination was written by another tool.
package destination
