// Package copier mirrors an install tree into a package folder.
//
// Exclusions use gitignore pattern syntax relative to the source root.
// Excluded directories are pruned before they are read, which lets the copy
// step around subtrees the packaging user cannot open.
package copier
