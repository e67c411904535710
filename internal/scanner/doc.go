// Package scanner walks directory trees and classifies what it finds.
//
// Traversal is best-effort: entries that cannot be read are skipped and
// counted rather than aborting the walk. DirSize therefore returns a lower
// bound when part of a tree is unreadable, and Walk reports how many entries
// it had to skip.
//
//	stats, err := scanner.Walk("/data", func(e types.Entry) error {
//	    fmt.Printf("%d\t%s\n", e.SizeBytes, e.Path)
//	    return nil
//	})
//
// Walk visits entries in lexical order, so a static tree is always reported
// in the same sequence.
package scanner
