// Package textclean turns raw prose into the symbol stream the markov package
// trains on: case-folded letters with everything else removed.
package textclean
