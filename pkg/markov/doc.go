/*
Package markov provides an in-memory, character-level n-gram Markov chain
for learning from text and sampling new text from it.

A Model of order k treats every run of k consecutive runes as a window. Fit
counts how often each window is followed by the next, non-overlapping window
and normalizes those counts into transition probabilities. Generate picks a
random starting window and walks the chain, emitting windows until the
requested number of runes has been produced or the walk reaches a dead end.

The package does no I/O and expects already-cleaned text. See the textclean
package for the pre-cleaning used by the marklang command.
*/
package markov
