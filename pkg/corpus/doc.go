/*
Package corpus keeps a library of named, already-cleaned training texts in a
SQLite database.

The corpus stores text only. Models are never persisted; callers rebuild them
in memory by fitting the texts they need, usually through Each.
*/
package corpus
