// Package log provides the logging abstraction used by shardmerge.
//
// The merge pipeline depends only on the Logger interface. A zerolog
// adapter renders human-readable console lines; a no-op logger is provided
// for tests and embedding.
//
//	logger := log.NewZerologAdapter(os.Stderr, zerolog.InfoLevel)
//	logger.Info("shard loaded", log.Int("index", 1), log.Bytes("size", 4<<30))
//
// Implement Logger to route output into an existing logging setup.
package log
