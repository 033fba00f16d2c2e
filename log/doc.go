// Package log provides the logging abstraction used by the frame reader and
// writer.
//
// The library never logs on its own account: callers pass a Logger through
// gwf.WithLogger, and the default is Discard. The zerolog adapter is what
// the gwf command line tool uses.
//
//	logger := log.NewZerologAdapter(zerolog.New(os.Stderr))
//	dict, err := gwf.Read(paths, channels, gwf.WithLogger(logger))
package log
