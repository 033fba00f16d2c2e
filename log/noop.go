package log

type discard struct{}

// Discard returns a Logger that drops everything. It is the default of every
// gwf operation.
func Discard() Logger { return discard{} }

func (discard) Debug(string, ...Field) {}
func (discard) Info(string, ...Field) {}
func (discard) Warn(string, ...Field) {}
func (discard) Error(string, ...Field) {}
