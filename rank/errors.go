package rank

import "fmt"

// ConfigError reports a problem with an objective configuration, detected
// before training begins (spec §7 "configuration error").
type ConfigError struct {
	Option  string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("rank: config error [%s]: %s", e.Option, e.Message)
}

func newConfigError(option, format string, args ...any) *ConfigError {
	return &ConfigError{Option: option, Message: fmt.Sprintf(format, args...)}
}

// DataError reports corrupt or inconsistent training data discovered while
// processing a specific query (spec §7 "data error" — a "fatal per-query
// assertion"). It is returned, never panicked, so the caller can abort
// training with the query identified.
type DataError struct {
	Query   int
	Doc     int
	Message string
}

func (e *DataError) Error() string {
	return fmt.Sprintf("rank: data error in query %d (doc %d): %s", e.Query, e.Doc, e.Message)
}

func newDataError(query, doc int, format string, args ...any) *DataError {
	return &DataError{Query: query, Doc: doc, Message: fmt.Sprintf(format, args...)}
}
