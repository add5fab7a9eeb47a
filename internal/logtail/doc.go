// Package logtail reads the end of the application log for the in-app log
// overlay.
//
// Read keeps a ring buffer of maxLines while scanning the file once, so
// memory stays bounded no matter how large the log grows. A missing file is
// not an error; the logger may not have written anything yet.
//
// Parse decodes the JSON lines written by the zap file logger into an Entry
// with the time, level, message and any extra fields. Lines that are not
// JSON objects pass through as plain messages.
package logtail
