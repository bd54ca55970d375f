// Package logtail reads the tail of the stories log file for the in-app
// log view.
//
// Read keeps a ring buffer of maxLines entries while scanning the file
// once, so memory stays bounded by the number of lines requested rather
// than the file size. A missing file is not an error and yields no lines.
//
// Parse splits a zap console line (time, level, message, fields separated
// by tabs) so the UI can style each column:
//
//	2026-10-18T09:12:01.004Z	INFO	fetch succeeded	{"records": 2}
//
// Lines that are not in that shape, such as panic output, are returned
// with only Message set.
package logtail
