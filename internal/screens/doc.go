// Package screens binds crew records to the generic table core. Each screen
// is a Board holding the canonical column list, sort, filter and highlight
// state for one record type, exposed to the UI and CLI through the
// non-generic Screen interface.
package screens
