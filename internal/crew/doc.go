// Package crew models the records behind the dashboard: vessels, seafarers,
// contracts, crew changes and P&I cases.
//
// Data reaches the rest of the application only through the Repository
// interface, so screens never depend on where records live. Load pulls a
// consistent Dataset snapshot from any Repository.
package crew
