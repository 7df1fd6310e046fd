// Package verify sends formatted statements to a ClickHouse server and asks it
// to explain them.
//
// Formatting only moves whitespace between tokens, so a statement the server
// could explain before formatting must still be explainable afterwards. The
// check command uses a Client to prove this against a real server: either one
// named by a DSN or a temporary container from the docker package.
package verify
