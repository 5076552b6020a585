// Package cli implements the taskio command-line client.
//
// Commands are built with cobra and talk to the server over gRPC through
// client.Client. A successful login is cached in a session file (0600) so
// later invocations reuse the tokens; rotated tokens are written back.
//
// Commands
//
//	signup, login, logout, whoami
//	list [--status S] [--tags a,b] [--mode any|all]
//	add <title> [--desc] [--due YYYY-MM-DD] [--priority] [--status] [--tags]
//	edit <id> [same flags] [--clear-due]
//	done <id>        toggles between Completed and To Do
//	rm <id>
//	tags
//	today [--date YYYY-MM-DD]
//	attach <id> <file>
//	board            interactive view
package cli
