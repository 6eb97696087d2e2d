// Package commands defines the blogctl CLI and wires dependencies for subcommands.
//
// Commands
//
//   - login, register, logout, whoami   Manage the local session
//   - posts list|mine|show              Read posts, paginated newest first
//   - posts create|edit|delete          Change your own posts
//
// # Storage
//
// State lives in a file store under --home (default ~/.blogctl, or
// $BLOGCTL_HOME). Setting BLOGCTL_STORAGE_BACKEND=redis or mongo, with the
// matching BLOGCTL_REDIS_* / BLOGCTL_MONGO_* variables, points the CLI at the
// same storage a blogd instance uses.
package commands
