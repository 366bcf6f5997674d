// Package modules contains the sample bots.
//
// Each subdirectory is a module implementing `module.Module` whose Register
// method stores its bot under registry.BotKey(name). Modules are listed in
// `internal/app/modules.go`; the server hosts the one named by BOT_NAME.
// New bots can be scaffolded with `botsample new-bot <name>`.
package modules
