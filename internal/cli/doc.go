// Package cli implements the interactive command-line front end of the
// diary.
//
// # Overview
//
// The CLI is a small REPL over the state containers in package services.
// It is their only caller: every mutation a user can make goes through one
// of the commands below.
//
// Commands are gated by session state:
//
//	Locked:
//	  unlock                     enter the secret code (hidden input)
//
//	Unlocked, no profile:
//	  register                   create your profile
//	  login <user>               continue as an existing user
//	  reset                      wipe all local data
//
//	With a profile:
//	  post                       write an entry (optionally made cuter)
//	  feed | mine                timeline / your own journal
//	  show|like|comment|delete <entry-id>
//	  profile                    edit name and avatar
//	  admin                      enter the admin code (hidden input)
//	  friends | request <name> | accept <user-id>
//	  groups | discover [query] | newgroup | join <group-id>
//	  addmember <group-id> <user>
//	  chat [group-id] | say <group-id> <text>
//	  users | kick <user-id>     admin dashboard
//	  invite                     print an invite link
//	  login <user>               switch to another user
//	  signout | reset
//
//	Always: help, exit | quit
//
// # Messages
//
// A wrong code prints a short retry hint. Validation failures (an empty
// post, a blank name) are silently ignored. Refused actions print an
// "Error:" line. Storage problems are only logged.
package cli
