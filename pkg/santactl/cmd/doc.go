// Package cmd implements the cobra command tree for the santactl CLI,
// including subcommands for running a full Secret Santa draw-and-mail,
// offline pairing dry runs, roster validation, configuration, credential
// management, and shell completion.
package cmd
