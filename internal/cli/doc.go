// Package cli defines the Cobra command tree for the knife-kitchen CLI. Each
// file in this package registers one top-level command (create, doctor,
// config, templates, version) with the root command. Commands load settings,
// delegate to internal packages and only handle flags and output.
package cli
