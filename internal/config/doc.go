// Package config loads the knife settings shared by every command. Values
// come from a knife config file (.chef/knife.yaml in the working directory
// or any ancestor, then ~/.chef), KITCHEN_* environment variables and
// command-line flags, in increasing order of precedence, and are decoded into
// the typed Settings record. Keys the record does not name are ignored.
package config
