// Package doctor audits a workstation for cookbook development. It runs a
// fixed, ordered list of sections (knife config location, chef basics,
// authorship, keys, proxies, git/Gerrit, Vagrant, Berkshelf) and prints an
// OK or WARN line per check. Checks never depend on each other's outcome.
// Only a missing or unreadable knife config file stops the run.
package doctor
