// Package berkshelf reads the Berkshelf configuration document
// (~/.berkshelf/config.json) that the doctor cross-checks against the knife
// settings. Comments and trailing commas are tolerated, and the document's
// shape is checked against an embedded JSON schema so a malformed file is
// reported issue by issue instead of failing the whole comparison.
package berkshelf
