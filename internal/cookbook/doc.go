// Package cookbook generates the base layout of a new Chef cookbook
// (metadata, README, recipes, attributes and the conventional empty
// directories) inside the first configured cookbook path. The test-kitchen
// scaffold is rendered on top of this layout afterwards.
package cookbook
