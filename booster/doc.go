// Package booster implements gradient-boosted model handles for GoBoost.
//
// A Booster is an explicit handle to trained boosting state: either a tree
// ensemble or a linear model, selected by the "booster" training parameter.
// Every operation takes the handle it acts on; there is no global registry
// of loaded models.
//
// Alongside its trained parameters each handle carries an attribute store,
// a string key/value mapping for caller metadata. Attributes survive a
// Save/Load cycle byte for byte. The reserved "niter" attribute records the
// 0-based index of the final completed boosting round and is written
// automatically when training finishes.
//
// Tree-structure operations (text and JSON dumps of tree blocks, feature
// importance by split, gain, or cover) are only available on tree-ensemble
// handles and return an UnsupportedKindError for linear models.
package booster
