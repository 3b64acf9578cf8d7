// Package site models the static configuration record handed to the dumi
// documentation-site generator.
//
// Navigation entries are a closed sum type: a Node is either a Link (a leaf
// with a path) or a Group (a titled dropdown of Links, one level deep). The
// on-disk form carries no type tag, so Decode classifies every entry exactly
// once and reports entries that are neither or both as issues. Menus keep the
// order of their route keys so a decode/encode cycle reproduces the file.
package site
