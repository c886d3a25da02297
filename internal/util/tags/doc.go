// Package tags provides consistent tagging for stack resources.
//
// Every taggable resource carries the stack tag, a Name tag holding its
// construct path and the user's tags. Keys use the vaultasg: prefix for
// namespacing. The builder renders tags as a key-sorted list so templates
// stay byte-stable.
package tags
