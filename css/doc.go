// Package css understands the subset of CSS slide templates use: inline style
// attributes, simple selectors of <style> elements and the value syntax of
// positions, pixel sizes and url() references.
package css
