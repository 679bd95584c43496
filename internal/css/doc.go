// Package css serializes a compiled rule set into stylesheet text.
//
// Serialization happens once, at the boundary. Each rule becomes one
// general-sibling selector chain over the root-row checkboxes (#t_<i>)
// ending at the target cell (.grid .r_<row>_c_<col>). The renderer only has
// to expose those identifiers; it never interprets the rules itself.
package css
