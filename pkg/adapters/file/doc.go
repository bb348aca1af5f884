// Package file loads origin command trees from declarative definition files.
//
// A definition file holds a list of commands:
//
//	commands:
//	  - name: give
//	    description: Hands out an item.
//	    requires: admin
//	    aliases: [g]
//	    children:
//	      - name: item
//	        type: word
//	        suggests: items
//	        executes: give
//	  - name: gift
//	    redirect: give
//
// A node with a type is an argument; otherwise it is a literal. Type, provider, action and permission
// names are resolved through tables supplied as options. YAML (.yaml, .yml), JSON with comments
// (.json, .jsonc) and TOML (.toml) are supported.
package file
