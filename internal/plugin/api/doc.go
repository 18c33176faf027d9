// Package api provides the Lua API modules exposed to scripts as the "ks"
// module.
//
// Each module registers a table under a _ks_<name> global; InjectAll then
// gathers those tables into the ks module so scripts can write:
//
//	local ks = require("ks")
//
//	ks.cursor.set(1, 1)
//	ks.killring.run("killLine")
//	ks.killring.run("yank")
//	print(ks.killring.size(), ks.killring.top())
//
// Lines and columns, ring indexes and pointers are 1-based on the Lua side.
//
// # Modules
//
//   - buf: text(), line(n), line_count()
//   - cursor: get(), set(line, col[, line2, col2]), add(...)
//   - killring: size(), top(), entries(), pointer(), select(i),
//     run(action[, args])
package api
