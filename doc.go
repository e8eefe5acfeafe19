// Package dive provides type-polymorphic deep access into nested
// structures: keyed maps, indexed sequences, and objects exposing named
// accessors, mixed and nested to any depth.
//
// Given a root value and an ordered key list, the package locates,
// reads, probes, clears, or writes a slot arbitrarily deep in the
// structure. Writes create missing intermediate containers on the way
// down (vivification); reads and existence checks never do.
//
// # Quick Start
//
//	import "github.com/godive/dive"
//
//	s := map[string]any{
//	    "users": []any{
//	        map[string]any{"name": "Ada"},
//	    },
//	}
//
//	name, ok, err := dive.Get(s, dive.Ks("users", 0, "name")...)
//	// name == "Ada", ok == true
//
//	_, err = dive.Set(s, "Grace", dive.Ks("users", 1, "name")...)
//	// s["users"] now has a second entry, vivified as a map
//
// # Keys and Descriptors
//
// A plain key is interpreted by the runtime kind of the container it
// meets: a string against a map is a keyed lookup, an integer against a
// sequence is an index, a name against an object invokes the accessor
// of that name. Descriptor keys force one interpretation regardless of
// container kind:
//
//	dive.MapKey("0")     // keyed lookup even where an index would fit
//	dive.Index(3)        // sequence index; vivifies a sequence on write
//	dive.Method("Name")  // accessor call, one argument when writing
//	dive.Property("Age") // assignable property on a PropertyAccessor
//
// The forced kind also decides what a write vivifies: plain and MapKey
// steps create maps, Index steps create sequences. Methods and
// properties are never vivified; there is no way to conjure an object
// from a key alone, so writing through them against an absent value is
// an invocation error.
//
// # Absence versus Errors
//
// Missing links are answers, not failures: Get reports absent, Exists
// reports false, and neither mutates the structure. Only malformed
// paths fail, in two distinct ways. A TraversalError means the path
// demands descent into a defined, non-container value. An
// InvocationError means accessor-style dispatch hit the wrong kind of
// target: a method call on a non-object, a write that must replace a
// root not passed as *any, a vivification through a non-addressable
// accessor result. Callers probe freely without error handling and
// rely on genuinely broken paths surfacing loudly.
//
// # Assignable Roots
//
// Writes that replace the root itself require an assignable cell:
//
//	var root any
//	dive.Set(&root, 42, dive.K("foo"))  // root becomes map[string]any{"foo": 42}
//	dive.Set(&root, 42)                 // zero keys: root becomes 42
//
// Maps and slices passed directly work for all writes that mutate them
// in place; only root replacement (zero-key set, vivified root, growth
// of a root sequence) needs the *any form.
//
// # Deferred References
//
// At captures a (root, keys) pair without resolving it:
//
//	ref := dive.At(s, dive.Ks("users", 0, "name")...)
//	v, ok, err := ref.Get()   // resolved now, not at At time
//	_, err = ref.Set("Linus") // same path, write mode
//
// # Path Expressions
//
// ParsePath compiles "users[0].name" into a key list; the *Path entry
// points accept expressions directly and cache compilation per Diver:
//
//	v, ok, err := dive.GetPath(s, "users[0].name")
//
// # Configuration
//
// Package-level functions use a shared default Diver. New builds a
// configured one:
//
//	d := dive.New(
//	    dive.WithMaxDepth(32),
//	    dive.WithLogger(logger.New(os.Stderr, logger.LevelDebug)),
//	)
//	snap := d.Metrics().Snapshot()
//
// # Concurrency
//
// A Diver holds no per-call state and may be shared. The structures it
// walks are caller-owned: concurrent mutation of the same structure
// during a call is undefined behavior by contract.
package dive
