// Package state implements hydration: recovering a live, typed object
// graph from the serialized payload embedded in a server-rendered page.
//
// The payload is a single JSON object carried by a reserved script
// element (see PayloadType) with three members:
//
//	{
//	  "ctx":  {"<node id>": {"R": "<region id>"}, ...},
//	  "objs": [<value>, ...],
//	  "subs": [["<node> <gen>", ...], ...]
//	}
//
// "ctx" maps component node ids to their region binding, "objs" is the
// object table in slot order, and "subs" is a stack of subscription
// groups consumed from the end as objects resume, so groups are written
// in reverse resume order.
//
// Every slot starts as an opaque host value. Resuming a slot decodes it
// into native storage, pops its subscription group, and installs the
// live cell back into the table so lexical-scope resolution can hand it
// to callbacks. Slot kinds form a closed set; resolving a slot as the
// wrong kind is a typed failure, never a cast.
package state
