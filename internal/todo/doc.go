// Package todo owns the ordered task list and its round-trip to durable storage.
//
// The list is persisted under a single storage key (default "todos") as a
// compact JSON array, one record per task, in insertion order:
//
//	[
//	  {"id": 1735689600000, "text": "Buy milk", "completed": false},
//	  {"id": 1735689600001, "text": "Call Bob", "completed": true}
//	]
//
// # Loading
//
// Load never fails. A missing value yields an empty list. A value that does
// not decode as an array of records also yields an empty list; the next
// mutation overwrites it. Records that decode but are incomplete (for
// example a record without "completed") are kept as decoded, with zero
// values for the missing fields. ValidateValue reports such records without
// changing them.
//
// # Mutations
//
// Add, Toggle and Delete change the in-memory list first and then write the
// whole list back with one Set call. When that write fails the in-memory
// change stands and the failure is returned as a *PersistError.
//
// # IDs
//
// IDs come from an IDGenerator. The default ClockIDs uses wall-clock
// milliseconds and bumps past the previous value when the clock has not
// moved. Load seeds the generator with the largest stored id so new ids
// always sort after existing ones.
package todo
