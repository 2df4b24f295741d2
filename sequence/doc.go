// Package sequence composes codec primitives into records and arrays.
//
// Three traversals share the same failure semantics: fields are processed
// in declaration order, the first failure stops the traversal, and nothing
// already written or read is rolled back.
//
// # Positional
//
// Each Field carries a FieldCodec bound to the caller's storage:
//
//	var id int32 = 12345
//	var active = true
//	fields := []sequence.Field{
//	    {Name: "id", Codec: sequence.Integer(&id, math.MinInt32, math.MaxInt32)},
//	    {Name: "active", Codec: sequence.Boolean(&active)},
//	}
//	err := sequence.Encode(c, fields)
//
// # Tagged
//
// Each Param pairs a pointer with a Kind and one Dispatcher picks the
// primitive. StandardEncoder and StandardDecoder cover every primitive kind:
//
//	params := []sequence.Param{{Value: &id, Kind: sequence.KindInteger}}
//	err := sequence.EncodeTagged(c, params, sequence.StandardEncoder)
//
// # Schema
//
// A Schema is an ordered list of Descriptors. Schema.Encode and
// Schema.Decode move a Record through one generic traversal and report
// failures with the field path, e.g. "readings.[2].value".
//
// SequenceOf handles counted homogeneous arrays over caller-sized storage.
package sequence
