// Package validation checks flat request input against pipe-separated rules.
//
//	v := validation.Make(map[string]string{
//	    "title": body.Title,
//	}, validation.Rules{
//	    "title": "required|max:200",
//	})
//
//	if v.Fails() {
//	    res.ValidationError(v.Errors())
//	}
//
// # Rules
//
//   - required: present and not blank
//   - sometimes: skip the field's remaining rules when it is absent or empty
//   - min:n, max:n: length bounds in UTF-8 characters
//   - integer, boolean (true/false/1/0/yes/no)
//   - in:a,b,c: one of the listed values
//   - uuid: a canonical or braced UUID
//
// An unknown rule name panics; rule lists are written by the programmer, not
// the client.
//
// Errors serialise as {"errors": {"field": ["message", ...]}}.
package validation
