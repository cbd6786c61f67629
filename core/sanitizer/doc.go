// Package sanitizer cleans user input before it is validated.
//
// Struct fields opt in with a `sanitize` tag listing sanitizers separated by
// commas; they run left to right. "max:N" truncates to N runes.
//
//	type Registration struct {
//		Name  string `form:"nom" sanitize:"single_line,strip_html"`
//		Email string `form:"email" sanitize:"email"`
//	}
//
//	if err := sanitizer.SanitizeStruct(&reg); err != nil {
//		return err
//	}
//
// Nested structs and pointers to them are walked. Custom sanitizers can be
// added with RegisterSanitizer.
package sanitizer
