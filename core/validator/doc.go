// Package validator checks struct fields against `validate` tags and reports
// field-level errors suitable for inline form feedback.
//
//	type BookForm struct {
//		Title    string `form:"titre" validate:"min:3" message:"Le titre doit faire au moins 3 caractères."`
//		ImageURL string `form:"image_url" validate:"omitempty;url"`
//	}
//
//	if err := validator.ValidateStruct(&form); err != nil {
//		fields := validator.ExtractValidationErrors(err).Fields()
//	}
package validator
