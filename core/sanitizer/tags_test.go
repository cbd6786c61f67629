package sanitizer_test

import (
	"errors"
	"testing"

	"github.com/biblio2ie/biblio/core/sanitizer"
)

func TestSanitizeStruct(t *testing.T) {
	type address struct {
		City string `sanitize:"single_line"`
	}
	type form struct {
		Email   string   `sanitize:"email"`
		Title   string   `sanitize:"single_line,strip_html"`
		Comment string   `sanitize:"multi_line,max:12"`
		Tags    []string `sanitize:"trim_lower"`
		NoTag   string
		Skip    string `sanitize:"-"`
		Home    address
		Work    *address
		secret  string `sanitize:"trim"`
	}

	in := form{
		Email:   "  Awa.Diallo@2IE.edu ",
		Title:   "  Les <b>Misérables</b>\n tome 1 ",
		Comment: "\x00Très bien\r\n\r\n\r\nà lire",
		Tags:    []string{" Roman ", "HISTOIRE"},
		NoTag:   "  untouched  ",
		Skip:    "  skipped  ",
		Home:    address{City: " Ouaga\ndougou "},
		Work:    &address{City: "  Bobo  "},
		secret:  "  hidden  ",
	}
	if err := sanitizer.SanitizeStruct(&in); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	checks := []struct {
		field, got, want string
	}{
		{"Email", in.Email, "awa.diallo@2ie.edu"},
		{"Title", in.Title, "Les Misérables tome 1"},
		{"Comment", in.Comment, "Très bien\n\nà"},
		{"Tags[0]", in.Tags[0], "roman"},
		{"Tags[1]", in.Tags[1], "histoire"},
		{"NoTag", in.NoTag, "  untouched  "},
		{"Skip", in.Skip, "  skipped  "},
		{"Home.City", in.Home.City, "Ouaga dougou"},
		{"Work.City", in.Work.City, "Bobo"},
		{"secret", in.secret, "  hidden  "},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %q, want %q", c.field, c.got, c.want)
		}
	}
}

func TestSanitizeStruct_InvalidInput(t *testing.T) {
	var nilForm *struct{}
	for _, v := range []any{nil, "string", struct{}{}, nilForm} {
		if err := sanitizer.SanitizeStruct(v); !errors.Is(err, sanitizer.ErrNotStructPointer) {
			t.Errorf("SanitizeStruct(%T): got %v, want ErrNotStructPointer", v, err)
		}
	}
}

func TestRegisterSanitizer(t *testing.T) {
	sanitizer.RegisterSanitizer("isbn", func(s string) string {
		out := make([]rune, 0, len(s))
		for _, r := range s {
			if r >= '0' && r <= '9' {
				out = append(out, r)
			}
		}
		return string(out)
	})

	v := struct {
		ISBN string `sanitize:"isbn"`
	}{ISBN: "978-2-07-040850-4"}
	if err := sanitizer.SanitizeStruct(&v); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v.ISBN != "9782070408504" {
		t.Errorf("ISBN: got %q", v.ISBN)
	}
}

func TestStringHelpers(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"MaxLength keeps runes", func(s string) string { return sanitizer.MaxLength(s, 3) }, "élève", "élè"},
		{"StripHTML decodes entities", sanitizer.StripHTML, "<i>A &amp; B</i>", "A & B"},
		{"RemoveControlChars keeps newlines", sanitizer.RemoveControlChars, "a\x07b\nc", "ab\nc"},
		{"SingleLine", sanitizer.SingleLine, "a\r\n b", "a b"},
		{"MultiLine trims lines", sanitizer.MultiLine, "  a  \n  b  ", "a\nb"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}
