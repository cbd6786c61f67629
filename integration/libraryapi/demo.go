package libraryapi

import "strings"

const placeholderCover = "/static/placeholder-book.svg"

// DemoBooks is the catalogue served when the backend is down and the demo
// fallback is enabled.
func DemoBooks() []Book {
	return []Book{
		{ID: 1, Title: "React pour les Pros", Author: "Jane Doe", Genre: "Technique", ImageURL: placeholderCover, Available: true},
		{ID: 2, Title: "Les secrets de Node.js", Author: "John Smith", Genre: "Technique", ImageURL: placeholderCover, Available: false},
		{ID: 3, Title: "L'art du CSS moderne", Author: "Alice Johnson", Genre: "Design", ImageURL: placeholderCover, Available: true},
		{ID: 4, Title: "Fondations de l'Informatique", Author: "Robert Martin", Genre: "Science", ImageURL: placeholderCover, Available: true},
	}
}

// FilterBooks applies f locally: case-insensitive substring match on title
// and author, exact genre.
func FilterBooks(books []Book, f BookFilter) []Book {
	out := make([]Book, 0, len(books))
	for _, b := range books {
		if f.Title != "" && !containsFold(b.Title, f.Title) {
			continue
		}
		if f.Author != "" && !containsFold(b.Author, f.Author) {
			continue
		}
		if f.Genre != "" && !strings.EqualFold(b.Genre, f.Genre) {
			continue
		}
		out = append(out, b)
	}
	return out
}

func containsFold(s, sub string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(sub))
}
