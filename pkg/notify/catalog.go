package notify

import (
	"net/http"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Key identifies a catalogue message.
type Key string

const (
	LoginSucceeded      Key = "login.succeeded"
	Welcome             Key = "login.welcome"
	LoginFailed         Key = "login.failed"
	BadCredentials      Key = "login.bad_credentials"
	LoginRequired       Key = "login.required"
	LoggedOut           Key = "logout.done"
	RegisterSucceeded   Key = "register.succeeded"
	RegisterNext        Key = "register.next"
	RegisterFailed      Key = "register.failed"
	EmailMaybeTaken     Key = "register.email_taken"
	BorrowLoginRequired Key = "borrow.login_required"
	BorrowSucceeded     Key = "borrow.succeeded"
	BorrowFailed        Key = "borrow.failed"
	ReviewAdded         Key = "review.added"
	ReviewFailed        Key = "review.failed"
	MyBorrowsFailed     Key = "borrows.mine_failed"
	AllBorrowsFailed    Key = "borrows.all_failed"
	StudentsFailed      Key = "students.failed"
	ReturnSucceeded     Key = "return.succeeded"
	ReturnFailed        Key = "return.failed"
	BookCreated         Key = "book.created"
	BookUpdated         Key = "book.updated"
	BookDeleted         Key = "book.deleted"
	StudentUpdated      Key = "student.updated"
	StudentDeleted      Key = "student.deleted"
	DeleteFailed        Key = "delete.failed"
	SaveFailed          Key = "save.failed"
	Unexpected          Key = "generic.unexpected"
	Success             Key = "generic.success"
	Failure             Key = "generic.failure"
)

var messages = map[language.Tag]map[Key]string{
	language.French: {
		LoginSucceeded:      "Connexion réussie",
		Welcome:             "Bienvenue, %s !",
		LoginFailed:         "Erreur de connexion",
		BadCredentials:      "L'email ou le mot de passe est incorrect.",
		LoginRequired:       "Veuillez vous connecter pour accéder à cette page.",
		LoggedOut:           "Vous êtes déconnecté.",
		RegisterSucceeded:   "Inscription réussie !",
		RegisterNext:        "Vous pouvez maintenant vous connecter.",
		RegisterFailed:      "Erreur d'inscription",
		EmailMaybeTaken:     "Cet email est peut-être déjà utilisé. Veuillez réessayer.",
		BorrowLoginRequired: "Veuillez vous connecter pour emprunter un livre.",
		BorrowSucceeded:     "Livre emprunté avec succès !",
		BorrowFailed:        "Erreur lors de l'emprunt",
		ReviewAdded:         "Merci pour votre avis !",
		ReviewFailed:        "Impossible d'ajouter votre avis.",
		MyBorrowsFailed:     "Impossible de charger vos emprunts.",
		AllBorrowsFailed:    "Impossible de charger les emprunts.",
		StudentsFailed:      "Impossible de charger la liste des étudiants.",
		ReturnSucceeded:     "Livre marqué comme retourné !",
		ReturnFailed:        "Erreur lors du retour du livre.",
		BookCreated:         "Livre ajouté avec succès !",
		BookUpdated:         "Livre mis à jour avec succès !",
		BookDeleted:         "Livre supprimé avec succès !",
		StudentUpdated:      "Étudiant mis à jour avec succès !",
		StudentDeleted:      "Étudiant supprimé avec succès !",
		DeleteFailed:        "Erreur lors de la suppression.",
		SaveFailed:          "Erreur lors de l'enregistrement.",
		Unexpected:          "Une erreur est survenue.",
		Success:             "Succès",
		Failure:             "Erreur",
	},
	language.English: {
		LoginSucceeded:      "Signed in",
		Welcome:             "Welcome, %s!",
		LoginFailed:         "Sign-in error",
		BadCredentials:      "The email or password is incorrect.",
		LoginRequired:       "Please sign in to access this page.",
		LoggedOut:           "You are signed out.",
		RegisterSucceeded:   "Registration complete!",
		RegisterNext:        "You can now sign in.",
		RegisterFailed:      "Registration error",
		EmailMaybeTaken:     "This email may already be in use. Please try again.",
		BorrowLoginRequired: "Please sign in to borrow a book.",
		BorrowSucceeded:     "Book borrowed!",
		BorrowFailed:        "Borrowing failed",
		ReviewAdded:         "Thanks for your review!",
		ReviewFailed:        "Your review could not be added.",
		MyBorrowsFailed:     "Could not load your loans.",
		AllBorrowsFailed:    "Could not load the loans.",
		StudentsFailed:      "Could not load the student list.",
		ReturnSucceeded:     "Book marked as returned!",
		ReturnFailed:        "Could not return the book.",
		BookCreated:         "Book added!",
		BookUpdated:         "Book updated!",
		BookDeleted:         "Book deleted!",
		StudentUpdated:      "Student updated!",
		StudentDeleted:      "Student deleted!",
		DeleteFailed:        "Deletion failed.",
		SaveFailed:          "Saving failed.",
		Unexpected:          "Something went wrong.",
		Success:             "Success",
		Failure:             "Error",
	},
}

var (
	supported = []language.Tag{language.French, language.English}
	matcher   = language.NewMatcher(supported)
	texts     = buildCatalog()
)

func buildCatalog() catalog.Catalog {
	b := catalog.NewBuilder(catalog.Fallback(language.French))
	for tag, msgs := range messages {
		for key, msg := range msgs {
			if err := b.SetString(tag, string(key), msg); err != nil {
				panic("notify: invalid catalogue entry " + string(key) + ": " + err.Error())
			}
		}
	}
	return b
}

// Localizer builds texts and notifications in one language.
type Localizer struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLocalizer returns a Localizer for tag, falling back to French for
// unsupported languages.
func NewLocalizer(tag language.Tag) Localizer {
	_, idx, _ := matcher.Match(tag)
	tag = supported[idx]
	return Localizer{tag: tag, printer: message.NewPrinter(tag, message.Catalog(texts))}
}

// For picks the language from r's Accept-Language header.
func For(r *http.Request) Localizer {
	tags, _, err := language.ParseAcceptLanguage(r.Header.Get("Accept-Language"))
	if err != nil || len(tags) == 0 {
		return NewLocalizer(language.French)
	}
	_, idx, _ := matcher.Match(tags...)
	return NewLocalizer(supported[idx])
}

// Language returns the selected language.
func (l Localizer) Language() language.Tag { return l.tag }

// T formats the message for key.
func (l Localizer) T(key Key, args ...any) string {
	return l.printer.Sprintf(string(key), args...)
}

// Success builds a success notification titled with key.
func (l Localizer) Success(title Key, description string) Notification {
	return Notification{Kind: KindSuccess, Title: l.T(title), Description: description}
}

// Error builds an error notification titled with key.
func (l Localizer) Error(title Key, description string) Notification {
	return Notification{Kind: KindError, Title: l.T(title), Description: description}
}
