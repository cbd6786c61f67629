package libraryapi

import "github.com/biblio2ie/biblio/core/session"

// Genres offered by the catalogue filter.
var Genres = []string{"Roman", "Science-Fiction", "Histoire", "Biographie", "Technique"}

type Book struct {
	ID        int64  `json:"id"`
	Title     string `json:"titre"`
	Author    string `json:"auteur"`
	Genre     string `json:"genre"`
	ImageURL  string `json:"image_url"`
	Available bool   `json:"disponible"`
}

// BookInput is the body of create and update calls.
type BookInput struct {
	Title    string `json:"titre" form:"titre" sanitize:"single_line,strip_html" validate:"required;min:3" message:"Le titre doit faire au moins 3 caractères"`
	Author   string `json:"auteur" form:"auteur" sanitize:"single_line,strip_html" validate:"required;min:3" message:"L'auteur doit faire au moins 3 caractères"`
	Genre    string `json:"genre" form:"genre" sanitize:"single_line,strip_html" validate:"required;min:2" message:"Le genre doit faire au moins 2 caractères"`
	ImageURL string `json:"image_url" form:"image_url" sanitize:"trim" validate:"omitempty;url" message:"Veuillez entrer une URL valide"`
}

// BookFilter narrows the catalogue. Empty fields are not sent.
type BookFilter struct {
	Title  string `query:"titre"`
	Author string `query:"auteur"`
	Genre  string `query:"genre"`
}

type Review struct {
	ID          int64  `json:"id"`
	Rating      int    `json:"note"`
	Comment     string `json:"commentaire"`
	CreatedAt   string `json:"date_creation"`
	StudentName string `json:"etudiant_nom"`
}

type ReviewInput struct {
	Rating  int    `json:"note" form:"note" validate:"between:1,5" message:"La note doit être comprise entre 1 et 5"`
	Comment string `json:"commentaire" form:"commentaire" sanitize:"multi_line,strip_html,max:1000"`
}

// Borrow is a loan record. Student lists carry Title, admin lists BookTitle.
type Borrow struct {
	ID          int64  `json:"id"`
	Title       string `json:"titre,omitempty"`
	BookTitle   string `json:"livre_titre,omitempty"`
	Author      string `json:"auteur,omitempty"`
	StudentName string `json:"etudiant_nom,omitempty"`
	BorrowedAt  string `json:"date_emprunt"`
	DueAt       string `json:"date_retour_prevue"`
	ReturnedAt  string `json:"date_retour_effective,omitempty"`
}

// DisplayTitle returns whichever title field the endpoint filled.
func (b Borrow) DisplayTitle() string {
	if b.Title != "" {
		return b.Title
	}
	return b.BookTitle
}

// Returned reports whether the book came back.
func (b Borrow) Returned() bool {
	return b.ReturnedAt != ""
}

// Student is a user as listed by the admin endpoints.
type Student struct {
	session.User
	CreatedAt string `json:"date_creation,omitempty"`
}

type StudentInput struct {
	Name  string       `json:"nom" form:"nom" sanitize:"single_line,strip_html" validate:"required;min:2" message:"Le nom doit faire au moins 2 caractères"`
	Email string       `json:"email" form:"email" sanitize:"email" validate:"required;email" message:"Adresse email invalide"`
	Role  session.Role `json:"role" form:"role" sanitize:"trim_lower" validate:"in:etudiant,admin" message:"Rôle invalide"`
}

type Credentials struct {
	Email    string `json:"email" form:"email" sanitize:"email" validate:"required;email" message:"Adresse email invalide"`
	Password string `json:"password" form:"password" validate:"required" message:"Le mot de passe ne peut pas être vide"`
}

type Registration struct {
	Name     string `json:"nom" form:"nom" sanitize:"single_line,strip_html" validate:"required;min:2" message:"Le nom doit faire au moins 2 caractères"`
	Email    string `json:"email" form:"email" sanitize:"email" validate:"required;email" message:"Veuillez entrer une adresse email valide"`
	Password string `json:"password" form:"password" validate:"required;min:6" message:"Le mot de passe doit contenir au moins 6 caractères"`
}

// LoginResult is the answer of POST /auth/login.
type LoginResult struct {
	Token string       `json:"token"`
	User  session.User `json:"user"`
}
