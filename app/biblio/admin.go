package biblio

import (
	"net/http"

	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/core/session"
	"github.com/biblio2ie/biblio/integration/libraryapi"
	"github.com/biblio2ie/biblio/pkg/notify"
)

const studentNotFoundMsg = "Étudiant introuvable."

type bookForm struct {
	ID     int64
	Input  libraryapi.BookInput
	Genres []string
}

type studentForm struct {
	ID    int64
	Input libraryapi.StudentInput
	Roles []session.Role
}

var roles = []session.Role{session.RoleStudent, session.RoleAdmin}

func (a *App) adminHome(*Context) handler.Response {
	return response.Redirect("/admin/livres")
}

func (a *App) adminBooks(ctx *Context) handler.Response {
	v := view{Title: "Gestion des livres"}
	books, err := a.api.ListBooks(ctx, libraryapi.BookFilter{})
	if err != nil {
		a.backendFailed(ctx, nil, "list books", err)
		loc := notify.For(ctx.Request())
		v.Notice = loc.Error(notify.Failure, loc.T(notify.Unexpected))
	}
	v.Data = books
	return a.render(ctx, "admin_books", http.StatusOK, v)
}

func (a *App) newBookForm(ctx *Context) handler.Response {
	return a.page(ctx, "admin_book_form", "Ajouter un livre", bookForm{Genres: libraryapi.Genres})
}

func (a *App) editBookForm(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(bookNotFoundMsg)
	}
	book, err := a.api.GetBook(ctx, id)
	if err != nil {
		a.backendFailed(ctx, nil, "get book", err)
		return backendError(err, bookNotFoundMsg)
	}
	return a.page(ctx, "admin_book_form", "Modifier le livre", bookForm{
		ID: id,
		Input: libraryapi.BookInput{
			Title:    book.Title,
			Author:   book.Author,
			Genre:    book.Genre,
			ImageURL: book.ImageURL,
		},
		Genres: libraryapi.Genres,
	})
}

func (a *App) createBook(ctx *Context) handler.Response {
	return a.saveBook(ctx, 0)
}

func (a *App) updateBook(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(bookNotFoundMsg)
	}
	return a.saveBook(ctx, id)
}

// saveBook creates the book when id is 0 and updates it otherwise.
func (a *App) saveBook(ctx *Context, id int64) handler.Response {
	title := "Ajouter un livre"
	if id != 0 {
		title = "Modifier le livre"
	}

	var in libraryapi.BookInput
	if err := bind(ctx, &in); err != nil {
		fields, resp := formFailure(err)
		if resp != nil {
			return resp
		}
		return a.render(ctx, "admin_book_form", http.StatusUnprocessableEntity, view{
			Title:  title,
			Errors: fields,
			Data:   bookForm{ID: id, Input: in, Genres: libraryapi.Genres},
		})
	}

	loc := notify.For(ctx.Request())
	store, snap := a.session(ctx)
	var err error
	done := notify.BookCreated
	if id == 0 {
		_, err = a.api.CreateBook(ctx, snap.Token, in)
	} else {
		_, err = a.api.UpdateBook(ctx, snap.Token, id, in)
		done = notify.BookUpdated
	}
	if err != nil {
		if a.backendFailed(ctx, store, "save book", err) {
			return a.sessionExpired(ctx)
		}
		return a.render(ctx, "admin_book_form", http.StatusOK, view{
			Title:  title,
			Notice: loc.Error(notify.Failure, libraryapi.Message(err, loc.T(notify.SaveFailed))),
			Data:   bookForm{ID: id, Input: in, Genres: libraryapi.Genres},
		})
	}
	return a.redirectWith("/admin/livres", loc.Success(notify.Success, loc.T(done)))
}

func (a *App) deleteBook(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(bookNotFoundMsg)
	}
	loc := notify.For(ctx.Request())
	store, snap := a.session(ctx)
	if err := a.api.DeleteBook(ctx, snap.Token, id); err != nil {
		if a.backendFailed(ctx, store, "delete book", err) {
			return a.sessionExpired(ctx)
		}
		return a.redirectWith("/admin/livres", loc.Error(notify.Failure, libraryapi.Message(err, loc.T(notify.DeleteFailed))))
	}
	return a.redirectWith("/admin/livres", loc.Success(notify.Success, loc.T(notify.BookDeleted)))
}

func (a *App) adminStudents(ctx *Context) handler.Response {
	store, snap := a.session(ctx)
	v := view{Title: "Gestion des étudiants"}
	students, err := a.api.ListStudents(ctx, snap.Token)
	if err != nil {
		if a.backendFailed(ctx, store, "list students", err) {
			return a.sessionExpired(ctx)
		}
		loc := notify.For(ctx.Request())
		v.Notice = loc.Error(notify.Failure, loc.T(notify.StudentsFailed))
	}
	v.Data = students
	return a.render(ctx, "admin_students", http.StatusOK, v)
}

func (a *App) editStudentForm(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(studentNotFoundMsg)
	}
	store, snap := a.session(ctx)
	students, err := a.api.ListStudents(ctx, snap.Token)
	if err != nil {
		if a.backendFailed(ctx, store, "list students", err) {
			return a.sessionExpired(ctx)
		}
		return backendError(err, studentNotFoundMsg)
	}
	for _, s := range students {
		if s.ID == id {
			return a.page(ctx, "admin_student_form", "Modifier l'étudiant", studentForm{
				ID:    id,
				Input: libraryapi.StudentInput{Name: s.Name, Email: s.Email, Role: s.Role},
				Roles: roles,
			})
		}
	}
	return notFound(studentNotFoundMsg)
}

func (a *App) updateStudent(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(studentNotFoundMsg)
	}

	var in libraryapi.StudentInput
	if err := bind(ctx, &in); err != nil {
		fields, resp := formFailure(err)
		if resp != nil {
			return resp
		}
		return a.render(ctx, "admin_student_form", http.StatusUnprocessableEntity, view{
			Title:  "Modifier l'étudiant",
			Errors: fields,
			Data:   studentForm{ID: id, Input: in, Roles: roles},
		})
	}

	loc := notify.For(ctx.Request())
	store, snap := a.session(ctx)
	if err := a.api.UpdateStudent(ctx, snap.Token, id, in); err != nil {
		if a.backendFailed(ctx, store, "update student", err) {
			return a.sessionExpired(ctx)
		}
		return a.render(ctx, "admin_student_form", http.StatusOK, view{
			Title:  "Modifier l'étudiant",
			Notice: loc.Error(notify.Failure, libraryapi.Message(err, loc.T(notify.SaveFailed))),
			Data:   studentForm{ID: id, Input: in, Roles: roles},
		})
	}
	return a.redirectWith("/admin/etudiants", loc.Success(notify.Success, loc.T(notify.StudentUpdated)))
}

func (a *App) deleteStudent(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(studentNotFoundMsg)
	}
	loc := notify.For(ctx.Request())
	store, snap := a.session(ctx)
	if err := a.api.DeleteStudent(ctx, snap.Token, id); err != nil {
		if a.backendFailed(ctx, store, "delete student", err) {
			return a.sessionExpired(ctx)
		}
		return a.redirectWith("/admin/etudiants", loc.Error(notify.Failure, libraryapi.Message(err, loc.T(notify.DeleteFailed))))
	}
	return a.redirectWith("/admin/etudiants", loc.Success(notify.Success, loc.T(notify.StudentDeleted)))
}

func (a *App) adminBorrows(ctx *Context) handler.Response {
	store, snap := a.session(ctx)
	v := view{Title: "Gestion des emprunts"}
	borrows, err := a.api.AllBorrows(ctx, snap.Token)
	if err != nil {
		if a.backendFailed(ctx, store, "all borrows", err) {
			return a.sessionExpired(ctx)
		}
		loc := notify.For(ctx.Request())
		v.Notice = loc.Error(notify.Failure, loc.T(notify.AllBorrowsFailed))
	}
	v.Data = borrows
	return a.render(ctx, "admin_borrows", http.StatusOK, v)
}

func (a *App) returnBorrow(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound("Emprunt introuvable.")
	}
	loc := notify.For(ctx.Request())
	store, snap := a.session(ctx)
	if err := a.api.ReturnBorrow(ctx, snap.Token, id); err != nil {
		if a.backendFailed(ctx, store, "return borrow", err) {
			return a.sessionExpired(ctx)
		}
		return a.redirectWith("/admin/emprunts", loc.Error(notify.Failure, loc.T(notify.ReturnFailed)))
	}
	return a.redirectWith("/admin/emprunts", loc.Success(notify.Success, loc.T(notify.ReturnSucceeded)))
}
