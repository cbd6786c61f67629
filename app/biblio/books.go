package biblio

import (
	"net/http"
	"strconv"

	"github.com/biblio2ie/biblio/core/binder"
	"github.com/biblio2ie/biblio/core/handler"
	"github.com/biblio2ie/biblio/core/response"
	"github.com/biblio2ie/biblio/integration/libraryapi"
	"github.com/biblio2ie/biblio/pkg/notify"
)

const (
	homeShelfSize   = 4
	bookNotFoundMsg = "Livre non trouvé."
)

type catalogueData struct {
	Filter libraryapi.BookFilter
	Genres []string
	Books  []libraryapi.Book
}

type bookData struct {
	Book    libraryapi.Book
	Reviews []libraryapi.Review
	Ratings []int
	Review  libraryapi.ReviewInput
}

func (a *App) home(ctx *Context) handler.Response {
	books, err := a.api.ListBooks(ctx, libraryapi.BookFilter{})
	if err != nil {
		a.backendFailed(ctx, nil, "list books", err)
	}
	if len(books) > homeShelfSize {
		books = books[:homeShelfSize]
	}
	return a.page(ctx, "home", "", books)
}

func (a *App) catalogue(ctx *Context) handler.Response {
	var filter libraryapi.BookFilter
	if err := binder.Query()(ctx.Request(), &filter); err != nil {
		return response.Error(response.ErrBadRequest.WithError(err))
	}

	v := view{Title: "Catalogue"}
	books, err := a.api.ListBooks(ctx, filter)
	if err != nil {
		a.backendFailed(ctx, nil, "list books", err)
		loc := notify.For(ctx.Request())
		v.Notice = loc.Error(notify.Failure, loc.T(notify.Unexpected))
	}
	v.Data = catalogueData{Filter: filter, Genres: libraryapi.Genres, Books: books}
	return a.render(ctx, "catalogue", http.StatusOK, v)
}

func (a *App) loadBook(ctx *Context, id int64) (bookData, error) {
	book, err := a.api.GetBook(ctx, id)
	if err != nil {
		return bookData{}, err
	}
	reviews, err := a.api.ListReviews(ctx, id)
	if err != nil {
		a.backendFailed(ctx, nil, "list reviews", err)
	}
	return bookData{
		Book:    book,
		Reviews: reviews,
		Ratings: []int{5, 4, 3, 2, 1},
		Review:  libraryapi.ReviewInput{Rating: 5},
	}, nil
}

func (a *App) bookDetails(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(bookNotFoundMsg)
	}
	data, err := a.loadBook(ctx, id)
	if err != nil {
		a.backendFailed(ctx, nil, "get book", err)
		return backendError(err, bookNotFoundMsg)
	}
	return a.page(ctx, "book", data.Book.Title, data)
}

func (a *App) borrowBook(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(bookNotFoundMsg)
	}
	loc := notify.For(ctx.Request())
	store, snap := a.session(ctx)
	if !snap.IsAuthenticated() {
		return a.redirectWith("/connexion", loc.Error(notify.Failure, loc.T(notify.BorrowLoginRequired)))
	}

	back := "/livres/" + strconv.FormatInt(id, 10)
	if err := a.api.Borrow(ctx, snap.Token, id); err != nil {
		if a.backendFailed(ctx, store, "borrow", err) {
			return a.sessionExpired(ctx)
		}
		return a.redirectWith(back, loc.Error(notify.BorrowFailed, libraryapi.Message(err, loc.T(notify.Unexpected))))
	}
	return a.redirectWith(back, loc.Success(notify.Success, loc.T(notify.BorrowSucceeded)))
}

func (a *App) addReview(ctx *Context) handler.Response {
	id, err := pathID(ctx)
	if err != nil {
		return notFound(bookNotFoundMsg)
	}
	loc := notify.For(ctx.Request())
	store, snap := a.session(ctx)
	if !snap.IsAuthenticated() {
		return a.redirectWith("/connexion", loc.Error(notify.Failure, loc.T(notify.LoginRequired)))
	}

	var in libraryapi.ReviewInput
	if err := bind(ctx, &in); err != nil {
		fields, resp := formFailure(err)
		if resp != nil {
			return resp
		}
		data, err := a.loadBook(ctx, id)
		if err != nil {
			a.backendFailed(ctx, store, "get book", err)
			return backendError(err, bookNotFoundMsg)
		}
		data.Review = in
		return a.render(ctx, "book", http.StatusUnprocessableEntity, view{Title: data.Book.Title, Errors: fields, Data: data})
	}

	back := "/livres/" + strconv.FormatInt(id, 10)
	if _, err := a.api.AddReview(ctx, snap.Token, id, in); err != nil {
		if a.backendFailed(ctx, store, "add review", err) {
			return a.sessionExpired(ctx)
		}
		return a.redirectWith(back, loc.Error(notify.ReviewFailed, libraryapi.Message(err, loc.T(notify.Unexpected))))
	}
	return a.redirectWith(back, loc.Success(notify.Success, loc.T(notify.ReviewAdded)))
}
