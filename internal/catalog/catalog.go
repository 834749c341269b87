package catalog

import (
	authorModel "bookstore-catalog/internal/domains/author/model"
	authorService "bookstore-catalog/internal/domains/author/service"
	bookModel "bookstore-catalog/internal/domains/book/model"
	bookService "bookstore-catalog/internal/domains/book/service"
	bookstoreModel "bookstore-catalog/internal/domains/bookstore/model"
	bookstoreService "bookstore-catalog/internal/domains/bookstore/service"
	categoryModel "bookstore-catalog/internal/domains/category/model"
	categoryService "bookstore-catalog/internal/domains/category/service"
	publisherModel "bookstore-catalog/internal/domains/publisher/model"
	publisherService "bookstore-catalog/internal/domains/publisher/service"
	reviewModel "bookstore-catalog/internal/domains/review/model"
	reviewService "bookstore-catalog/internal/domains/review/service"
	searchService "bookstore-catalog/internal/domains/search/service"
	userModel "bookstore-catalog/internal/domains/user/model"
	userService "bookstore-catalog/internal/domains/user/service"
	"bookstore-catalog/internal/infrastructure/store"
	"bookstore-catalog/internal/shared"
)

// Collections declares every collection the catalog persists, with the
// fields each store backend must keep unique or indexed.
func Collections() []store.CollectionSpec {
	return []store.CollectionSpec{
		{Name: authorModel.Collection, Unique: []string{"name"}},
		{Name: categoryModel.Collection, Unique: []string{"name"}},
		{Name: publisherModel.Collection, Unique: []string{"name"}},
		{Name: bookstoreModel.Collection, Unique: []string{"name"}},
		{
			Name:    bookModel.Collection,
			Unique:  []string{"name"},
			Indexed: []string{"author_id", "category_id", "publisher_id"},
		},
		{Name: userModel.Collection, Unique: []string{"email"}},
		{Name: reviewModel.Collection, Indexed: []string{"book_id", "created_by_id"}},
	}
}

type Options struct {
	BcryptCost int
	Clock      shared.Clock
}

// Services is every entity service plus the search dispatcher, all sharing
// one Gateway.
type Services struct {
	Authors     authorService.ServiceInterface
	Books       bookService.ServiceInterface
	Bookstores  bookstoreService.ServiceInterface
	Categories  categoryService.ServiceInterface
	Publishers  publisherService.ServiceInterface
	Reviews     reviewService.ServiceInterface
	ReviewStats reviewService.StatsInterface
	Users       userService.ServiceInterface
	Search      searchService.ServiceInterface
}

// New builds the services bottom-up. Books read authors and publishers
// through plain summary readers because both of those services depend on
// books in turn.
func New(gw store.Gateway, opts Options) *Services {
	s := &Services{}

	s.ReviewStats = reviewService.NewReviewStats(gw)
	s.Categories = categoryService.NewCategoryService(gw, opts.Clock)

	s.Books = bookService.NewBookService(gw, bookService.Lookups{
		Authors:    shared.NewSummaryReader(gw, authorModel.Collection, "name", authorModel.ErrAuthorNotFound),
		Categories: s.Categories,
		Publishers: shared.NewSummaryReader(gw, publisherModel.Collection, "name", publisherModel.ErrPublisherNotFound),
		Reviews:    s.ReviewStats,
	}, opts.Clock)

	s.Authors = authorService.NewAuthorService(gw, s.Books, opts.Clock)
	s.Publishers = publisherService.NewPublisherService(gw, s.Books, opts.Clock)
	s.Bookstores = bookstoreService.NewBookstoreService(gw, s.Books, opts.Clock)
	s.Users = userService.NewUserService(gw, s.ReviewStats, opts.BcryptCost, opts.Clock)
	s.Reviews = reviewService.NewReviewService(gw, s.Users, s.Books, opts.Clock)

	s.Search = searchService.NewSearchService(gw, map[string]searchService.Target{
		bookModel.Collection:      searchService.NewTarget(bookModel.Collection, []string{"name", "description"}, s.Books.Assemble),
		authorModel.Collection:    searchService.NewTarget(authorModel.Collection, []string{"name"}, s.Authors.Assemble),
		categoryModel.Collection:  searchService.NewTarget(categoryModel.Collection, []string{"name", "description"}, s.Categories.Assemble),
		reviewModel.Collection:    searchService.NewTarget(reviewModel.Collection, []string{"content"}, s.Reviews.Assemble),
		userModel.Collection:      searchService.NewTarget(userModel.Collection, []string{"name", "email", "phone_number"}, s.Users.Assemble),
		publisherModel.Collection: searchService.NewTarget(publisherModel.Collection, []string{"name", "location"}, s.Publishers.Assemble),
		bookstoreModel.Collection: searchService.NewTarget(bookstoreModel.Collection, []string{"name", "location"}, s.Bookstores.Assemble),
	})
	return s
}
