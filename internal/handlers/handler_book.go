package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	portssvc "github.com/bookshare/bookshare_backend/internal/core/ports/services"
	"github.com/bookshare/bookshare_backend/internal/dto"
	"github.com/bookshare/bookshare_backend/internal/middleware"
	"github.com/bookshare/bookshare_backend/internal/platform/storage"
	"github.com/gin-gonic/gin"
)

const (
	defaultListLimit = 50
	maxListLimit     = 100
)

// BookHandler handles book upload and browsing requests.
type BookHandler struct {
	bookService portssvc.BookSvcFacade
	store       *storage.LocalStorage
}

// NewBookHandler creates a new BookHandler.
func NewBookHandler(bs portssvc.BookSvcFacade, store *storage.LocalStorage) *BookHandler {
	return &BookHandler{
		bookService: bs,
		store:       store,
	}
}

// registerBookRoutes sets up the book routes. Browsing is public, uploading
// requires authentication.
func registerBookRoutes(api *gin.RouterGroup, authRequired gin.HandlerFunc, bs portssvc.BookSvcFacade, store *storage.LocalStorage) {
	h := NewBookHandler(bs, store)

	books := api.Group("/books")
	{
		books.GET("", h.ListBooks)
		books.GET("/:bookId", h.GetBook)
		books.POST("", authRequired, h.CreateBook)
	}
}

// CreateBook godoc
// @Summary Upload a book
// @Description Stores the uploaded PDF on disk and persists the book metadata.
// @Tags books
// @Accept multipart/form-data
// @Produce json
// @Param title formData string true "Book title"
// @Param author formData string false "Author"
// @Param description formData string false "Description"
// @Param tags formData string false "Comma-separated tags"
// @Param pdf formData file true "PDF file"
// @Success 201 {object} dto.CreatedBookResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /api/books [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	var req dto.CreateBookRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Invalid form data"})
		return
	}

	fileHeader, err := c.FormFile("pdf")
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "PDF file is required"})
		return
	}
	if !storage.IsPDF(fileHeader.Filename, fileHeader.Header.Get("Content-Type")) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "Only PDF uploads are accepted"})
		return
	}

	src, err := fileHeader.Open()
	if err != nil {
		logger.Error("Failed to open uploaded file", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to read upload"})
		return
	}
	defer src.Close()

	pdfPath, err := h.store.SavePDF(fileHeader.Filename, src)
	if err != nil {
		logger.Error("Failed to store uploaded PDF", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Message: "Failed to store upload"})
		return
	}

	book, err := h.bookService.CreateBook(ctx, userID, req, pdfPath)
	if err != nil {
		// Compensating cleanup so a failed metadata insert does not leave
		// an orphaned file on disk.
		if rmErr := h.store.Remove(pdfPath); rmErr != nil {
			logger.Warn("Failed to remove orphaned upload", slog.String("path", pdfPath), slog.String("error", rmErr.Error()))
		}
		respondServiceError(c, err)
		return
	}

	logger.Info("Book created", slog.String("book_id", book.BookID), slog.String("user_id", userID))
	c.JSON(http.StatusCreated, gin.H{
		"message": "Book uploaded",
		"book":    dto.ToCreatedBookResponse(book),
	})
}

// ListBooks godoc
// @Summary List books
// @Description Returns visible books, newest first.
// @Tags books
// @Produce json
// @Param limit query int false "Page size (max 100)"
// @Param offset query int false "Offset"
// @Success 200 {object} dto.ListBooksResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/books [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultListLimit)))
	if err != nil || limit <= 0 || limit > maxListLimit {
		limit = defaultListLimit
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	books, err := h.bookService.ListBooks(c.Request.Context(), limit, offset)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToListBooksResponse(books))
}

// GetBook godoc
// @Summary Get a book
// @Description Returns a single visible book by id.
// @Tags books
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 200 {object} dto.BookResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /api/books/{bookId} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	book, err := h.bookService.GetBookByID(c.Request.Context(), c.Param("bookId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": dto.ToBookResponse(*book)})
}
