package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"libraryhub/internal/http-api/apperr"
	"libraryhub/internal/http-api/dto"
	"libraryhub/internal/http-api/service"

	"github.com/gin-gonic/gin"
)

type BookHandler struct {
	svc service.BookService
}

func NewBookHandler(svc service.BookService) *BookHandler {
	return &BookHandler{svc: svc}
}

func (h *BookHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:bookId", h.Get)
	rg.PUT("/:bookId", h.Update)
}

func (h *BookHandler) Create(c *gin.Context) {
	var in dto.CreateBookDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure(apperr.Validation(err.Error())))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book := in.ToModel()
	if err := h.svc.Create(ctx, &book); err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Failure(err))
		return
	}
	c.JSON(http.StatusCreated, dto.Success("Book created successfully", book))
}

func (h *BookHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	in := service.ListBooksInput{
		Genre:  c.Query("filter"),
		SortBy: c.Query("sortBy"),
		Order:  c.Query("sort"),
	}
	if l := c.Query("limit"); l != "" {
		parsed, err := strconv.Atoi(l)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.Failure(apperr.Validation("invalid limit")))
			return
		}
		in.Limit = parsed
	}

	list, err := h.svc.List(ctx, in)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Failure(err))
		return
	}
	c.JSON(http.StatusOK, dto.Success("Books retrieved successfully", list))
}

func (h *BookHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure(apperr.Validation("invalid book id")))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.svc.GetByID(ctx, id)
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Failure(err))
		return
	}
	c.JSON(http.StatusOK, dto.Success("Book retrieved successfully", book))
}

func (h *BookHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("bookId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure(apperr.Validation("invalid book id")))
		return
	}

	var in dto.UpdateBookDTO
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, dto.Failure(apperr.Validation(err.Error())))
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	book, err := h.svc.Update(ctx, id, in.ToInput())
	if err != nil {
		c.JSON(apperr.HTTPStatus(err), dto.Failure(err))
		return
	}
	c.JSON(http.StatusOK, dto.Success("Book updated successfully", book))
}
