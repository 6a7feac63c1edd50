package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ucetportal/campus-api/internal/core/domain"
	"github.com/ucetportal/campus-api/internal/core/ports"
)

// ContentHandler handles CRUD for one content collection. The collection
// decides which request schema applies and which payload field is rendered.
type ContentHandler struct {
	service    ports.ContentService
	collection string
}

func NewNewsHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service, collection: domain.CollectionNews}
}

func NewResourceHandler(service ports.ContentService) *ContentHandler {
	return &ContentHandler{service: service, collection: domain.CollectionResources}
}

// bindContent parses and validates the request body for this collection and
// returns the title and payload.
func (h *ContentHandler) bindContent(c echo.Context) (title, body string, err error) {
	if h.collection == domain.CollectionResources {
		var req resourceRequest
		if err := c.Bind(&req); err != nil {
			return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
		}
		if err := c.Validate(&req); err != nil {
			return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		return req.Title, req.Link, nil
	}

	var req newsRequest
	if err := c.Bind(&req); err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return "", "", echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return req.Title, req.Content, nil
}

// List returns all records, newest first.
//
// @Summary      List content records
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   contentResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Router       /admin/news [get]
func (h *ContentHandler) List(c echo.Context) error {
	records, err := h.service.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toContentListResponse(records, h.collection))
}

// Create persists a new record attributed to the authenticated admin.
//
// @Summary      Create a content record
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      newsRequest  true  "Record fields"
// @Success      201   {object}  contentResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Router       /admin/news [post]
func (h *ContentHandler) Create(c echo.Context) error {
	title, body, err := h.bindContent(c)
	if err != nil {
		return err
	}
	userID, username, err := ctxClaims(c)
	if err != nil {
		return err
	}

	created, err := h.service.Create(c.Request().Context(), ports.CreateContentInput{
		Title:       title,
		Body:        body,
		CreatorID:   userID,
		CreatorName: username,
	})
	if err != nil {
		if errors.Is(err, domain.ErrMissingFields) {
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusCreated, toContentResponse(created, h.collection))
}

// Update rewrites an existing record.
//
// @Summary      Update a content record
// @Tags         content
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Record id"
// @Param        body  body      newsRequest  true  "Record fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /admin/news/{id} [put]
func (h *ContentHandler) Update(c echo.Context) error {
	title, body, err := h.bindContent(c)
	if err != nil {
		return err
	}

	if err := h.service.Update(c.Request().Context(), c.Param("id"), title, body); err != nil {
		switch {
		case errors.Is(err, domain.ErrRecordNotFound):
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		case errors.Is(err, domain.ErrMissingFields):
			return c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error()})
		}
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: h.collection + " updated"})
}

// Delete removes a record by id.
//
// @Summary      Delete a content record
// @Tags         content
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Record id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  errorResponse
// @Router       /admin/news/{id} [delete]
func (h *ContentHandler) Delete(c echo.Context) error {
	if err := h.service.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return c.JSON(http.StatusNotFound, errorResponse{Error: err.Error()})
		}
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: h.collection + " deleted"})
}
