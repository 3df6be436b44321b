package handlers

import (
	"errors"
	request "fieldservice/internal/adapter/http/dto/request"
	response "fieldservice/internal/adapter/http/dto/response"
	"fieldservice/internal/usecase"
	"fieldservice/pkg"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ActivityHandler serves the client activity timeline and task list.
type ActivityHandler struct {
	usecase usecase.IActivityUseCase
}

func NewActivityHandler(uc usecase.IActivityUseCase) *ActivityHandler {
	return &ActivityHandler{usecase: uc}
}

// @Summary  Log an activity
// @Tags     activities
// @Accept   json
// @Produce  json
// @Param    body  body  request.ActivityRequest  true  "activity"
// @Success  201  {object}  response.ActivityResponse
// @Failure  400  {object}  pkg.HTTPError
// @Router   /activities [post]
func (h *ActivityHandler) CreateActivity(c *gin.Context) {
	var payload request.ActivityRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest))
		return
	}
	a, err := payload.ToActivity()
	if err != nil {
		writeError(c, pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest))
		return
	}

	created, err := h.usecase.Create(c.Request.Context(), a)
	if err != nil {
		writeError(c, mapActivityError(err))
		return
	}
	c.JSON(http.StatusCreated, response.FromActivity(created))
}

// @Summary  List a client's activities
// @Tags     activities
// @Produce  json
// @Param    client_id  path  string  true  "client id"
// @Success  200  {array}  response.ActivityResponse
// @Router   /clients/{client_id}/activities [get]
func (h *ActivityHandler) ListClientActivities(c *gin.Context) {
	activities, err := h.usecase.ListByClient(c.Request.Context(), c.Param("client_id"))
	if err != nil {
		writeError(c, mapActivityError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromActivities(activities))
}

// @Summary  List pending tasks
// @Tags     activities
// @Produce  json
// @Success  200  {array}  response.ActivityResponse
// @Router   /activities/tasks/pending [get]
func (h *ActivityHandler) ListPendingTasks(c *gin.Context) {
	tasks, err := h.usecase.ListPendingTasks(c.Request.Context())
	if err != nil {
		writeError(c, mapActivityError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromActivities(tasks))
}

// @Summary  Complete a task
// @Tags     activities
// @Produce  json
// @Param    id  path  string  true  "activity id"
// @Success  200  {object}  response.ActivityResponse
// @Failure  404  {object}  pkg.HTTPError
// @Failure  409  {object}  pkg.HTTPError
// @Router   /activities/{id}/complete [post]
func (h *ActivityHandler) CompleteTask(c *gin.Context) {
	a, err := h.usecase.Complete(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, mapActivityError(err))
		return
	}
	c.JSON(http.StatusOK, response.FromActivity(a))
}

// @Summary  Delete an activity
// @Tags     activities
// @Param    id  path  string  true  "activity id"
// @Success  204
// @Failure  404  {object}  pkg.HTTPError
// @Router   /activities/{id} [delete]
func (h *ActivityHandler) DeleteActivity(c *gin.Context) {
	if err := h.usecase.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeError(c, mapActivityError(err))
		return
	}
	c.Status(http.StatusNoContent)
}

func mapActivityError(err error) *pkg.AppError {
	switch {
	case errors.Is(err, usecase.ErrInvalidActivityID), errors.Is(err, usecase.ErrInvalidActivityType),
		errors.Is(err, usecase.ErrInvalidActivityTitle), errors.Is(err, usecase.ErrActivityOwnerMissing),
		errors.Is(err, usecase.ErrInvalidClientID):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", err.Error(), http.StatusBadRequest)
	case errors.Is(err, usecase.ErrActivityNotFound):
		return pkg.NewDomainErrorSimple("ACTIVITY_NOT_FOUND", "Activity not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrActivityNotTask):
		return pkg.NewDomainErrorSimple("ACTIVITY_NOT_TASK", "Only tasks can be completed", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}
