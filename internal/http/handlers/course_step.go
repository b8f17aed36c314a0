package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http/middleware"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/http/response"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/content"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/render"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/modules/lesson/steps"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/platform/ctxutil"
	"github.com/projeto-v3l0z/v3l0z-academy-front-end/internal/services"
)

const maxContentBytes = 4 << 20

type CourseStepHandler struct {
	svc services.StepService
}

func NewCourseStepHandler(svc services.StepService) *CourseStepHandler {
	return &CourseStepHandler{svc: svc}
}

// GET /api/courses/:id/steps
func (h *CourseStepHandler) ListSteps(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_course_id", errors.New("invalid course id"))
		return
	}
	list, err := h.svc.ListSteps(c.Request.Context(), courseID)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, list)
}

// POST /api/teacher/courses/:id/steps
func (h *CourseStepHandler) CreateStep(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_course_id", errors.New("invalid course id"))
		return
	}
	var p steps.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	created, err := h.svc.CreateStep(c.Request.Context(), courseID, p)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PUT /api/teacher/steps/:id
func (h *CourseStepHandler) UpdateStep(c *gin.Context) {
	stepID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_step_id", errors.New("invalid step id"))
		return
	}
	var p steps.Payload
	if err := c.ShouldBindJSON(&p); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	updated, err := h.svc.UpdateStep(c.Request.Context(), stepID, p)
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, updated)
}

// GET /api/steps/:id/render
func (h *CourseStepHandler) RenderStep(c *gin.Context) {
	stepID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_step_id", errors.New("invalid step id"))
		return
	}
	out, err := h.svc.RenderStep(c.Request.Context(), stepID, renderOptions(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	c.Header("ETag", `"`+out.ContentHash+`"`)
	response.RespondOK(c, out)
}

// POST /api/render
//
// Accepts content in any stored shape: the canonical document, a legacy
// single-block or mixed body, or a bare string.
func (h *CourseStepHandler) RenderContent(c *gin.Context) {
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxContentBytes+1))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if len(raw) > maxContentBytes {
		response.RespondError(c, http.StatusRequestEntityTooLarge, "body_too_large", errors.New("content too large"))
		return
	}
	if !json.Valid(raw) {
		response.RespondError(c, http.StatusBadRequest, "invalid_body", errors.New("body is not valid JSON"))
		return
	}
	out, err := h.svc.RenderDocument(c.Request.Context(), content.Normalize(raw), renderOptions(c))
	if err != nil {
		response.RespondErr(c, err)
		return
	}
	response.RespondOK(c, out)
}

// Quiz answers are only revealed to teachers.
func renderOptions(c *gin.Context) render.Options {
	return render.Options{RevealAnswers: ctxutil.GetRole(c.Request.Context()) == middleware.RoleTeacher}
}
