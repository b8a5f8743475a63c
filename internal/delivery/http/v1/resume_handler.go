package v1

import (
	"net/http"

	"go-candidate-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ResumeHandler struct {
	resumeUC domain.ResumeUsecase
}

func NewResumeHandler(r *gin.RouterGroup, resumeUC domain.ResumeUsecase) {
	handler := &ResumeHandler{resumeUC: resumeUC}

	resumes := r.Group("/resumes")
	{
		resumes.POST("", handler.Create)
		resumes.GET("", handler.List)
		resumes.GET("/:id", handler.Get)
		resumes.PATCH("/:id", handler.Update)
		resumes.PUT("/:id", handler.Update)
		resumes.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create a resume
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        resume  body      domain.ResumeInput  true  "Resume JSON"
// @Success      201     {object}  domain.Resume
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response  "Candidate not found"
// @Router       /resumes [post]
func (h *ResumeHandler) Create(c *gin.Context) {
	var req domain.ResumeInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	resume, err := h.resumeUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, resume)
}

// List godoc
// @Summary      List resumes
// @Tags         resumes
// @Produce      json
// @Param        skip   query     int  false  "Number of resumes to skip"  default(0)
// @Param        limit  query     int  false  "Maximum number of resumes"  default(100)
// @Success      200    {array}   domain.Resume
// @Failure      400    {object}  response.Response
// @Router       /resumes [get]
func (h *ResumeHandler) List(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		c.Error(err)
		return
	}

	resumes, err := h.resumeUC.List(c.Request.Context(), page)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resumes)
}

// Get godoc
// @Summary      Get a resume
// @Tags         resumes
// @Produce      json
// @Param        id   path      int  true  "Resume ID"
// @Success      200  {object}  domain.Resume
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [get]
func (h *ResumeHandler) Get(c *gin.Context) {
	id, err := parseID(c, "resume")
	if err != nil {
		c.Error(err)
		return
	}

	resume, err := h.resumeUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resume)
}

// Update godoc
// @Summary      Update a resume
// @Description  Changes title and/or file_url. The owning candidate cannot change.
// @Tags         resumes
// @Accept       json
// @Produce      json
// @Param        id      path      int                 true  "Resume ID"
// @Param        resume  body      domain.ResumePatch  true  "Fields to change"
// @Success      200     {object}  domain.Resume
// @Failure      400     {object}  response.Response
// @Failure      404     {object}  response.Response
// @Router       /resumes/{id} [patch]
// @Router       /resumes/{id} [put]
func (h *ResumeHandler) Update(c *gin.Context) {
	id, err := parseID(c, "resume")
	if err != nil {
		c.Error(err)
		return
	}

	var patch domain.ResumePatch
	if err := bindJSON(c, &patch); err != nil {
		c.Error(err)
		return
	}

	resume, err := h.resumeUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, resume)
}

// Delete godoc
// @Summary      Delete a resume
// @Tags         resumes
// @Param        id   path  int  true  "Resume ID"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /resumes/{id} [delete]
func (h *ResumeHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "resume")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.resumeUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
