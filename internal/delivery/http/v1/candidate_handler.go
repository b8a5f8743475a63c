package v1

import (
	"net/http"
	"strconv"
	"strings"

	"go-candidate-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
	exportUC    domain.ExportUsecase
}

func NewCandidateHandler(r *gin.RouterGroup, candidateUC domain.CandidateUsecase, exportUC domain.ExportUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC, exportUC: exportUC}

	candidates := r.Group("/candidates")
	{
		candidates.POST("", handler.Create)
		candidates.GET("", handler.List)
		candidates.GET("/export", handler.Export)
		candidates.GET("/:id", handler.Get)
		candidates.PATCH("/:id", handler.Update)
		candidates.PUT("/:id", handler.Update)
		candidates.DELETE("/:id", handler.Delete)
	}
}

// Create godoc
// @Summary      Create a candidate
// @Description  Registers a candidate. The email is lowercased and must be unique.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        candidate  body      domain.CandidateInput  true  "Candidate JSON"
// @Success      201        {object}  domain.Candidate
// @Failure      400        {object}  response.Response
// @Failure      409        {object}  response.Response{error=middleware.EmailConflictDetail}
// @Router       /candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	var req domain.CandidateInput
	if err := bindJSON(c, &req); err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Create(c.Request.Context(), req)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, candidate)
}

// List godoc
// @Summary      List candidates
// @Description  Returns candidates ordered by id, each with its resumes
// @Tags         candidates
// @Produce      json
// @Param        skip   query     int  false  "Number of candidates to skip"  default(0)
// @Param        limit  query     int  false  "Maximum number of candidates"  default(100)
// @Success      200    {array}   domain.Candidate
// @Header       200    {integer} X-Total-Count  "Total number of candidates"
// @Failure      400    {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	page, err := parsePage(c)
	if err != nil {
		c.Error(err)
		return
	}

	ctx := c.Request.Context()
	candidates, err := h.candidateUC.List(ctx, page)
	if err != nil {
		c.Error(err)
		return
	}
	total, err := h.candidateUC.Count(ctx)
	if err != nil {
		c.Error(err)
		return
	}

	c.Header(TotalCountHeader, strconv.FormatInt(total, 10))
	c.JSON(http.StatusOK, candidates)
}

// Get godoc
// @Summary      Get a candidate
// @Tags         candidates
// @Produce      json
// @Param        id   path      int  true  "Candidate ID"
// @Success      200  {object}  domain.Candidate
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) Get(c *gin.Context) {
	id, err := parseID(c, "candidate")
	if err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Get(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// Update godoc
// @Summary      Update a candidate
// @Description  Changes only the supplied fields. PUT and PATCH behave the same.
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Param        id         path      int                    true  "Candidate ID"
// @Param        candidate  body      domain.CandidatePatch  true  "Fields to change"
// @Success      200        {object}  domain.Candidate
// @Failure      400        {object}  response.Response
// @Failure      404        {object}  response.Response
// @Failure      409        {object}  response.Response{error=middleware.EmailConflictDetail}
// @Router       /candidates/{id} [patch]
// @Router       /candidates/{id} [put]
func (h *CandidateHandler) Update(c *gin.Context) {
	id, err := parseID(c, "candidate")
	if err != nil {
		c.Error(err)
		return
	}

	var patch domain.CandidatePatch
	if err := bindJSON(c, &patch); err != nil {
		c.Error(err)
		return
	}

	candidate, err := h.candidateUC.Update(c.Request.Context(), id, patch)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, candidate)
}

// Delete godoc
// @Summary      Delete a candidate
// @Description  Deletes the candidate together with all of its resumes
// @Tags         candidates
// @Param        id   path  int  true  "Candidate ID"
// @Success      204
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	id, err := parseID(c, "candidate")
	if err != nil {
		c.Error(err)
		return
	}

	if err := h.candidateUC.Delete(c.Request.Context(), id); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Export godoc
// @Summary      Export candidates to Excel/CSV
// @Description  Downloads every candidate as an Excel or CSV file
// @Tags         candidates
// @Produce      application/octet-stream
// @Param        format   query     string  false  "Export format (xlsx, csv). Default: xlsx"
// @Param        columns  query     string  false  "Comma-separated column names to include"
// @Success      200      {file}    binary
// @Failure      400      {object}  response.Response
// @Router       /candidates/export [get]
func (h *CandidateHandler) Export(c *gin.Context) {
	format := c.DefaultQuery("format", "xlsx")

	var columns []string
	if cols := c.Query("columns"); cols != "" {
		columns = strings.Split(cols, ",")
	}

	data, filename, err := h.exportUC.ExportCandidates(c.Request.Context(), domain.CandidateExportRequest{
		Columns: columns,
		Format:  format,
	})
	if err != nil {
		c.Error(err)
		return
	}

	contentType := "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	if strings.HasSuffix(filename, ".csv") {
		contentType = "text/csv"
	}

	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, contentType, data)
}
