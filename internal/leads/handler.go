package leads

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/KarimovMurodilla/lead-management-system/internal/shared/server/respond"
)

// formOverheadBytes covers multipart boundaries and the text fields so the
// body limit does not reject resumes that are themselves within the cap.
const formOverheadBytes = 64 << 10

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc            *Service
	MaxResumeBytes int64
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service, maxResumeBytes int64) *Handler {
	if maxResumeBytes <= 0 {
		maxResumeBytes = 5 << 20
	}
	return &Handler{Svc: svc, MaxResumeBytes: maxResumeBytes}
}

// RegisterPublicRoutes attaches the unauthenticated submission route.
func (h *Handler) RegisterPublicRoutes(rg *gin.RouterGroup) {
	rg.POST("/leads/", h.create)
}

// RegisterRoutes attaches the authenticated lead routes.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/leads/list/", h.list)
	rg.GET("/leads/:id/", h.get)
	rg.PATCH("/leads/:id/update/", h.updateStatus)
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxResumeBytes+formOverheadBytes)

	var form createForm
	if err := c.ShouldBind(&form); err != nil {
		// A body past the limit aborts multipart parsing before the resume
		// part is seen, so attribute it to the resume field here.
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respond.ValidationError(c, resumeSizeError(h.MaxResumeBytes))
			return
		}
		respond.ValidationError(c, bindErrors(err))
		return
	}

	fileHeader, err := c.FormFile("resume")
	if err != nil {
		respond.ValidationError(c, map[string]string{"resume": "This field is required."})
		return
	}
	if fieldErrs := validateResume(fileHeader.Filename, fileHeader.Size, h.MaxResumeBytes); fieldErrs != nil {
		respond.ValidationError(c, fieldErrs)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respond.ValidationError(c, map[string]string{"resume": "Unable to read file."})
		return
	}
	defer file.Close()

	lead, err := h.Svc.Create(c.Request.Context(), CreateInput{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
	}, fileHeader.Filename, file)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to create lead", nil)
		return
	}

	c.Set("leadId", lead.ID)
	respond.Created(c, toResponse(lead, requestBaseURL(c)))
}

func (h *Handler) list(c *gin.Context) {
	all, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to list leads", nil)
		return
	}

	baseURL := requestBaseURL(c)
	resp := make([]LeadResponse, 0, len(all))
	for _, lead := range all {
		resp = append(resp, toResponse(lead, baseURL))
	}
	respond.OK(c, resp)
}

func (h *Handler) get(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	lead, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "lead not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to fetch lead", nil)
		return
	}

	c.Set("leadId", lead.ID)
	respond.OK(c, toResponse(lead, requestBaseURL(c)))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) updateStatus(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	// Only status is part of the accepted schema; other fields are ignored.
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.ValidationError(c, map[string]string{"status": "This field is required."})
		return
	}
	if !ValidStatus(req.Status) {
		respond.ValidationError(c, map[string]string{"status": "Status must be one of: PENDING, REACHED_OUT."})
		return
	}

	lead, err := h.Svc.UpdateStatus(c.Request.Context(), id, req.Status)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "lead not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal", "failed to update lead", nil)
		return
	}

	c.Set("leadId", lead.ID)
	respond.OK(c, toResponse(lead, requestBaseURL(c)))
}

func parseLeadID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respond.Error(c, http.StatusNotFound, "not_found", "lead not found", nil)
		return 0, false
	}
	return id, true
}

// requestBaseURL resolves the absolute serving base from the inbound request.
func requestBaseURL(c *gin.Context) string {
	if c.Request == nil || c.Request.Host == "" {
		return ""
	}
	scheme := "http"
	if c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + c.Request.Host
}
