package handler

import (
	"net/http"

	"civicalert/backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
)

type createReportRequest struct {
	Category      string   `json:"category"`
	Description   string   `json:"description"`
	Latitude      *float64 `json:"latitude"`
	Longitude     *float64 `json:"longitude"`
	Address       string   `json:"address"`
	Evidence      []string `json:"evidence"`
	FullName      string   `json:"fullName"`
	NIC           string   `json:"nic"`
	ContactNumber string   `json:"contactNumber"`
	Priority      string   `json:"priority"`
}

// CreateReport files a new incident report for the authenticated user and
// triggers the new-report notification. The notification path is
// best-effort; a failed push never fails the request.
func (h *Handler) CreateReport(c *gin.Context) {
	user := currentUser(c)

	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}
	if req.Category == "" || req.Description == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please provide all required fields: category, location, description"})
		return
	}
	if req.Latitude == nil || req.Longitude == nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please provide both latitude and longitude"})
		return
	}

	report := &models.Report{
		UserID:        user.ID,
		Category:      req.Category,
		Description:   req.Description,
		Latitude:      *req.Latitude,
		Longitude:     *req.Longitude,
		Address:       req.Address,
		Evidence:      pq.StringArray(req.Evidence),
		FullName:      req.FullName,
		NIC:           req.NIC,
		ContactNumber: req.ContactNumber,
		Priority:      req.Priority,
	}
	if err := h.Store.CreateReport(report); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	h.Notifier.ReportCreated(report)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": report, "message": "Report created successfully"})
}

// ListReports returns the authenticated user's reports, newest first.
func (h *Handler) ListReports(c *gin.Context) {
	user := currentUser(c)

	reports, err := h.Store.GetReportsByUser(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": reports})
}

// GetReport returns one report. Owners and officers may view it.
func (h *Handler) GetReport(c *gin.Context) {
	user := currentUser(c)

	report, err := h.Store.GetReportByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Report not found"})
		return
	}
	if report.UserID != user.ID && !user.IsOfficer() {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You are not authorized to view this report"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// UpdateReport lets the owner amend the report's descriptive fields.
// Status is kept out of this path; it only changes through the status
// endpoint so the transition trigger always fires.
func (h *Handler) UpdateReport(c *gin.Context) {
	user := currentUser(c)

	report, err := h.Store.GetReportByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Report not found"})
		return
	}
	if report.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You are not authorized to update this report"})
		return
	}

	var req createReportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	if req.Category != "" {
		report.Category = req.Category
	}
	if req.Description != "" {
		report.Description = req.Description
	}
	if req.Latitude != nil {
		report.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		report.Longitude = *req.Longitude
	}
	if req.Address != "" {
		report.Address = req.Address
	}
	if req.Evidence != nil {
		report.Evidence = pq.StringArray(req.Evidence)
	}
	if req.Priority != "" {
		report.Priority = req.Priority
	}

	if err := h.Store.UpdateReport(report); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}

// DeleteReport removes the owner's report.
func (h *Handler) DeleteReport(c *gin.Context) {
	user := currentUser(c)

	report, err := h.Store.GetReportByID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Report not found"})
		return
	}
	if report.UserID != user.ID {
		c.JSON(http.StatusForbidden, gin.H{"success": false, "error": "You are not authorized to delete this report"})
		return
	}

	if _, err := h.Store.DeleteReport(report.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Report deleted successfully"})
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateReportStatus moves a report to a new status (officer only) and
// triggers the status-update notification for the owner.
func (h *Handler) UpdateReportStatus(c *gin.Context) {
	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Status == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Please provide a status"})
		return
	}
	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status value"})
		return
	}

	report, err := h.Store.UpdateReportStatus(c.Param("id"), req.Status)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
		return
	}
	if report == nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Report not found"})
		return
	}

	h.Notifier.StatusChanged(report, req.Status)

	c.JSON(http.StatusOK, gin.H{"success": true, "data": report})
}
