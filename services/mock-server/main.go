package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/kthtools/labfetch/services/mock-server/internal/mock"
)

// maxPageSize is deliberately tiny so the Link-header pagination path gets
// exercised against the mock even with its small fixture roster.
const maxPageSize = 2

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	r := gin.Default()

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Canvas API endpoints
	api := r.Group("/api/v1")
	{
		api.GET("/courses", handleGetCourses)
		api.GET("/courses/:courseId/assignments", handleGetAssignments)
		api.GET("/courses/:courseId/assignments/:assignmentId/submissions", handleGetSubmissions)
	}

	// Attachment files
	r.GET("/files/:fileId", handleGetFile)

	// Legacy reservation system CGI
	r.GET("/cgi-bin/decoder", handleDecoder)
	r.POST("/cgi-bin/decoder", handleDecoder)

	addr := fmt.Sprintf(":%s", port)
	log.Printf("Starting labfetch mock server on %s (admin id: %s)", addr, mock.AdminID)
	log.Fatal(http.ListenAndServe(addr, r))
}

func handleGetCourses(c *gin.Context) {
	c.JSON(http.StatusOK, mock.Courses())
}

func handleGetAssignments(c *gin.Context) {
	courseID, err := strconv.ParseUint(c.Param("courseId"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid course id"})
		return
	}

	c.JSON(http.StatusOK, mock.Assignments(courseID))
}

func handleGetSubmissions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	perPage, err := strconv.Atoi(c.DefaultQuery("per_page", "10"))
	if err != nil || perPage < 1 {
		perPage = 10
	}
	if perPage > maxPageSize {
		perPage = maxPageSize
	}

	baseURL := "http://" + c.Request.Host
	submissions, hasNext := mock.SubmissionsPage(baseURL, page, perPage)

	if hasNext {
		next := fmt.Sprintf("%s%s?page=%d&per_page=%d", baseURL, c.Request.URL.Path, page+1, perPage)
		c.Header("Link", fmt.Sprintf(`<%s>; rel="next"`, next))
	}

	c.JSON(http.StatusOK, submissions)
}

func handleGetFile(c *gin.Context) {
	content, ok := mock.FileContent(c.Param("fileId"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "file not found"})
		return
	}

	c.Data(http.StatusOK, "application/octet-stream", content)
}

// handleDecoder mimics the single CGI endpoint of the reservation system:
// an overview GET returns the sub-list form, a reservation-view POST returns
// the booking list of the requested event.
func handleDecoder(c *gin.Context) {
	if c.Query("request:overview") == "yes" {
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(mock.OverviewHTML()))
		return
	}

	if c.PostForm("request:reservation-view") != "" {
		html, ok := mock.ReservationHTML(c.PostForm("event"))
		if !ok {
			c.Data(http.StatusNotFound, "text/html; charset=utf-8", []byte("<p>Okänd lista</p>"))
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
		return
	}

	c.Data(http.StatusBadRequest, "text/html; charset=utf-8", []byte("<p>Ogiltig förfrågan</p>"))
}
