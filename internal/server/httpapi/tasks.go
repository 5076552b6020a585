package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/taskio/internal/agenda"
	"github.com/dmitrijs2005/taskio/internal/server/models"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleListTasks(c *gin.Context) {
	if id := c.Query("id"); id != "" {
		s.getTask(c, id)
		return
	}

	filter := models.TaskFilter{
		Status:  models.Status(c.Query("status")),
		Tags:    agenda.ParseTagList(c.Query("tags")),
		TagMode: models.TagMode(c.Query("tagMode")),
	}
	list, err := s.tasks.ListTasks(c.Request.Context(), userID(c), filter)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toViews(list))
}

func (s *Server) handleGetTask(c *gin.Context) {
	s.getTask(c, c.Param("id"))
}

func (s *Server) getTask(c *gin.Context, id string) {
	t, err := s.tasks.GetTask(c.Request.Context(), userID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(t))
}

func (s *Server) handleCreateTask(c *gin.Context) {
	var req createTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	in, err := req.toNewTask()
	if err != nil {
		writeError(c, err)
		return
	}
	id, err := s.tasks.CreateTask(c.Request.Context(), userID(c), in)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"taskId": id})
}

// handleUpdateTask serves both PUT /tasks/:id and PUT /tasks with the id in
// the body.
func (s *Server) handleUpdateTask(c *gin.Context) {
	var req updateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}
	id := c.Param("id")
	if id == "" {
		id = req.ID
	}
	if id == "" {
		badRequest(c, "task id is required")
		return
	}

	patch, err := req.toPatch()
	if err != nil {
		writeError(c, err)
		return
	}
	t, err := s.tasks.UpdateTask(c.Request.Context(), userID(c), id, patch)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(t))
}

func (s *Server) handleDeleteTask(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		var req idRequest
		if err := c.ShouldBindJSON(&req); err != nil || req.ID == "" {
			badRequest(c, "task id is required")
			return
		}
		id = req.ID
	}
	if err := s.tasks.DeleteTask(c.Request.Context(), userID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Task deleted"})
}

func (s *Server) handleToggleTask(c *gin.Context) {
	t, err := s.tasks.ToggleTaskStatus(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toView(t))
}

func (s *Server) handleListTags(c *gin.Context) {
	names, err := s.tags.ListAllTagNames(c.Request.Context(), userID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": names})
}

// handleDashboard lists all of the caller's tasks and derives the today,
// upcoming and selected-date views. ?date=YYYY-MM-DD picks the date.
func (s *Server) handleDashboard(c *gin.Context) {
	now := s.now()
	var selected time.Time
	if d := c.Query("date"); d != "" {
		t, err := time.ParseInLocation(dateLayout, d, now.Location())
		if err != nil {
			badRequest(c, "date must be YYYY-MM-DD")
			return
		}
		selected = t
	}

	list, err := s.tasks.ListTasks(c.Request.Context(), userID(c), models.TaskFilter{})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, toDashboardView(agenda.BuildDashboard(list, now, selected)))
}
