package controllers

import (
	"ClassFeed/middlewares"
	"ClassFeed/models"
	"ClassFeed/services"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

var messageService MessageServiceInterface

func SetMessageService(service MessageServiceInterface) {
	messageService = service
}

// GetVisualisation returns message volume per segment bar for a class
func GetVisualisation(c *gin.Context) {
	chart, err := messageService.Visualisation(c.Request.Context(), middlewares.CurrentCourse(c), c.Param("class"), c.Param("duration"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"visualisation": chart})
}

// CreateMessage posts a message, or a reply when replyTo is set
func CreateMessage(c *gin.Context) {
	var input struct {
		ReplyTo             *uint  `json:"replyTo"`
		CurrentClass        string `json:"currentClass" binding:"required"`
		CurrentSegment      *int   `json:"currentSegment"`
		CurrentSegmentGroup int    `json:"currentSegmentGroup"`
		Text                string `json:"text" binding:"required"`
		TwitterEnabled      bool   `json:"twitterEnabled"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	// Clients that only track segment groups post the group as the segment.
	segment := input.CurrentSegmentGroup
	if input.CurrentSegment != nil {
		segment = *input.CurrentSegment
	}

	result, err := messageService.CreateMessage(c.Request.Context(), services.CreateMessageInput{
		Course:       middlewares.CurrentCourse(c),
		UserID:       userID,
		Class:        input.CurrentClass,
		Segment:      segment,
		SegmentGroup: input.CurrentSegmentGroup,
		Text:         input.Text,
		ReplyTo:      input.ReplyTo,
		PostToSocial: input.TwitterEnabled,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// LikeMessage adds a like from the current user
func LikeMessage(c *gin.Context) {
	var input struct {
		Target uint `json:"target" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	message, err := messageService.LikeMessage(c.Request.Context(), middlewares.CurrentCourse(c), input.Target, userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// GetMessage returns one message with its replies and likes
func GetMessage(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message id"})
		return
	}

	message, err := messageService.GetMessage(c.Request.Context(), middlewares.CurrentCourse(c), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, message)
}

// GetSegmentMessages lists a class feed between two segments. With the
// summary parameter present it returns the latest message of each segment
// in [start, end) instead.
func GetSegmentMessages(c *gin.Context) {
	start, end, err := services.ParseSegmentRange(c.Param("start"), c.Param("end"))
	if err != nil {
		respondError(c, err)
		return
	}

	course, class := middlewares.CurrentCourse(c), c.Param("class")

	var messages []models.Message
	if c.Param("summary") != "" {
		messages, err = messageService.ListSummary(c.Request.Context(), course, class, start, end)
	} else {
		messages, err = messageService.ListRange(c.Request.Context(), course, class, start, end)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(messages))
}

// GetOwnMessages lists the current user's messages in a class
func GetOwnMessages(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	messages, err := messageService.ListOwn(c.Request.Context(), middlewares.CurrentCourse(c), c.Param("class"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(messages))
}

// GetTeacherMessages lists messages from the teacher's roster
func GetTeacherMessages(c *gin.Context) {
	userID, ok := middlewares.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	messages, err := messageService.ListForTeacher(c.Request.Context(), middlewares.CurrentCourse(c), c.Param("class"), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(messages))
}

// GetAdminMessages lists every message in a class
func GetAdminMessages(c *gin.Context) {
	messages, err := messageService.ListForAdmin(c.Request.Context(), middlewares.CurrentCourse(c), c.Param("class"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, nonNil(messages))
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		zap.L().Error("request failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

func nonNil(messages []models.Message) []models.Message {
	if messages == nil {
		return []models.Message{}
	}
	return messages
}
