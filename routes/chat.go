package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"qp-generator-backend/models"
	"qp-generator-backend/services"
	"qp-generator-backend/utils"
)

// SetupChatRoutes wires the context-grounded chat endpoint. The user's
// message doubles as the retrieval query.
func SetupChatRoutes(router *gin.Engine, retriever *services.Retriever,
	generator *services.Generator, outcomes *services.OutcomeService) {

	router.POST("/chat", func(c *gin.Context) {
		var req models.ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()

		contextText, err := retriever.Retrieve(ctx, req.Subject, req.Message, services.TopKChat)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		cos, err := outcomes.GetOrCreate(ctx, req.Subject, contextText)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		reply, err := generator.GenerateChat(ctx, req.Subject, contextText, req.Message, cos)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status": "success",
			"reply":  reply,
		})
	})
}
