package routes

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"qp-generator-backend/models"
	"qp-generator-backend/services"
	"qp-generator-backend/utils"
)

// SetupGenerateRoutes wires the question-paper and quiz generation endpoints.
// Each follows the same sequence: retrieve context, load-or-create course
// outcomes, invoke the generator, return the raw model output.
func SetupGenerateRoutes(router *gin.Engine, retriever *services.Retriever,
	generator *services.Generator, outcomes *services.OutcomeService) {

	router.POST("/generate-qp", func(c *gin.Context) {
		var req models.GenerateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		query := fmt.Sprintf("Provide relevant concepts and details for question generation about %s", req.Subject)

		contextText, err := retriever.Retrieve(ctx, req.Subject, query, services.TopKQuestions)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		cos, err := outcomes.GetOrCreate(ctx, req.Subject, contextText)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		generated, err := generator.GenerateQuestions(ctx, services.QuestionParams{
			Subject:        req.Subject,
			Context:        contextText,
			Marks:          req.Marks,
			Count:          req.Count,
			CourseOutcomes: cos,
			CustomPrompt:   req.CustomPrompt,
		})
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "success",
			"message":    fmt.Sprintf("Generated questions for %d marks.", req.Marks),
			"questions":  []string{generated},
			"raw_output": generated,
		})
	})

	router.POST("/generate-full-qp", func(c *gin.Context) {
		var req models.GenerateFullRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		// Broadly sweeping query: a full paper samples the whole syllabus
		query := fmt.Sprintf("Provide a complete, comprehensive overview of the syllabus, main topics, and key concepts for %s", req.Subject)

		contextText, err := retriever.Retrieve(ctx, req.Subject, query, services.TopKFullExam)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		cos, err := outcomes.GetOrCreate(ctx, req.Subject, contextText)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		generated, err := generator.GenerateFullExam(ctx, req.Subject, contextText, cos)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "success",
			"message":    "Generated Full Internal Exam Paper.",
			"raw_output": generated,
		})
	})

	router.POST("/generate-quiz", func(c *gin.Context) {
		var req models.QuizRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondWithBadRequest(c, err.Error())
			return
		}

		ctx := c.Request.Context()
		query := fmt.Sprintf("Provide relevant concepts and details for %s questions about %s", req.QuizType, req.Subject)

		contextText, err := retriever.Retrieve(ctx, req.Subject, query, services.TopKQuiz)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		generated, err := generator.GenerateQuiz(ctx, req.Subject, contextText, req.Marks, req.QuizType)
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":     "success",
			"message":    fmt.Sprintf("Generated %d %s questions.", req.Marks, req.QuizType),
			"raw_output": generated,
		})
	})
}
