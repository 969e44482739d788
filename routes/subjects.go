package routes

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"qp-generator-backend/internal/logger"
	"qp-generator-backend/internal/vectorstore"
	"qp-generator-backend/services"
	"qp-generator-backend/utils"
)

// SetupSubjectRoutes wires subject and file bookkeeping endpoints.
func SetupSubjectRoutes(router *gin.Engine, store *services.DocumentStore, vectors *vectorstore.Store) {
	router.GET("/subjects", func(c *gin.Context) {
		subjects, err := store.ListSubjects()
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"subjects": subjects})
	})

	router.GET("/subjects/:subject/files", func(c *gin.Context) {
		files, err := store.ListFiles(c.Param("subject"))
		if err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"files": files})
	})

	router.DELETE("/subjects/:subject/files/:filename", func(c *gin.Context) {
		subject := c.Param("subject")
		filename := c.Param("filename")

		if err := store.DeleteFile(subject, filename); err != nil {
			if errors.Is(err, services.ErrNotFound) {
				utils.RespondWithNotFound(c, "File not found")
				return
			}
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		// The file is gone either way; vector deletion failure leaves the two
		// stores diverged and is only reported, not rolled back.
		vectorDeleted := true
		if err := vectors.DeleteWhere(c.Request.Context(), subject, map[string]string{"source": filename}); err != nil {
			logger.Error("Failed to delete document vectors", "subject", subject, "file", filename, "error", err)
			vectorDeleted = false
		}

		c.JSON(http.StatusOK, gin.H{
			"status":         "success",
			"message":        fmt.Sprintf("Deleted %s successfully.", filename),
			"vector_deleted": vectorDeleted,
		})
	})

	router.DELETE("/subjects/:subject", func(c *gin.Context) {
		subject := c.Param("subject")

		if err := store.DeleteSubject(subject); err != nil {
			utils.RespondWithInternalError(c, err.Error())
			return
		}

		vectorDeleted := true
		if err := vectors.DeleteCollection(subject); err != nil {
			logger.Error("Failed to delete subject collection", "subject", subject, "error", err)
			vectorDeleted = false
		}

		c.JSON(http.StatusOK, gin.H{
			"status":         "success",
			"message":        fmt.Sprintf("Deleted subject %s completely.", subject),
			"vector_deleted": vectorDeleted,
		})
	})
}
