package routes

import (
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"qp-generator-backend/internal/config"
	"qp-generator-backend/internal/logger"
	"qp-generator-backend/internal/vectorstore"
	"qp-generator-backend/services"
	"qp-generator-backend/utils"
)

// SetupUploadRoutes wires the document ingestion endpoint: persist each file,
// extract text, chunk, embed, index. The whole request fails on the first
// file that fails; files already processed stay ingested.
func SetupUploadRoutes(router *gin.Engine, cfg *config.Config, store *services.DocumentStore,
	extractor *services.Extractor, chunker *services.Chunker, vectors *vectorstore.Store) {

	router.POST("/upload", func(c *gin.Context) {
		subject := c.PostForm("subject")
		if subject == "" {
			utils.RespondWithBadRequest(c, "Subject is required for context isolation")
			return
		}

		form, err := c.MultipartForm()
		if err != nil {
			utils.RespondWithBadRequest(c, err.Error())
			return
		}
		files := form.File["files"]
		if len(files) == 0 {
			utils.RespondWithBadRequest(c, "At least one file is required")
			return
		}

		savedFiles := []string{}
		for _, header := range files {
			if header.Size > cfg.MaxFileSize {
				utils.RespondWithBadRequest(c, fmt.Sprintf("File %s exceeds maximum size", header.Filename))
				return
			}

			src, err := header.Open()
			if err != nil {
				utils.RespondWithInternalError(c, err.Error())
				return
			}
			data, err := io.ReadAll(src)
			src.Close()
			if err != nil {
				utils.RespondWithInternalError(c, err.Error())
				return
			}

			if _, err := store.Save(subject, header.Filename, data); err != nil {
				utils.RespondWithInternalError(c, err.Error())
				return
			}

			text, err := extractor.Extract(header.Filename, data)
			if err != nil {
				utils.RespondWithInternalError(c, err.Error())
				return
			}

			chunks := chunker.Split(text, subject, header.Filename)
			logger.Info("Adding chunks to vector store",
				"chunks", len(chunks), "file", header.Filename, "subject", subject)

			if err := vectors.Add(c.Request.Context(), subject, chunks); err != nil {
				utils.RespondWithInternalError(c, err.Error())
				return
			}

			savedFiles = append(savedFiles, header.Filename)
		}

		c.JSON(http.StatusOK, gin.H{
			"message": fmt.Sprintf("Successfully processed %d files.", len(savedFiles)),
			"files":   savedFiles,
		})
	})
}
