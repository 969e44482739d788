package services

import (
	"github.com/google/uuid"

	"qp-generator-backend/internal/vectorstore"
)

// Chunker splits extracted text into consecutive fixed-size rune slices with
// no overlap. The final chunk may be shorter; concatenating all chunks in
// order reconstructs the input exactly.
type Chunker struct {
	size int
}

func NewChunker(size int) *Chunker {
	return &Chunker{size: size}
}

// Split chunks the text and tags every chunk with its source filename and
// subject so the chunks can be deleted when the file is.
func (c *Chunker) Split(text, subject, filename string) []vectorstore.Chunk {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}

	chunks := make([]vectorstore.Chunk, 0, (len(runes)+c.size-1)/c.size)
	for start := 0; start < len(runes); start += c.size {
		end := start + c.size
		if end > len(runes) {
			end = len(runes)
		}
		chunks = append(chunks, vectorstore.Chunk{
			ID:      uuid.NewString(),
			Content: string(runes[start:end]),
			Metadata: map[string]string{
				"source":  filename,
				"subject": subject,
			},
		})
	}
	return chunks
}
