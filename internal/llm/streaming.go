package llm

import (
	"github.com/openai/openai-go"
	"github.com/openai/openai-go/packages/ssestream"

	"ascension/internal/debug"
)

type StreamChunk struct {
	Text  string
	Error error
	Done  bool
}

// ReadStreamChunks drains a completion stream into a channel the TUI can
// select on. The channel closes after the Done chunk.
func ReadStreamChunks(stream *ssestream.Stream[openai.ChatCompletionChunk], logger *debug.Logger) <-chan StreamChunk {
	chunks := make(chan StreamChunk)

	go func() {
		defer close(chunks)
		defer stream.Close()

		for stream.Next() {
			chunk := stream.Current()
			if len(chunk.Choices) > 0 {
				delta := chunk.Choices[0].Delta.Content
				if delta != "" {
					chunks <- StreamChunk{Text: delta}
				}
			}
		}

		if err := stream.Err(); err != nil {
			logger.Printf("stream error: %v", err)
			chunks <- StreamChunk{Error: err, Done: true}
			return
		}

		logger.Printf("stream finished")
		chunks <- StreamChunk{Done: true}
	}()

	return chunks
}
