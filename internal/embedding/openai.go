package embedding

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sirupsen/logrus"

	"github.com/ldelaney/coachmem/internal/errors"
	"github.com/ldelaney/coachmem/internal/retry"
)

// OpenAI is a Gateway backed by the OpenAI embeddings API.
type OpenAI struct {
	client *openai.Client
	model  string
	log    *logrus.Logger
}

// NewOpenAI builds a gateway for the given API key and model.
func NewOpenAI(apiKey, model string, log *logrus.Logger) *OpenAI {
	return &OpenAI{
		client: openai.NewClient(apiKey),
		model:  model,
		log:    log,
	}
}

// Embed requests an embedding for text, retrying transient failures
// with exponential backoff.
func (g *OpenAI) Embed(ctx context.Context, text string) ([]float32, error) {
	cleaned := CleanText(text)
	if cleaned == "" {
		return nil, errors.NewInvalidRequest("cannot embed empty text")
	}

	var vector []float32
	err := retry.Do(ctx, retry.DefaultConfig, func() error {
		resp, err := g.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: []string{cleaned},
			Model: openai.EmbeddingModel(g.model),
		})
		if err != nil {
			return err
		}
		if len(resp.Data) == 0 {
			return fmt.Errorf("embedding response contained no data")
		}
		vector = resp.Data[0].Embedding
		return nil
	})
	if err != nil {
		g.log.WithError(err).WithField("model", g.model).Error("embedding request failed")
		return nil, errors.NewEmbeddingFailed(err)
	}

	return vector, nil
}
