package openai

import "fmt"

const enhancementSystemPrompt = `You are an expert at enhancing e-commerce search queries. Add relevant synonyms and variations while keeping the original intent. Return only the enhanced query.`

func buildEnhancementUserPrompt(query string) string {
	return fmt.Sprintf("Enhance this product search query: %q", query)
}
