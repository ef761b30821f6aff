package rag

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/errors"

	"github.com/gabrieloporto/nexoshop/ai"
	"github.com/gabrieloporto/nexoshop/store"
)

// ErrGenerationFailed is returned when the generation provider fails. The
// caller is responsible for presenting a user-safe fallback; the generator
// never swallows errors into placeholder text.
var ErrGenerationFailed = errors.New("rag: response generation failed")

// historyWindow is the number of prior turns passed to the generation model.
const historyWindow = 10

// noProductsFallback is the literal context used when retrieval came back
// empty. An empty retrieval is valid input, not an error: the system policy
// instructs the model to ask clarifying questions in that case.
const noProductsFallback = "No se encontraron productos específicos para esta consulta."

const systemPolicy = `Eres un asistente virtual de NexoShop, una tienda de e-commerce.

Tu trabajo es ayudar a los clientes a:
- Encontrar productos que buscan
- Consultar stock y disponibilidad
- Obtener información de precios
- Conocer detalles y características

Directrices:
- Responde en español de forma amigable y profesional
- Sé conciso pero completo
- Si mencionas productos, incluye nombre y precio
- Si no hay productos relevantes, sugiere alternativas o pregunta más detalles
- No inventes información que no esté en el contexto
- Si un producto no tiene stock, menciona que está agotado
- Usa formato natural y conversacional`

// Generator produces a grounded natural-language answer from retrieved
// products, a bounded conversation history, and the user query.
type Generator struct {
	llm ai.LLMService
}

func NewGenerator(llm ai.LLMService) *Generator {
	return &Generator{llm: llm}
}

// Generate builds the grounded prompt and calls the generation model.
// History is passed as structured messages rather than concatenated into the
// prompt text, so the provider's own context handling applies.
func (g *Generator) Generate(ctx context.Context, query string, products []*store.Product, history []ai.Message) (string, error) {
	messages := make([]ai.Message, 0, len(history)+2)
	messages = append(messages, ai.SystemPrompt(systemPolicy))

	if len(history) > historyWindow {
		history = history[len(history)-historyWindow:]
	}
	messages = append(messages, history...)

	messages = append(messages, ai.UserMessage(BuildPrompt(query, products)))

	answer, err := g.llm.Chat(ctx, messages)
	if err != nil {
		return "", errors.Wrap(ErrGenerationFailed, err.Error())
	}

	return answer, nil
}

// BuildPrompt renders the user-turn prompt: the serialized retrieved
// products followed by the literal user query.
func BuildPrompt(query string, products []*store.Product) string {
	return fmt.Sprintf("Productos disponibles:\n%s\n\nPregunta del cliente: %s", productContext(products), query)
}

func productContext(products []*store.Product) string {
	if len(products) == 0 {
		return noProductsFallback
	}

	lines := make([]string, 0, len(products))
	for _, p := range products {
		stockStatus := "Agotado"
		if p.InStock() {
			stockStatus = fmt.Sprintf("%d disponibles", p.Stock)
		}
		line := fmt.Sprintf("- %s: %s (%s)", p.Name, store.FormatPrice(p.Price), stockStatus)
		if p.Description != "" {
			line += "\n  " + p.Description
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
