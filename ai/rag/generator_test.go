package rag

import (
	"context"
	"fmt"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gabrieloporto/nexoshop/ai"
	"github.com/gabrieloporto/nexoshop/store"
)

func TestGeneratePromptContainsProductsAndQuery(t *testing.T) {
	llm := &stubLLM{answer: "Tenemos las Zapatillas Running Pro a $ 86.000."}
	generator := NewGenerator(llm)

	products := []*store.Product{
		{ID: 1, Name: "Zapatillas Running Pro", Description: "Livianas", Price: 85999.5, Stock: 50},
		{ID: 2, Name: "Zapatillas Urbanas", Price: 45000, Stock: 0},
	}

	answer, err := generator.Generate(context.Background(), "busco zapatillas para correr", products, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, answer)

	require.Len(t, llm.messages, 2)
	assert.Equal(t, "system", llm.messages[0].Role)
	assert.Contains(t, llm.messages[0].Content, "NexoShop")

	prompt := llm.messages[1].Content
	assert.Contains(t, prompt, "- Zapatillas Running Pro: $ 86.000 (50 disponibles)")
	assert.Contains(t, prompt, "Livianas")
	assert.Contains(t, prompt, "- Zapatillas Urbanas: $ 45.000 (Agotado)")
	assert.Contains(t, prompt, "Pregunta del cliente: busco zapatillas para correr")
}

func TestGenerateEmptyRetrievalUsesFallbackPhrase(t *testing.T) {
	llm := &stubLLM{answer: "¿Podrías darme más detalles?"}
	generator := NewGenerator(llm)

	_, err := generator.Generate(context.Background(), "algo rarísimo", nil, nil)
	require.NoError(t, err)

	prompt := llm.messages[len(llm.messages)-1].Content
	assert.Contains(t, prompt, "No se encontraron productos específicos para esta consulta.")
}

func TestGenerateHistoryWindowIsBounded(t *testing.T) {
	llm := &stubLLM{answer: "ok"}
	generator := NewGenerator(llm)

	history := make([]ai.Message, 0, 24)
	for i := 0; i < 24; i++ {
		role := "user"
		if i%2 == 1 {
			role = "assistant"
		}
		history = append(history, ai.Message{Role: role, Content: fmt.Sprintf("turno %d", i)})
	}

	_, err := generator.Generate(context.Background(), "hola", nil, history)
	require.NoError(t, err)

	// system + 10 history turns + user prompt
	require.Len(t, llm.messages, 12)
	assert.Equal(t, "turno 14", llm.messages[1].Content)
	assert.Equal(t, "turno 23", llm.messages[10].Content)
}

func TestGenerateFailureIsTypedAndNotSwallowed(t *testing.T) {
	llm := &stubLLM{err: errors.New("rate limited")}
	generator := NewGenerator(llm)

	answer, err := generator.Generate(context.Background(), "hola", nil, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrGenerationFailed)
	assert.Empty(t, answer)
}
