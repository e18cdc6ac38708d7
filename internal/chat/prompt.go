// Aniscout - Anime Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/aniscout

package chat

import (
	"strings"
	"unicode/utf8"
)

// Role identifies the author of a conversation turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one prior conversation turn supplied by the client.
type Message struct {
	Role    Role   `json:"role" validate:"required,oneof=user assistant"`
	Content string `json:"content" validate:"max=4000"`
}

const (
	// MaxMessageLength is the longest accepted user message, in characters.
	MaxMessageLength = 1000

	// HistoryWindow is how many prior turns are sent to the model.
	HistoryWindow = 5

	// MaxHistory is how many turns a client may send.
	MaxHistory = 10
)

// SystemPrompt specializes the model as a Spanish-speaking anime expert.
const SystemPrompt = `Eres un experto en anime japonés con conocimiento extenso sobre series, películas, géneros, estudios y directores.

TU ROL:
- Ayudar a usuarios a descubrir nuevos animes
- Hacer recomendaciones personalizadas y específicas
- Responder preguntas sobre anime
- Comparar animes y explicar similitudes

REGLAS ESTRICTAS:
1. SOLO hablas sobre anime (series, películas, OVAs, especiales)
2. Si te preguntan algo NO relacionado con anime, responde amablemente: "Soy un asistente especializado en anime. ¿En qué anime puedo ayudarte?"
3. Da recomendaciones ESPECÍFICAS con títulos exactos
4. Incluye RAZONES de por qué recomiendas cada anime
5. Menciona el género, año y una breve descripción
6. Sé conversacional pero conciso

FORMATO DE RESPUESTAS:
- Usa listas numeradas para múltiples recomendaciones
- Explica por qué cada recomendación es relevante
- Menciona aspectos visuales, narrativos o temáticos

EJEMPLOS DE BUENAS RESPUESTAS:
Usuario: "Quiero algo con estética similar a Violet Evergarden"
Tú: "Te recomendaría:
1. A Silent Voice (2016) - Hermosa animación de Kyoto Animation, similar calidad visual
2. Your Name (2016) - Estética impresionante con enfoque emocional
3. Garden of Words (2013) - Makoto Shinkai, fondos detallados y atmósfera contemplativa"

Usuario: "Me gustó Death Note"
Tú: "Basado en Death Note, te gustarían:
1. Code Geass - Protagonista brillante, estrategias complejas, dilemas morales
2. Psycho-Pass - Thriller psicológico, sistema de justicia cuestionable
3. Monster - Suspenso, juego mental entre protagonista y antagonista"

RECUERDA: Solo anime, siempre específico, siempre con razones.`

// ValidMessage reports whether message is non-blank and at most
// MaxMessageLength characters after trimming.
func ValidMessage(message string) bool {
	n := utf8.RuneCountInString(strings.TrimSpace(message))
	return n > 0 && n <= MaxMessageLength
}

// TruncateHistory keeps the last limit turns.
func TruncateHistory(history []Message, limit int) []Message {
	if len(history) <= limit {
		return history
	}
	return history[len(history)-limit:]
}

// BuildPrompt renders the system prompt, the last HistoryWindow turns and the
// new user message into a single prompt.
func BuildPrompt(message string, history []Message) string {
	var b strings.Builder
	b.WriteString(SystemPrompt)
	b.WriteString("\n\n---\n\n")

	recent := TruncateHistory(history, HistoryWindow)
	if len(recent) > 0 {
		b.WriteString("CONVERSACIÓN PREVIA:\n")
		for _, m := range recent {
			if m.Role == RoleUser {
				b.WriteString("Usuario: ")
			} else {
				b.WriteString("Asistente: ")
			}
			b.WriteString(m.Content)
			b.WriteByte('\n')
		}
		b.WriteByte('\n')
	}

	b.WriteString("Usuario: ")
	b.WriteString(message)
	b.WriteString("\n\nAsistente:")
	return b.String()
}
