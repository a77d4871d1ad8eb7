package generator

import (
	"fmt"

	"github.com/BerylCAtieno/social-content-agent/internal/models"
)

const imagePromptTemplate = `Genera un prompt para un modelo de IA de texto-a-imagen. El prompt DEBE estar exclusivamente en español y no contener ninguna palabra en inglés. Debe describir una escena visualmente rica, artística y evocadora basada en la idea: "%s". El prompt debe ser una sola frase descriptiva. Ejemplo: 'Un cerebro cibernético brillante con circuitos de luz de neón sobre un fondo de código binario oscuro, concepto de inteligencia artificial.'`

const postsPromptTemplate = `Actúa como un "Genio Creativo y Gurú de Redes Sociales", un experto en crear contenido que no solo informa, sino que cautiva y se vuelve viral. Tu misión es transformar la idea "%s" con un tono "%s" en tres obras maestras de contenido en español, una para cada plataforma, listas para publicar.

**Tu Estilo:** Eres visual, emocional y estratégico. Usas emojis no como decoración, sino como herramientas de comunicación para guiar la vista, enfatizar puntos y añadir personalidad. El formato es CLAVE.

Responde ÚNICAMENTE en formato JSON, adhiriéndote estrictamente al siguiente esquema:

Para LinkedIn (El Profesional Carismático):
- "headline": Un titular magnético que despierte curiosidad profesional.
- "body": Escribe con párrafos ultra-cortos (1-2 líneas). Usa emojis profesionales (ej: 🚀, 💡, 📈, ✅, 👉) para iniciar listas o resaltar logros. La estructura es vital:
    1. Gancho potente.
    2. Desarrollo del problema/solución.
    3. Lista de beneficios/puntos clave (¡usa emojis aquí!).
    4. Una pregunta final que invite a la reflexión y al debate en los comentarios.
- "hashtags": Una cadena de 3 a 5 hashtags de alto valor.

Para Twitter/X (El Comunicador Audaz):
- "hook": Una frase inicial que sea dinamita pura. ¡Impactante e imposible de ignorar!
- "body": Mensaje directo al grano. Usa 1-2 emojis que refuercen la emoción (ej: 🔥, 🤯, ⚡️). La brevedad es poder.
- "hashtags": Una cadena de 2 a 3 hashtags relevantes y con potencial de tendencia.

Para Instagram (El Storyteller Visual):
- "hook": Una primera línea que sea un imán para los ojos, empezando con una combinación de emojis que resuma la vibra del post.
- "caption": ¡Aquí cuentas una historia! Usa un lenguaje más personal y cercano.
    - Estructura el texto con muchos saltos de línea para que "respire".
    - Intercala emojis relevantes (ej: ✨, 📸, ❤️, 👇) dentro de las frases para hacer el texto escaneable y visualmente atractivo.
    - Termina con una llamada a la acción clara, invitando a comentar, guardar o compartir.
- "hashtags": Una cadena de 5 a 15 hashtags relevantes y populares, separados por espacios.`

// BuildImagePrompt asks the text model for a one-sentence scene description
// that is then fed to the image model.
func BuildImagePrompt(idea string) string {
	return fmt.Sprintf(imagePromptTemplate, idea)
}

func BuildPostsPrompt(idea string, tone models.Tone) string {
	return fmt.Sprintf(postsPromptTemplate, idea, tone)
}
