package prompt

import (
	"errors"
	"strings"

	"tajwid-pintar-be/internal/constant"
	"tajwid-pintar-be/pkg/llm"
	"tajwid-pintar-be/pkg/media"
)

var (
	ErrEmptyInput       = errors.New("prompt text or media is required")
	ErrConflictingMedia = errors.New("image and audio cannot be sent in the same turn")
)

// Request is the fully assembled multi-modal completion input. At most one of
// Image and Audio is set.
type Request struct {
	PromptText       string
	GroundingContext string
	Image            *media.Inline
	Audio            *media.Inline
}

// Completion converts the request to the backend shape: the instruction text
// first, then the media part if any.
func (r *Request) Completion() *llm.Request {
	req := &llm.Request{Parts: []llm.Part{{Text: r.PromptText}}}
	switch {
	case r.Audio != nil:
		req.Parts = append(req.Parts, llm.Part{Media: r.Audio})
	case r.Image != nil:
		req.Parts = append(req.Parts, llm.Part{Media: r.Image})
	}
	return req
}

type Assembler struct {
	maxInlineBytes int
}

func NewAssembler(maxInlineBytes int) *Assembler {
	return &Assembler{maxInlineBytes: maxInlineBytes}
}

// Assemble resolves the user instruction and concatenates the instruction
// contract in its fixed order. It has no side effects.
func (a *Assembler) Assemble(promptText, groundingContext, historyText string, image, audio *media.Payload) (*Request, error) {
	if image != nil && audio != nil {
		return nil, ErrConflictingMedia
	}

	instruction, err := ResolveInstruction(promptText, image != nil, audio != nil)
	if err != nil {
		return nil, err
	}

	req := &Request{GroundingContext: groundingContext}
	if audio != nil {
		if req.Audio, err = media.Encode(media.KindAudio, *audio, a.maxInlineBytes); err != nil {
			return nil, err
		}
	}
	if image != nil {
		if req.Image, err = media.Encode(media.KindImage, *image, a.maxInlineBytes); err != nil {
			return nil, err
		}
	}

	req.PromptText = Compose(groundingContext, historyText, instruction)
	return req, nil
}

// ResolveInstruction substitutes the fixed instruction when promptText is
// blank. Audio takes precedence over image.
func ResolveInstruction(promptText string, hasImage, hasAudio bool) (string, error) {
	if text := strings.TrimSpace(promptText); text != "" {
		return text, nil
	}
	switch {
	case hasAudio:
		return constant.CritiqueRecitationInstruction, nil
	case hasImage:
		return constant.ExplainImageInstruction, nil
	}
	return "", ErrEmptyInput
}

// Compose writes the instruction contract: persona, knowledge rules,
// directive rules, grounding block, history block, user request.
func Compose(groundingContext, historyText, instruction string) string {
	var sb strings.Builder

	sb.WriteString(constant.TajwidPersonaPromptV1)
	sb.WriteString("\n\n")
	sb.WriteString(constant.TajwidKnowledgeRulesPromptV1)
	sb.WriteString("\n\n")
	sb.WriteString(constant.TajwidDirectiveRulesPromptV1)
	sb.WriteString("\n\n")

	writeBlock(&sb, "knowledge_base", groundingContext)
	sb.WriteString("\n")
	writeBlock(&sb, "conversation_history", historyText)
	sb.WriteString("\n")
	writeBlock(&sb, "user_request", instruction)

	return sb.String()
}

func writeBlock(sb *strings.Builder, tag, body string) {
	sb.WriteString("<" + tag + ">\n")
	if body = strings.TrimRight(body, "\n"); body != "" {
		sb.WriteString(body)
		sb.WriteString("\n")
	}
	sb.WriteString("</" + tag + ">\n")
}
