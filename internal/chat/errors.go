package chat

import (
	"errors"
	"fmt"

	"github.com/suPer8Hu/legal-assistant/internal/common"
)

var (
	// ErrGeneration wraps any provider failure or timeout.
	ErrGeneration      = errors.New("chat: generation failed")
	ErrSessionNotFound = fmt.Errorf("chat: session %w", common.ErrNotFound)
	ErrJobNotFound     = fmt.Errorf("chat: job %w", common.ErrNotFound)
	ErrUnknownProvider = errors.New("chat: unknown ai provider")
)
