package document

import "errors"

var (
	ErrDocumentNotFound        = errors.New("document not found")
	ErrPrefixNotConfigured     = errors.New("document number prefix not configured for category")
	ErrSequenceExhausted       = errors.New("document number sequence exhausted")
	ErrInvalidCategory         = errors.New("invalid document category")
	ErrInvalidStatusTransition = errors.New("document status transition not allowed")
)
