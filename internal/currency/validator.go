package currency

import (
	"errors"
	"slices"
)

var (
	ErrFromRequired    = errors.New("from currency is required")
	ErrToRequired      = errors.New("to currency is required")
	ErrFromUnsupported = errors.New("from currency not supported")
	ErrToUnsupported   = errors.New("to currency not supported")
	ErrSameCodes       = errors.New("from and to currencies must be different")
)

type Validator struct {
	supportedCodesSet map[string]struct{} // read only copy
	supportedCodesLst []string            // read only copy, catalog order
}

// ValidateCodes checks both codes against the catalog. Same codes are allowed
// here, conversion treats them as identity.
func (v *Validator) ValidateCodes(from, to string) error {
	if from == "" {
		return ErrFromRequired
	}
	if to == "" {
		return ErrToRequired
	}
	if _, ok := v.supportedCodesSet[from]; !ok {
		return ErrFromUnsupported
	}
	if _, ok := v.supportedCodesSet[to]; !ok {
		return ErrToUnsupported
	}
	return nil
}

// ValidatePair is ValidateCodes that also rejects a pair of identical codes.
func (v *Validator) ValidatePair(from, to string) error {
	if err := v.ValidateCodes(from, to); err != nil {
		return err
	}
	if from == to {
		return ErrSameCodes
	}
	return nil
}

func (v *Validator) SupportedCodes() []string {
	return slices.Clone(v.supportedCodesLst)
}

func NewValidator(codes []string) *Validator {
	codesSet := make(map[string]struct{}, len(codes))
	codesLst := make([]string, 0, len(codes))
	for _, c := range codes {
		if _, dup := codesSet[c]; dup {
			continue
		}
		codesSet[c] = struct{}{}
		codesLst = append(codesLst, c)
	}
	return &Validator{
		supportedCodesSet: codesSet,
		supportedCodesLst: codesLst,
	}
}

// NewCatalogValidator validates against the built-in catalog.
func NewCatalogValidator() *Validator {
	return NewValidator(Codes())
}
